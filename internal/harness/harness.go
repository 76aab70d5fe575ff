package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/vbc/internal/competition"
	"github.com/roach88/vbc/internal/store"
	"github.com/roach88/vbc/internal/testutil"
)

// Harness is the test execution engine.
// It runs one scenario against a fresh competition and report store.
type Harness struct {
	store  *store.Store
	ids    store.IDGenerator
	logger *slog.Logger
}

// Option configures a harness run.
type Option func(*Harness)

// WithLogger routes competition and harness logs to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) {
		h.logger = logger
	}
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation, and the
// exported report always gets the scenario name as its ID.
//
// Execution flow:
// 1. Load the document (or check the expected load error)
// 2. Apply score updates
// 3. Export the results to the store and read them back
// 4. Evaluate the expect blocks
//
// A failed check is reported in the Result. The returned error is reserved
// for infrastructure failures.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{
		store:  st,
		ids:    testutil.NewFixedIDGenerator(scenario.Name),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}
	for _, opt := range opts {
		opt(h)
	}
	return h.run(context.Background(), scenario)
}

func (h *Harness) run(ctx context.Context, scenario *Scenario) (*Result, error) {
	result := NewResult()

	c, err := competition.Load(scenario.Document, competition.WithLogger(h.logger))
	if want := scenario.Expect.Error; want != "" {
		switch {
		case err == nil:
			result.AddError(fmt.Sprintf("load: expected error %q, document loaded", want))
		case !errorMatches(err, want):
			result.AddError(fmt.Sprintf("load: expected error %q, got %v", want, err))
		}
		h.logger.Info("scenario finished", "scenario", scenario.Name, "pass", result.Pass)
		return result, nil
	}
	if err != nil {
		result.AddError(fmt.Sprintf("load: %v", err))
		return result, nil
	}

	h.applyScores(c, scenario.Scores, result)

	report, err := h.store.WriteReport(ctx, h.ids.Generate(), c)
	if err != nil {
		return nil, fmt.Errorf("failed to export results: %w", err)
	}
	snap, err := h.store.ReadSnapshot(ctx, report.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read results: %w", err)
	}
	result.Report = report
	result.Snapshot = snap

	for _, msg := range EvaluateExpectations(c, scenario.Expect) {
		result.AddError(msg)
	}

	h.logger.Info("scenario finished",
		"scenario", scenario.Name,
		"pass", result.Pass,
		"report", report.ID,
		"revision", report.Revision,
	)
	return result, nil
}

// applyScores applies each update in order. A rejected update leaves the
// match unchanged, so later updates still see the previous scores.
func (h *Harness) applyScores(c *competition.Competition, updates []ScoreUpdate, result *Result) {
	for i, u := range updates {
		m, ok := c.MatchByPath(u.Match)
		if !ok {
			result.AddError(fmt.Sprintf("scores[%d]: unknown match %s", i, u.Match))
			continue
		}
		err := m.SetScores(u.Home, u.Away, u.Complete)
		switch {
		case u.Error == "" && err != nil:
			result.AddError(fmt.Sprintf("scores[%d]: %v", i, err))
		case u.Error != "" && err == nil:
			result.AddError(fmt.Sprintf("scores[%d]: expected error %q, scores accepted", i, u.Error))
		case u.Error != "" && !errorMatches(err, u.Error):
			result.AddError(fmt.Sprintf("scores[%d]: expected error %q, got %v", i, u.Error, err))
		}
		h.logger.Debug("scores applied", "match", u.Match, "step", i, "error", err)
	}
}

// errorMatches reports whether err carries the validation code want or
// contains want in its message.
func errorMatches(err error, want string) bool {
	return competition.CodeOf(err) == want || strings.Contains(err.Error(), want)
}
