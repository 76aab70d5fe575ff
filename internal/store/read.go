package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrReportNotFound is returned when no report has the requested ID.
var ErrReportNotFound = errors.New("report not found")

// ReadReport returns the report header with id.
func (s *Store) ReadReport(ctx context.Context, id string) (Report, error) {
	var r Report
	err := s.db.QueryRowContext(ctx, `
		SELECT id, seq, competition, digest, revision, complete
		FROM reports
		WHERE id = ?
	`, id).Scan(&r.ID, &r.Seq, &r.Competition, &r.Digest, &r.Revision, &r.Complete)
	if errors.Is(err, sql.ErrNoRows) {
		return Report{}, fmt.Errorf("%w: %s", ErrReportNotFound, id)
	}
	if err != nil {
		return Report{}, fmt.Errorf("read report: %w", err)
	}
	return r, nil
}

// ListReports returns every report in export order.
//
// Returns an empty slice (not nil) if the store is empty.
func (s *Store) ListReports(ctx context.Context) ([]Report, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, competition, digest, revision, complete
		FROM reports
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	reports := []Report{}
	for rows.Next() {
		var r Report
		if err := rows.Scan(&r.ID, &r.Seq, &r.Competition, &r.Digest, &r.Revision, &r.Complete); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return reports, nil
}

// ReadSnapshot returns every row of a report in document order.
func (s *Store) ReadSnapshot(ctx context.Context, id string) (Snapshot, error) {
	if _, err := s.ReadReport(ctx, id); err != nil {
		return Snapshot{}, err
	}

	outcomes, err := s.readOutcomes(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}
	standings, err := s.readStandings(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}
	placements, err := s.readPlacements(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Outcomes: outcomes, Standings: standings, Placements: placements}, nil
}

func (s *Store) readOutcomes(ctx context.Context, id string) ([]MatchOutcome, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT stage_id, group_id, match_id, home_ref, away_ref, home_team, away_team,
		       complete, draw, winner, home_sets, away_sets
		FROM match_outcomes
		WHERE report_id = ?
		ORDER BY ordinal ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query match outcomes: %w", err)
	}
	defer rows.Close()

	out := []MatchOutcome{}
	for rows.Next() {
		var o MatchOutcome
		if err := rows.Scan(&o.Stage, &o.Group, &o.Match, &o.HomeRef, &o.AwayRef, &o.HomeTeam, &o.AwayTeam,
			&o.Complete, &o.Draw, &o.Winner, &o.HomeSets, &o.AwaySets); err != nil {
			return nil, fmt.Errorf("scan match outcome: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate match outcomes: %w", err)
	}
	return out, nil
}

func (s *Store) readStandings(ctx context.Context, id string) ([]Standing, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT stage_id, group_id, position, team_id, team_name, played, wins, losses, draws,
		       sets_for, sets_against, points_for, points_against, bonus_points, penalty_points, points
		FROM standings
		WHERE report_id = ?
		ORDER BY ordinal ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query standings: %w", err)
	}
	defer rows.Close()

	out := []Standing{}
	for rows.Next() {
		var st Standing
		if err := rows.Scan(&st.Stage, &st.Group, &st.Position, &st.TeamID, &st.TeamName,
			&st.Played, &st.Wins, &st.Losses, &st.Draws, &st.SetsFor, &st.SetsAgainst,
			&st.PointsFor, &st.PointsAgainst, &st.BonusPoints, &st.PenaltyPoints, &st.Points); err != nil {
			return nil, fmt.Errorf("scan standing: %w", err)
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate standings: %w", err)
	}
	return out, nil
}

// ReadStandings returns the table of one league group in position order.
func (s *Store) ReadStandings(ctx context.Context, id, stage, group string) ([]Standing, error) {
	all, err := s.readStandings(ctx, id)
	if err != nil {
		return nil, err
	}
	out := []Standing{}
	for _, st := range all {
		if st.Stage == stage && st.Group == group {
			out = append(out, st)
		}
	}
	return out, nil
}

func (s *Store) readPlacements(ctx context.Context, id string) ([]Placement, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT stage_id, group_id, position, team_id
		FROM knockout_standings
		WHERE report_id = ?
		ORDER BY ordinal ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query knockout standings: %w", err)
	}
	defer rows.Close()

	out := []Placement{}
	for rows.Next() {
		var p Placement
		if err := rows.Scan(&p.Stage, &p.Group, &p.Position, &p.TeamID); err != nil {
			return nil, fmt.Errorf("scan knockout standing: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate knockout standings: %w", err)
	}
	return out, nil
}
