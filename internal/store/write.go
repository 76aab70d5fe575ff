package store

import (
	"context"
	"fmt"

	"github.com/roach88/vbc/internal/competition"
	"github.com/roach88/vbc/internal/document"
)

// Report identifies one export of a competition.
type Report struct {
	ID          string `json:"id"`
	Seq         int64  `json:"seq"`
	Competition string `json:"competition"`
	Digest      string `json:"digest"`
	Revision    int64  `json:"revision"`
	Complete    bool   `json:"complete"`
}

// MatchOutcome is the exported outcome of one match.
type MatchOutcome struct {
	Stage    string `json:"stage"`
	Group    string `json:"group"`
	Match    string `json:"match"`
	HomeRef  string `json:"homeRef"`
	AwayRef  string `json:"awayRef"`
	HomeTeam string `json:"homeTeam"` // resolved ID, UNKNOWN_TEAM_ID if undecided
	AwayTeam string `json:"awayTeam"`
	Complete bool   `json:"complete"`
	Draw     bool   `json:"draw"`
	Winner   string `json:"winner"` // "home", "away" or "none"
	HomeSets int    `json:"homeSets"`
	AwaySets int    `json:"awaySets"`
}

// Standing is one exported league table row.
type Standing struct {
	Stage         string `json:"stage"`
	Group         string `json:"group"`
	Position      int    `json:"position"`
	TeamID        string `json:"teamID"`
	TeamName      string `json:"teamName"`
	Played        int    `json:"played"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
	Draws         int    `json:"draws"`
	SetsFor       int    `json:"sf"`
	SetsAgainst   int    `json:"sa"`
	PointsFor     int    `json:"pf"`
	PointsAgainst int    `json:"pa"`
	BonusPoints   int    `json:"bp"`
	PenaltyPoints int    `json:"pp"`
	Points        int    `json:"pts"`
}

// Placement is one exported knockout standing position.
type Placement struct {
	Stage    string `json:"stage"`
	Group    string `json:"group"`
	Position string `json:"position"`
	TeamID   string `json:"teamID"`
}

// Snapshot is every derived result of a competition at one revision.
type Snapshot struct {
	Outcomes   []MatchOutcome `json:"outcomes"`
	Standings  []Standing     `json:"standings"`
	Placements []Placement    `json:"placements"`
}

// TakeSnapshot derives the rows of a report from c.
func TakeSnapshot(c *competition.Competition) (Snapshot, error) {
	snap := Snapshot{
		Outcomes:   []MatchOutcome{},
		Standings:  []Standing{},
		Placements: []Placement{},
	}
	for _, g := range c.Groups() {
		stage := g.Stage().ID
		for _, m := range g.AllMatches() {
			r := m.Result()
			home, away := m.Home(), m.Away()
			snap.Outcomes = append(snap.Outcomes, MatchOutcome{
				Stage:    stage,
				Group:    g.ID,
				Match:    m.ID(),
				HomeRef:  home.ID,
				AwayRef:  away.ID,
				HomeTeam: c.Resolve(home.ID).ID,
				AwayTeam: c.Resolve(away.ID).ID,
				Complete: r.Complete,
				Draw:     r.Draw,
				Winner:   r.Winner.String(),
				HomeSets: r.HomeSets,
				AwaySets: r.AwaySets,
			})
		}

		if g.Kind == competition.League {
			table, err := g.Table()
			if err != nil {
				return Snapshot{}, fmt.Errorf("snapshot %s: %w", g.Key(), err)
			}
			for i, e := range table.Entries {
				snap.Standings = append(snap.Standings, Standing{
					Stage:         stage,
					Group:         g.ID,
					Position:      i + 1,
					TeamID:        e.TeamID,
					TeamName:      e.TeamName,
					Played:        e.Played,
					Wins:          e.Wins,
					Losses:        e.Losses,
					Draws:         e.Draws,
					SetsFor:       e.SetsFor,
					SetsAgainst:   e.SetsAgainst,
					PointsFor:     e.PointsFor,
					PointsAgainst: e.PointsAgainst,
					BonusPoints:   e.BonusPoints,
					PenaltyPoints: e.PenaltyPoints,
					Points:        e.Points,
				})
			}
		}

		if g.Standing() != nil {
			placements, err := g.KnockoutStanding()
			if err != nil {
				return Snapshot{}, fmt.Errorf("snapshot %s: %w", g.Key(), err)
			}
			for _, p := range placements {
				snap.Placements = append(snap.Placements, Placement{
					Stage:    stage,
					Group:    g.ID,
					Position: p.Position,
					TeamID:   p.Team.ID,
				})
			}
		}
	}
	return snap, nil
}

// WriteReport exports every derived result of c as a new report with the
// given ID. The whole report is written in one transaction.
func (s *Store) WriteReport(ctx context.Context, id string, c *competition.Competition) (Report, error) {
	digest, err := document.Digest(c.Document())
	if err != nil {
		return Report{}, fmt.Errorf("write report: %w", err)
	}
	snap, err := TakeSnapshot(c)
	if err != nil {
		return Report{}, fmt.Errorf("write report: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Report{}, fmt.Errorf("write report: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM reports`).Scan(&seq); err != nil {
		return Report{}, fmt.Errorf("write report: next seq: %w", err)
	}

	report := Report{
		ID:          id,
		Seq:         seq,
		Competition: c.Name,
		Digest:      digest,
		Revision:    int64(c.Revision()),
		Complete:    c.IsComplete(),
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO reports (id, seq, competition, digest, revision, complete)
		VALUES (?, ?, ?, ?, ?, ?)
	`, report.ID, report.Seq, report.Competition, report.Digest, report.Revision, report.Complete); err != nil {
		return Report{}, fmt.Errorf("write report: %w", err)
	}

	for i, o := range snap.Outcomes {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO match_outcomes
			(report_id, ordinal, stage_id, group_id, match_id, home_ref, away_ref, home_team, away_team,
			 complete, draw, winner, home_sets, away_sets)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			id, i, o.Stage, o.Group, o.Match, o.HomeRef, o.AwayRef, o.HomeTeam, o.AwayTeam,
			o.Complete, o.Draw, o.Winner, o.HomeSets, o.AwaySets,
		); err != nil {
			return Report{}, fmt.Errorf("write report: match %s:%s:%s: %w", o.Stage, o.Group, o.Match, err)
		}
	}

	for i, st := range snap.Standings {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO standings
			(report_id, ordinal, stage_id, group_id, position, team_id, team_name, played, wins, losses, draws,
			 sets_for, sets_against, points_for, points_against, bonus_points, penalty_points, points)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			id, i, st.Stage, st.Group, st.Position, st.TeamID, st.TeamName, st.Played, st.Wins, st.Losses, st.Draws,
			st.SetsFor, st.SetsAgainst, st.PointsFor, st.PointsAgainst, st.BonusPoints, st.PenaltyPoints, st.Points,
		); err != nil {
			return Report{}, fmt.Errorf("write report: standing %s:%s #%d: %w", st.Stage, st.Group, st.Position, err)
		}
	}

	for i, p := range snap.Placements {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO knockout_standings (report_id, stage_id, group_id, ordinal, position, team_id)
			VALUES (?, ?, ?, ?, ?, ?)
		`, id, p.Stage, p.Group, i, p.Position, p.TeamID); err != nil {
			return Report{}, fmt.Errorf("write report: placement %s:%s %s: %w", p.Stage, p.Group, p.Position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Report{}, fmt.Errorf("write report: commit: %w", err)
	}
	return report, nil
}
