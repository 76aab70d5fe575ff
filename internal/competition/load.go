package competition

import (
	"slices"

	"github.com/roach88/vbc/internal/document"
	"github.com/roach88/vbc/internal/outcome"
	"github.com/roach88/vbc/internal/standings"
)

// Load reads a JSON or YAML competition document and builds the graph.
func Load(path string, opts ...Option) (*Competition, error) {
	doc, err := document.Load(path)
	if err != nil {
		return nil, err
	}
	return FromDocument(doc, opts...)
}

// FromDocument builds and validates a competition graph from a decoded
// document. The first violation aborts the load.
func FromDocument(doc *document.Competition, opts ...Option) (*Competition, error) {
	c := New(doc.Name, opts...)
	c.Version = doc.Version
	c.Notes = doc.Notes

	for _, club := range doc.Clubs {
		if _, err := c.AddClub(Club{ID: club.ID, Name: club.Name, Notes: club.Notes}); err != nil {
			return nil, err
		}
	}
	for _, t := range doc.Teams {
		team := Team{
			ID:       t.ID,
			Name:     t.Name,
			ClubID:   t.Club,
			Notes:    t.Notes,
			Contacts: slices.Clone(t.Contacts),
			Players:  slices.Clone(t.Players),
		}
		if _, err := c.AddTeam(team); err != nil {
			return nil, err
		}
	}

	matches := 0
	for _, ds := range doc.Stages {
		s, err := c.AddStage(ds.ID, ds.Name)
		if err != nil {
			return nil, err
		}
		s.Notes = ds.Notes
		s.Description = slices.Clone(ds.Description)

		for _, dg := range ds.Groups {
			g, err := s.AddGroup(groupSpec(dg))
			if err != nil {
				return nil, err
			}
			g.Notes = dg.Notes
			g.Description = slices.Clone(dg.Description)

			for i, e := range dg.Matches {
				switch e.Type {
				case document.EntryMatch:
					if _, err := g.AddMatch(matchSpec(e)); err != nil {
						return nil, err
					}
					matches++
				case document.EntryBreak:
					g.AddBreak(Break{Name: e.Name, Date: e.Date, Start: e.Start, Duration: e.Duration})
				default:
					return nil, newError(ErrInvalidEntry, KindRule, g.Key().String(), "matches",
						"entry %d has unknown type %q", i, e.Type)
				}
			}
		}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	c.logger.Debug("competition loaded",
		"name", c.Name,
		"teams", len(c.teams),
		"stages", len(c.stages),
		"matches", matches)
	return c, nil
}

func groupSpec(dg document.Group) GroupSpec {
	spec := GroupSpec{
		ID:           dg.ID,
		Name:         dg.Name,
		Kind:         GroupKind(dg.Type),
		MatchType:    outcome.MatchType(dg.MatchType),
		Sets:         setConfig(dg.Sets),
		DrawsAllowed: dg.DrawsAllowed,
	}
	if dg.League != nil {
		cfg := standings.Config{Points: leaguePoints(dg.League.Points)}
		for _, k := range dg.League.Ordering {
			cfg.Ordering = append(cfg.Ordering, standings.Key(k))
		}
		spec.League = &cfg
	}
	if dg.Knockout != nil {
		spec.Standing = make([]StandingPosition, 0, len(dg.Knockout.Standing))
		for _, sp := range dg.Knockout.Standing {
			spec.Standing = append(spec.Standing, StandingPosition{Position: sp.Position, TeamRef: sp.ID})
		}
	}
	return spec
}

// setConfig fills omitted fields with their defaults.
func setConfig(in *document.SetConfig) outcome.SetConfig {
	cfg := outcome.DefaultSetConfig()
	if in == nil {
		return cfg
	}
	override(&cfg.MaxSets, in.MaxSets)
	override(&cfg.SetsToWin, in.SetsToWin)
	override(&cfg.ClearPoints, in.ClearPoints)
	override(&cfg.MinPoints, in.MinPoints)
	override(&cfg.PointsToWin, in.PointsToWin)
	override(&cfg.LastSetPointsToWin, in.LastSetPointsToWin)
	override(&cfg.MaxPoints, in.MaxPoints)
	override(&cfg.LastSetMaxPoints, in.LastSetMaxPoints)
	return cfg
}

func leaguePoints(in *document.LeaguePoints) standings.Points {
	p := standings.DefaultPoints()
	if in == nil {
		return p
	}
	override(&p.Played, in.Played)
	override(&p.PerSet, in.PerSet)
	override(&p.Win, in.Win)
	override(&p.WinByOne, in.WinByOne)
	override(&p.Lose, in.Lose)
	override(&p.LoseByOne, in.LoseByOne)
	override(&p.Forfeit, in.Forfeit)
	return p
}

func override(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func matchSpec(e document.Entry) MatchSpec {
	spec := MatchSpec{
		ID:       e.ID,
		Complete: e.Complete,
		Friendly: e.Friendly,
		Court:    e.Court,
		Venue:    e.Venue,
		Warmup:   e.Warmup,
		Date:     e.Date,
		Start:    e.Start,
		Duration: e.Duration,
		MVP:      e.MVP,
		Notes:    e.Notes,
	}
	if e.HomeTeam != nil {
		spec.Home = matchTeam(*e.HomeTeam)
	}
	if e.AwayTeam != nil {
		spec.Away = matchTeam(*e.AwayTeam)
	}
	if e.Officials != nil {
		o := *e.Officials
		o.Linespersons = slices.Clone(o.Linespersons)
		spec.Officials = &o
	}
	if e.Manager != nil {
		mgr := *e.Manager
		spec.Manager = &mgr
	}
	return spec
}

func matchTeam(t document.MatchTeam) MatchTeam {
	return MatchTeam{
		ID:            t.ID,
		Scores:        slices.Clone(t.Scores),
		Forfeit:       t.Forfeit,
		BonusPoints:   t.BonusPoints,
		PenaltyPoints: t.PenaltyPoints,
		MVP:           t.MVP,
		Notes:         t.Notes,
		Players:       slices.Clone(t.Players),
	}
}
