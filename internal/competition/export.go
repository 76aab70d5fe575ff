package competition

import (
	"slices"

	"github.com/roach88/vbc/internal/document"
	"github.com/roach88/vbc/internal/outcome"
)

// Document converts the graph back to its document form. Set and league
// configuration is written out in full, defaults included.
func (c *Competition) Document() *document.Competition {
	doc := &document.Competition{
		Version: c.Version,
		Name:    c.Name,
		Notes:   c.Notes,
		Teams:   make([]document.Team, 0, len(c.teams)),
		Stages:  make([]document.Stage, 0, len(c.stages)),
	}
	for _, cl := range c.clubs {
		doc.Clubs = append(doc.Clubs, document.Club{ID: cl.ID, Name: cl.Name, Notes: cl.Notes})
	}
	for _, t := range c.teams {
		doc.Teams = append(doc.Teams, document.Team{
			ID:       t.ID,
			Name:     t.Name,
			Club:     t.ClubID,
			Notes:    t.Notes,
			Contacts: slices.Clone(t.Contacts),
			Players:  slices.Clone(t.Players),
		})
	}
	for _, s := range c.stages {
		ds := document.Stage{
			ID:          s.ID,
			Name:        s.Name,
			Notes:       s.Notes,
			Description: slices.Clone(s.Description),
			Groups:      make([]document.Group, 0, len(s.groups)),
		}
		for _, g := range s.groups {
			ds.Groups = append(ds.Groups, g.document())
		}
		doc.Stages = append(doc.Stages, ds)
	}
	return doc
}

func (g *Group) document() document.Group {
	dg := document.Group{
		ID:           g.ID,
		Name:         g.Name,
		Notes:        g.Notes,
		Description:  slices.Clone(g.Description),
		Type:         string(g.Kind),
		MatchType:    string(g.MatchType),
		DrawsAllowed: g.DrawsAllowed,
		Matches:      make([]document.Entry, 0, len(g.entries)),
	}
	if g.MatchType == outcome.Sets {
		s := g.Sets
		dg.Sets = &document.SetConfig{
			MaxSets:            &s.MaxSets,
			SetsToWin:          &s.SetsToWin,
			ClearPoints:        &s.ClearPoints,
			MinPoints:          &s.MinPoints,
			PointsToWin:        &s.PointsToWin,
			LastSetPointsToWin: &s.LastSetPointsToWin,
			MaxPoints:          &s.MaxPoints,
			LastSetMaxPoints:   &s.LastSetMaxPoints,
		}
	}
	if g.league != nil {
		cfg := g.league.config
		p := cfg.Points
		dg.League = &document.LeagueConfig{
			Ordering: make([]string, 0, len(cfg.Ordering)),
			Points: &document.LeaguePoints{
				Played:    &p.Played,
				PerSet:    &p.PerSet,
				Win:       &p.Win,
				WinByOne:  &p.WinByOne,
				Lose:      &p.Lose,
				LoseByOne: &p.LoseByOne,
				Forfeit:   &p.Forfeit,
			},
		}
		for _, k := range cfg.Ordering {
			dg.League.Ordering = append(dg.League.Ordering, string(k))
		}
	}
	if g.standing != nil {
		dg.Knockout = &document.KnockoutConfig{Standing: make([]document.StandingPosition, 0, len(g.standing))}
		for _, sp := range g.standing {
			dg.Knockout.Standing = append(dg.Knockout.Standing, document.StandingPosition{Position: sp.Position, ID: sp.TeamRef})
		}
	}

	for _, e := range g.entries {
		switch e := e.(type) {
		case *Match:
			dg.Matches = append(dg.Matches, e.document())
		case *Break:
			dg.Matches = append(dg.Matches, document.Entry{
				Type:     document.EntryBreak,
				Name:     e.Name,
				Date:     e.Date,
				Start:    e.Start,
				Duration: e.Duration,
			})
		}
	}
	return dg
}

func (m *Match) document() document.Entry {
	s := m.Spec()
	e := document.Entry{
		Type:     document.EntryMatch,
		ID:       s.ID,
		Court:    s.Court,
		Venue:    s.Venue,
		Warmup:   s.Warmup,
		Complete: s.Complete,
		HomeTeam: documentTeam(s.Home),
		AwayTeam: documentTeam(s.Away),
		MVP:      s.MVP,
		Friendly: s.Friendly,
		Notes:    s.Notes,
		Date:     s.Date,
		Start:    s.Start,
		Duration: s.Duration,
	}
	if s.Officials != nil {
		o := *s.Officials
		e.Officials = &o
	}
	if s.Manager != nil {
		mgr := *s.Manager
		e.Manager = &mgr
	}
	return e
}

func documentTeam(t MatchTeam) *document.MatchTeam {
	scores := t.Scores
	if scores == nil {
		scores = []int{}
	}
	return &document.MatchTeam{
		ID:            t.ID,
		Scores:        scores,
		MVP:           t.MVP,
		Forfeit:       t.Forfeit,
		BonusPoints:   t.BonusPoints,
		PenaltyPoints: t.PenaltyPoints,
		Notes:         t.Notes,
		Players:       slices.Clone(t.Players),
	}
}
