package competition

import (
	"errors"
	"fmt"
	"slices"

	"github.com/roach88/vbc/internal/teamref"
)

// maxResolveDepth bounds chains of winner/loser references that point at
// further references.
const maxResolveDepth = 64

// Resolve maps a team reference to a registered team. It never fails:
// anything malformed, dangling or not yet decided resolves to the Unknown
// team.
func (c *Competition) Resolve(ref string) *Team {
	return c.resolve(ref, 0)
}

func (c *Competition) resolve(ref string, depth int) *Team {
	if depth > maxResolveDepth {
		c.logger.Debug("team reference chain too deep", "ref", ref, "depth", depth)
		return c.unknown
	}
	r, err := c.parse(ref)
	if err != nil {
		return c.unknown
	}
	return c.resolveRef(r, depth)
}

func (c *Competition) resolveRef(r *teamref.Ref, depth int) *Team {
	switch r.Kind {
	case teamref.Literal:
		if t, ok := c.teamIndex[r.ID]; ok {
			return t
		}
		return c.unknown

	case teamref.Ternary:
		left := c.resolveRef(r.Left, depth+1)
		right := c.resolveRef(r.Right, depth+1)
		if left.IsUnknown() || right.IsUnknown() {
			return c.unknown
		}
		if left.ID == right.ID {
			return c.resolveRef(r.IfTrue, depth+1)
		}
		return c.resolveRef(r.IfFalse, depth+1)

	case teamref.Structured:
		g, ok := c.Group(r.GroupKey())
		if !ok {
			return c.unknown
		}
		if r.IsLeague() {
			t, err := g.LeaguePosition(r.Position)
			if err != nil {
				return c.unknown
			}
			return t
		}
		m, ok := g.MatchByID(r.Selector)
		if !ok {
			return c.unknown
		}
		var id string
		var err error
		if r.Qualifier == teamref.QualifierWinner {
			id, err = m.WinnerTeamID()
		} else {
			id, err = m.LoserTeamID()
		}
		if err != nil {
			return c.unknown
		}
		return c.resolve(id, depth+1)
	}
	return c.unknown
}

// ValidateTeamRef checks a team reference strictly. path and field locate
// the reference in error messages, e.g. "L:RL:RLM1" and "homeTeam.id".
func (c *Competition) ValidateTeamRef(ref, path, field string) error {
	r, err := c.parse(ref)
	if err != nil {
		return wrapError(ErrReferenceSyntax, KindSyntax, path, field, err)
	}
	return c.validateRef(r, path, field)
}

func (c *Competition) validateRef(r *teamref.Ref, path, field string) error {
	switch r.Kind {
	case teamref.Literal:
		if !c.HasTeam(r.ID) {
			return newError(ErrUnknownTeam, KindReference, path, field, "team with ID %q does not exist", r.ID)
		}
	case teamref.Ternary:
		for _, operand := range []*teamref.Ref{r.Left, r.Right, r.IfTrue, r.IfFalse} {
			if err := c.validateRef(operand, path, field); err != nil {
				return err
			}
		}
	case teamref.Structured:
		s, ok := c.Stage(r.Stage)
		if !ok {
			return newError(ErrUnknownStage, KindReference, path, field,
				"could not find stage with ID %q from reference %q", r.Stage, r.String())
		}
		g, ok := s.Group(r.Group)
		if !ok {
			return newError(ErrUnknownGroup, KindReference, path, field,
				"could not find group with ID %q in stage %q from reference %q", r.Group, r.Stage, r.String())
		}
		if r.IsLeague() {
			if g.Kind != League {
				return newError(ErrNotLeague, KindReference, path, field,
					"reference %q asks for a league position but group %q is a %s", r.String(), g.ID, g.Kind)
			}
			if g.IsComplete() {
				if _, err := g.LeaguePosition(r.Position); err != nil {
					var ve *ValidationError
					if errors.As(err, &ve) {
						return wrapError(ve.Code, ve.Kind, path, field, err)
					}
					return err
				}
			}
			return nil
		}
		if !g.HasMatch(r.Selector) {
			return newError(ErrUnknownMatch, KindReference, path, field,
				"could not find match with ID %q in group %q from reference %q", r.Selector, r.GroupKey().String(), r.String())
		}
	}
	return nil
}

// Validate checks every team reference in the competition: match teams,
// officials, managers and knockout standings. It stops at the first error.
func (c *Competition) Validate() error {
	if err := c.checkLeagueCycles(); err != nil {
		return err
	}
	for _, g := range c.Groups() {
		for _, m := range g.matches {
			for _, f := range m.refFields() {
				if err := m.checkSelfReference(f); err != nil {
					return err
				}
				if err := c.ValidateTeamRef(f.ref, m.Path(), f.field); err != nil {
					return err
				}
			}
		}
		for i, sp := range g.standing {
			if err := c.ValidateTeamRef(sp.TeamRef, g.Key().String(), knockoutField(i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func knockoutField(i int) string {
	return fmt.Sprintf("knockout.standing[%d].id", i)
}

// checkSelfReference rejects a match whose teams depend on its own result,
// or whose home or away team is a position in its own league table.
func (m *Match) checkSelfReference(f refField) error {
	r, err := m.group.comp().parse(f.ref)
	if err != nil {
		return nil
	}
	playing := f.field == "homeTeam.id" || f.field == "awayTeam.id"
	key := m.group.Key()
	for _, op := range operands(r) {
		if op.Kind != teamref.Structured || op.GroupKey() != key {
			continue
		}
		switch {
		case op.IsLeague() && playing && m.group.Kind == League:
			return newError(ErrLeagueCycle, KindReference, m.Path(), f.field,
				"reference %q points at the league table the match counts towards", op.String())
		case !op.IsLeague() && op.Selector == m.spec.ID:
			return newError(ErrSelfReference, KindReference, m.Path(), f.field,
				"reference %q points at the result of the same match", op.String())
		}
	}
	return nil
}

// operands returns r, or the four operands of a ternary.
func operands(r *teamref.Ref) []*teamref.Ref {
	if r.Kind == teamref.Ternary {
		return []*teamref.Ref{r.Left, r.Right, r.IfTrue, r.IfFalse}
	}
	return []*teamref.Ref{r}
}

// validateLeagueRefs re-checks every reference to a league position of the
// group at key. Positions are only bounded once the group is complete.
func (c *Competition) validateLeagueRefs(key teamref.GroupKey) error {
	refersTo := func(ref string) bool {
		r, err := c.parse(ref)
		return err == nil && slices.Contains(r.Groups(), key)
	}
	for _, g := range c.Groups() {
		for _, m := range g.matches {
			for _, f := range m.refFields() {
				if !refersTo(f.ref) {
					continue
				}
				if err := c.ValidateTeamRef(f.ref, m.Path(), f.field); err != nil {
					return err
				}
			}
		}
		for i, sp := range g.standing {
			if !refersTo(sp.TeamRef) {
				continue
			}
			if err := c.ValidateTeamRef(sp.TeamRef, g.Key().String(), knockoutField(i)); err != nil {
				return err
			}
		}
	}
	return nil
}
