package competition

import (
	"github.com/roach88/vbc/internal/teamref"
)

// ReferencedGroups returns the stage:group pairs referenced by the team,
// officials and manager fields of the group's matches, in order of first
// appearance. Ternary references contribute each structured operand.
func (g *Group) ReferencedGroups() []teamref.GroupKey {
	c := g.comp()
	if keys, ok := g.refsAt.get(c.revision); ok {
		return keys
	}
	var keys []teamref.GroupKey
	seen := make(map[teamref.GroupKey]bool)
	for _, m := range g.matches {
		for _, f := range m.refFields() {
			r, err := c.parse(f.ref)
			if err != nil {
				continue
			}
			for _, key := range r.Groups() {
				if !seen[key] {
					seen[key] = true
					keys = append(keys, key)
				}
			}
		}
	}
	g.refsAt.set(c.revision, keys)
	return keys
}

// MayHaveTeam reports whether teamID could still end up in the group
// through a reference to an upstream group that has not finished. Teams
// already known to play in the group are not maybes, and a complete group
// has no maybe teams.
func (g *Group) MayHaveTeam(teamID string) bool {
	c := g.comp()
	maybe, ok := g.maybeAt.get(c.revision)
	if !ok {
		maybe = make(map[string]bool)
		g.maybeAt.set(c.revision, maybe)
	}
	if v, ok := maybe[teamID]; ok {
		return v
	}
	v := !g.HasTeam(teamID) && g.mayHaveTeam(teamID, map[*Group]bool{})
	maybe[teamID] = v
	return v
}

func (g *Group) mayHaveTeam(teamID string, visiting map[*Group]bool) bool {
	if g.IsComplete() {
		return false
	}
	c := g.comp()
	if visiting[g] {
		c.logger.Debug("reference cycle while checking maybe teams",
			"group", g.Key().String(), "team", teamID)
		return false
	}
	visiting[g] = true
	defer delete(visiting, g)

	for _, key := range g.ReferencedGroups() {
		if key == g.Key() {
			continue
		}
		upstream, ok := c.Group(key)
		if !ok || upstream.IsComplete() {
			continue
		}
		if upstream.HasTeam(teamID) || upstream.mayHaveTeam(teamID, visiting) {
			return true
		}
	}
	return false
}

// MaybeTeamIDs lists the registered teams that may still reach the group,
// in registration order.
func (g *Group) MaybeTeamIDs() []string {
	var ids []string
	for _, t := range g.comp().teams {
		if g.MayHaveTeam(t.ID) {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

// MayHaveTeam reports whether teamID may still reach any group of the stage.
func (s *Stage) MayHaveTeam(teamID string) bool {
	for _, g := range s.groups {
		if g.MayHaveTeam(teamID) {
			return true
		}
	}
	return false
}

// MaybeTeamIDs lists the registered teams that may still reach any group of
// the stage, in registration order.
func (s *Stage) MaybeTeamIDs() []string {
	var ids []string
	for _, t := range s.comp.teams {
		if s.MayHaveTeam(t.ID) {
			ids = append(ids, t.ID)
		}
	}
	return ids
}
