package competition

import (
	"slices"

	"github.com/roach88/vbc/internal/outcome"
	"github.com/roach88/vbc/internal/standings"
	"github.com/roach88/vbc/internal/teamref"
)

// Stage is a sequential phase of a competition. Its groups run in parallel.
type Stage struct {
	ID          string
	Name        string
	Notes       string
	Description []string

	comp     *Competition
	groups   []*Group
	groupIdx map[string]*Group

	completeAt revisionCache[bool]
}

// Competition returns the owning competition.
func (s *Stage) Competition() *Competition {
	return s.comp
}

// GroupSpec describes a group to add to a stage.
type GroupSpec struct {
	ID           string
	Name         string
	Kind         GroupKind
	MatchType    outcome.MatchType
	Sets         outcome.SetConfig
	DrawsAllowed bool

	// League is required for league groups and ignored otherwise.
	League *standings.Config
	// Standing is the optional final standing of a knockout group.
	Standing []StandingPosition
}

// AddGroup appends a group to the stage after checking its configuration.
func (s *Stage) AddGroup(spec GroupSpec) (*Group, error) {
	path := teamref.GroupKey{Stage: s.ID, Group: spec.ID}.String()
	if !teamref.ValidID(spec.ID) {
		return nil, newError(ErrInvalidID, KindSyntax, path, "id", "group ID %q contains a reserved character", spec.ID)
	}
	if _, ok := s.groupIdx[spec.ID]; ok {
		return nil, newError(ErrDuplicateGroup, KindRule, path, "id", "group with ID %q already exists in stage %q", spec.ID, s.ID)
	}
	if !spec.Kind.Valid() {
		return nil, newError(ErrInvalidGroup, KindRule, path, "type", "unknown group type %q", spec.Kind)
	}
	if !spec.MatchType.Valid() {
		return nil, newError(ErrInvalidGroup, KindRule, path, "matchType", "unknown match type %q", spec.MatchType)
	}
	if spec.MatchType == outcome.Sets {
		if err := spec.Sets.Validate(); err != nil {
			return nil, wrapError(ErrInvalidConfig, KindRule, path, "sets", err)
		}
	}

	g := &Group{
		ID:           spec.ID,
		Name:         spec.Name,
		Kind:         spec.Kind,
		MatchType:    spec.MatchType,
		Sets:         spec.Sets,
		DrawsAllowed: spec.DrawsAllowed,
		stage:        s,
		matchIndex:   make(map[string]*Match),
	}
	switch spec.Kind {
	case League:
		cfg := standings.DefaultConfig()
		if spec.League != nil {
			cfg = *spec.League
		}
		if err := cfg.Validate(); err != nil {
			return nil, wrapError(ErrInvalidConfig, KindRule, path, "league", err)
		}
		g.league = &leagueState{config: cfg}
	case Knockout:
		g.standing = slices.Clone(spec.Standing)
	}

	s.groups = append(s.groups, g)
	s.groupIdx[g.ID] = g
	s.comp.touch()
	return g, nil
}

// Groups returns the groups in order.
func (s *Stage) Groups() []*Group {
	return s.groups
}

// Group returns the group with id.
func (s *Stage) Group(id string) (*Group, bool) {
	g, ok := s.groupIdx[id]
	return g, ok
}

// IsComplete reports whether every group in the stage is complete.
func (s *Stage) IsComplete() bool {
	if v, ok := s.completeAt.get(s.comp.revision); ok {
		return v
	}
	complete := true
	for _, g := range s.groups {
		if !g.IsComplete() {
			complete = false
			break
		}
	}
	s.completeAt.set(s.comp.revision, complete)
	return complete
}

// TeamIDs returns the resolved IDs of teams appearing in any group of the
// stage, in order of first appearance.
func (s *Stage) TeamIDs(filter MatchFilter) []string {
	var ids []string
	seen := make(map[string]bool)
	for _, g := range s.groups {
		for _, id := range g.TeamIDs(filter) {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// Matches returns the matches of every group involving teamID.
func (s *Stage) Matches(teamID string, filter MatchFilter) []*Match {
	var out []*Match
	for _, g := range s.groups {
		out = append(out, g.Matches(teamID, filter)...)
	}
	return out
}

// revisionCache holds a value computed at a given competition revision.
type revisionCache[T any] struct {
	valid    bool
	revision uint64
	value    T
}

func (rc *revisionCache[T]) get(revision uint64) (T, bool) {
	if rc.valid && rc.revision == revision {
		return rc.value, true
	}
	var zero T
	return zero, false
}

func (rc *revisionCache[T]) set(revision uint64, v T) {
	rc.valid = true
	rc.revision = revision
	rc.value = v
}
