package competition

import (
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/vbc/internal/document"
	"github.com/roach88/vbc/internal/teamref"
)

// Sentinel team returned whenever a reference cannot be resolved.
const (
	UnknownTeamID   = "UNKNOWN_TEAM_ID"
	UnknownTeamName = "Unknown Team"
)

// Team is a registered competitor.
type Team struct {
	ID       string
	Name     string
	ClubID   string
	Notes    string
	Contacts []document.Contact
	Players  []document.Player
}

// IsUnknown reports whether t is the Unknown sentinel.
func (t *Team) IsUnknown() bool {
	return t.ID == UnknownTeamID
}

// Club groups teams from one organisation.
type Club struct {
	ID    string
	Name  string
	Notes string
}

// Competition is the root of the graph and the namespace for team lookups.
type Competition struct {
	Name    string
	Version string
	Notes   string

	clubs     []*Club
	clubIndex map[string]*Club
	teams     []*Team
	teamIndex map[string]*Team
	stages    []*Stage
	stageIdx  map[string]*Stage
	unknown   *Team

	// revision is bumped by every mutation; caches compare against it.
	revision uint64

	refs   map[string]parsedRef
	logger *slog.Logger

	// building holds the league groups whose tables are being built.
	// tableCycles counts re-entries into one of them.
	building    map[*Group]bool
	tableCycles int
}

type parsedRef struct {
	ref *teamref.Ref
	err error
}

// Option configures a Competition.
type Option func(*Competition)

// WithLogger sets the logger used for debug diagnostics.
// The default logger discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Competition) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates an empty competition.
func New(name string, opts ...Option) *Competition {
	c := &Competition{
		Name:      name,
		clubIndex: make(map[string]*Club),
		teamIndex: make(map[string]*Team),
		stageIdx:  make(map[string]*Stage),
		unknown:   &Team{ID: UnknownTeamID, Name: UnknownTeamName},
		refs:      make(map[string]parsedRef),
		building:  make(map[*Group]bool),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// touch invalidates every derived cache.
func (c *Competition) touch() {
	c.revision++
}

// Revision returns the mutation counter. It changes whenever derived state
// may have changed.
func (c *Competition) Revision() uint64 {
	return c.revision
}

// UnknownTeam returns the sentinel team.
func (c *Competition) UnknownTeam() *Team {
	return c.unknown
}

// AddClub registers a club.
func (c *Competition) AddClub(club Club) (*Club, error) {
	if !teamref.ValidID(club.ID) {
		return nil, newError(ErrInvalidID, KindSyntax, "", "clubs", "club ID %q contains a reserved character", club.ID)
	}
	if _, ok := c.clubIndex[club.ID]; ok {
		return nil, newError(ErrDuplicateClub, KindRule, "", "clubs", "club with ID %q already exists in the competition", club.ID)
	}
	cl := &club
	c.clubs = append(c.clubs, cl)
	c.clubIndex[cl.ID] = cl
	c.touch()
	return cl, nil
}

// AddTeam registers a team. Contact and player IDs must be unique within
// the team and the club, if given, must already exist.
func (c *Competition) AddTeam(team Team) (*Team, error) {
	if !teamref.ValidID(team.ID) || team.ID == UnknownTeamID {
		return nil, newError(ErrInvalidID, KindSyntax, "", "teams", "team ID %q is not a valid team ID", team.ID)
	}
	if _, ok := c.teamIndex[team.ID]; ok {
		return nil, newError(ErrDuplicateTeam, KindRule, "", "teams", "team with ID %q already exists in the competition", team.ID)
	}
	if team.ClubID != "" {
		if _, ok := c.clubIndex[team.ClubID]; !ok {
			return nil, newError(ErrUnknownClub, KindReference, team.ID, "club", "club with ID %q does not exist", team.ClubID)
		}
	}
	seen := make(map[string]bool)
	for _, contact := range team.Contacts {
		if seen[contact.ID] {
			return nil, newError(ErrDuplicateContact, KindRule, team.ID, "contacts", "contact with ID %q already exists in the team", contact.ID)
		}
		seen[contact.ID] = true
	}
	seen = make(map[string]bool)
	for _, player := range team.Players {
		if seen[player.ID] {
			return nil, newError(ErrDuplicatePlayer, KindRule, team.ID, "players", "player with ID %q already exists in the team", player.ID)
		}
		seen[player.ID] = true
	}

	t := &team
	c.teams = append(c.teams, t)
	c.teamIndex[t.ID] = t
	c.touch()
	return t, nil
}

// AddStage appends a new, empty stage.
func (c *Competition) AddStage(id, name string) (*Stage, error) {
	if !teamref.ValidID(id) {
		return nil, newError(ErrInvalidID, KindSyntax, id, "id", "stage ID %q contains a reserved character", id)
	}
	if _, ok := c.stageIdx[id]; ok {
		return nil, newError(ErrDuplicateStage, KindRule, id, "id", "stage with ID %q already exists in the competition", id)
	}
	s := &Stage{
		ID:       id,
		Name:     name,
		comp:     c,
		groupIdx: make(map[string]*Group),
	}
	c.stages = append(c.stages, s)
	c.stageIdx[id] = s
	c.touch()
	return s, nil
}

// Clubs returns the clubs in registration order.
func (c *Competition) Clubs() []*Club {
	return c.clubs
}

// Teams returns the registered teams in registration order.
func (c *Competition) Teams() []*Team {
	return c.teams
}

// HasTeam reports whether id is a registered team.
func (c *Competition) HasTeam(id string) bool {
	_, ok := c.teamIndex[id]
	return ok
}

// Stages returns the stages in order.
func (c *Competition) Stages() []*Stage {
	return c.stages
}

// Stage returns the stage with id.
func (c *Competition) Stage(id string) (*Stage, bool) {
	s, ok := c.stageIdx[id]
	return s, ok
}

// Group returns the group identified by key.
func (c *Competition) Group(key teamref.GroupKey) (*Group, bool) {
	s, ok := c.stageIdx[key.Stage]
	if !ok {
		return nil, false
	}
	return s.Group(key.Group)
}

// MatchByPath returns the match addressed as "STAGE:GROUP:MATCH".
func (c *Competition) MatchByPath(path string) (*Match, bool) {
	i := strings.LastIndexByte(path, ':')
	if i < 0 {
		return nil, false
	}
	key, err := teamref.ParseGroupKey(path[:i])
	if err != nil {
		return nil, false
	}
	g, ok := c.Group(key)
	if !ok {
		return nil, false
	}
	return g.MatchByID(path[i+1:])
}

// IsComplete reports whether every stage is complete.
func (c *Competition) IsComplete() bool {
	for _, s := range c.stages {
		if !s.IsComplete() {
			return false
		}
	}
	return true
}

// Groups returns every group of every stage in order.
func (c *Competition) Groups() []*Group {
	var groups []*Group
	for _, s := range c.stages {
		groups = append(groups, s.groups...)
	}
	return groups
}

// parse returns the parsed form of a reference. Results are cached since
// reference strings are immutable.
func (c *Competition) parse(ref string) (*teamref.Ref, error) {
	if p, ok := c.refs[ref]; ok {
		return p.ref, p.err
	}
	r, err := teamref.Parse(ref)
	c.refs[ref] = parsedRef{ref: r, err: err}
	return r, err
}
