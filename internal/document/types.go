package document

// Entry type discriminators.
const (
	EntryMatch = "match"
	EntryBreak = "break"
)

// Group type discriminators.
const (
	GroupLeague    = "league"
	GroupKnockout  = "knockout"
	GroupCrossover = "crossover"
)

// Competition is the root of a competition document.
type Competition struct {
	Version string  `json:"version,omitempty"`
	Name    string  `json:"name"`
	Notes   string  `json:"notes,omitempty"`
	Clubs   []Club  `json:"clubs,omitempty"`
	Teams   []Team  `json:"teams"`
	Stages  []Stage `json:"stages"`
}

// Club groups teams that belong to the same organisation.
type Club struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Notes string `json:"notes,omitempty"`
}

// Team is a registered competitor.
type Team struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Club     string    `json:"club,omitempty"`
	Contacts []Contact `json:"contacts,omitempty"`
	Players  []Player  `json:"players,omitempty"`
	Notes    string    `json:"notes,omitempty"`
}

// Contact is a person to contact about a team.
type Contact struct {
	ID     string   `json:"id"`
	Name   string   `json:"name,omitempty"`
	Roles  []string `json:"roles,omitempty"`
	Emails []string `json:"emails,omitempty"`
	Phones []string `json:"phones,omitempty"`
}

// Player is a registered player of a team.
type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Number *int   `json:"number,omitempty"`
	Notes  string `json:"notes,omitempty"`
}

// Stage is a sequential phase of the competition.
type Stage struct {
	ID          string   `json:"id"`
	Name        string   `json:"name,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	Description []string `json:"description,omitempty"`
	Groups      []Group  `json:"groups"`
}

// Group is a league, knockout or crossover within a stage.
type Group struct {
	ID           string          `json:"id"`
	Name         string          `json:"name,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	Description  []string        `json:"description,omitempty"`
	Type         string          `json:"type"`
	MatchType    string          `json:"matchType"`
	Sets         *SetConfig      `json:"sets,omitempty"`
	League       *LeagueConfig   `json:"league,omitempty"`
	Knockout     *KnockoutConfig `json:"knockout,omitempty"`
	DrawsAllowed bool            `json:"drawsAllowed,omitempty"`
	Matches      []Entry         `json:"matches"`
}

// SetConfig is the optional set configuration of a group. Omitted fields
// take their defaults.
type SetConfig struct {
	MaxSets            *int `json:"maxSets,omitempty"`
	SetsToWin          *int `json:"setsToWin,omitempty"`
	ClearPoints        *int `json:"clearPoints,omitempty"`
	MinPoints          *int `json:"minPoints,omitempty"`
	PointsToWin        *int `json:"pointsToWin,omitempty"`
	LastSetPointsToWin *int `json:"lastSetPointsToWin,omitempty"`
	MaxPoints          *int `json:"maxPoints,omitempty"`
	LastSetMaxPoints   *int `json:"lastSetMaxPoints,omitempty"`
}

// LeagueConfig is the league configuration of a league group.
type LeagueConfig struct {
	Ordering []string      `json:"ordering"`
	Points   *LeaguePoints `json:"points,omitempty"`
}

// LeaguePoints is the points formula; omitted fields take their defaults.
type LeaguePoints struct {
	Played    *int `json:"played,omitempty"`
	PerSet    *int `json:"perSet,omitempty"`
	Win       *int `json:"win,omitempty"`
	WinByOne  *int `json:"winByOne,omitempty"`
	Lose      *int `json:"lose,omitempty"`
	LoseByOne *int `json:"loseByOne,omitempty"`
	Forfeit   *int `json:"forfeit,omitempty"`
}

// KnockoutConfig lists the final positions of a knockout group.
type KnockoutConfig struct {
	Standing []StandingPosition `json:"standing"`
}

// StandingPosition maps a position label to a team reference.
type StandingPosition struct {
	Position string `json:"position"`
	ID       string `json:"id"`
}

// Entry is a match or a break. Type selects which fields apply.
type Entry struct {
	Type string `json:"type"`

	// Match fields
	ID        string     `json:"id,omitempty"`
	Court     string     `json:"court,omitempty"`
	Venue     string     `json:"venue,omitempty"`
	Warmup    string     `json:"warmup,omitempty"`
	Complete  *bool      `json:"complete,omitempty"`
	HomeTeam  *MatchTeam `json:"homeTeam,omitempty"`
	AwayTeam  *MatchTeam `json:"awayTeam,omitempty"`
	Officials *Officials `json:"officials,omitempty"`
	MVP       string     `json:"mvp,omitempty"`
	Manager   *Manager   `json:"manager,omitempty"`
	Friendly  bool       `json:"friendly,omitempty"`
	Notes     string     `json:"notes,omitempty"`

	// Shared scheduling fields
	Date     string `json:"date,omitempty"`
	Start    string `json:"start,omitempty"`
	Duration string `json:"duration,omitempty"`

	// Break fields
	Name string `json:"name,omitempty"`
}

// MatchTeam is one side of a match.
type MatchTeam struct {
	ID            string   `json:"id"`
	Scores        []int    `json:"scores"`
	MVP           string   `json:"mvp,omitempty"`
	Forfeit       bool     `json:"forfeit,omitempty"`
	BonusPoints   int      `json:"bonusPoints,omitempty"`
	PenaltyPoints int      `json:"penaltyPoints,omitempty"`
	Notes         string   `json:"notes,omitempty"`
	Players       []string `json:"players,omitempty"`
}

// Officials is either an officiating team reference or named persons.
type Officials struct {
	Team               string   `json:"team,omitempty"`
	First              string   `json:"first,omitempty"`
	Second             string   `json:"second,omitempty"`
	Challenge          string   `json:"challenge,omitempty"`
	AssistantChallenge string   `json:"assistantChallenge,omitempty"`
	Reserve            string   `json:"reserve,omitempty"`
	Scorer             string   `json:"scorer,omitempty"`
	AssistantScorer    string   `json:"assistantScorer,omitempty"`
	Linespersons       []string `json:"linespersons,omitempty"`
	Timekeeper         string   `json:"timekeeper,omitempty"`
}

// Manager is the match manager: a team reference or a named person.
type Manager struct {
	Team string `json:"team,omitempty"`
	Name string `json:"name,omitempty"`
}
