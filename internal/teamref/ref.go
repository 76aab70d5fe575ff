package teamref

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the shape of a parsed reference.
type Kind int

const (
	Literal Kind = iota
	Structured
	Ternary
)

func (k Kind) String() string {
	switch k {
	case Literal:
		return "literal"
	case Structured:
		return "structured"
	case Ternary:
		return "ternary"
	default:
		return "unknown"
	}
}

// Selector and qualifier keywords.
const (
	SelectorLeague  = "league"
	QualifierWinner = "winner"
	QualifierLoser  = "loser"
)

// GroupKey identifies a group within a stage.
type GroupKey struct {
	Stage string
	Group string
}

func (k GroupKey) String() string {
	return k.Stage + ":" + k.Group
}

// ParseGroupKey parses "STAGE:GROUP".
func ParseGroupKey(s string) (GroupKey, error) {
	stage, group, ok := strings.Cut(s, ":")
	if !ok || !ValidID(stage) || !ValidID(group) {
		return GroupKey{}, fmt.Errorf("invalid group key %q: want STAGE:GROUP", s)
	}
	return GroupKey{Stage: stage, Group: group}, nil
}

// Ref is a parsed team reference.
type Ref struct {
	Kind Kind

	// Literal
	ID string

	// Structured
	Stage     string
	Group     string
	Selector  string // match ID or "league"
	Qualifier string // "winner", "loser" or a league position
	Position  int    // parsed Qualifier when Selector is "league"

	// Ternary: Left == Right ? IfTrue : IfFalse
	Left    *Ref
	Right   *Ref
	IfTrue  *Ref
	IfFalse *Ref
}

// IsLeague reports whether r is a league position reference.
func (r *Ref) IsLeague() bool {
	return r.Kind == Structured && r.Selector == SelectorLeague
}

// GroupKey returns the stage and group of a structured reference.
func (r *Ref) GroupKey() GroupKey {
	return GroupKey{Stage: r.Stage, Group: r.Group}
}

// Groups lists every group a reference depends on, in order of appearance.
// Ternary operands are inspected one level deep.
func (r *Ref) Groups() []GroupKey {
	switch r.Kind {
	case Structured:
		return []GroupKey{r.GroupKey()}
	case Ternary:
		var keys []GroupKey
		for _, operand := range []*Ref{r.Left, r.Right, r.IfTrue, r.IfFalse} {
			if operand.Kind == Structured {
				keys = append(keys, operand.GroupKey())
			}
		}
		return keys
	default:
		return nil
	}
}

// String renders r back into reference syntax.
func (r *Ref) String() string {
	switch r.Kind {
	case Literal:
		return r.ID
	case Structured:
		qualifier := r.Qualifier
		if r.IsLeague() {
			qualifier = strconv.Itoa(r.Position)
		}
		return fmt.Sprintf("{%s:%s:%s:%s}", r.Stage, r.Group, r.Selector, qualifier)
	case Ternary:
		return fmt.Sprintf("%s==%s?%s:%s", r.Left, r.Right, r.IfTrue, r.IfFalse)
	default:
		return ""
	}
}
