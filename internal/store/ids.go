package store

import (
	"sync"

	"github.com/google/uuid"
)

// IDGenerator hands out report IDs, one per exported report.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator issues UUIDv7 report IDs, so IDs sort in export order.
type UUIDv7Generator struct{}

func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator hands out caller-chosen report IDs in order. It backs
// `vbc export --id` and scenario runs, where reports need stable IDs.
type FixedGenerator struct {
	mu      sync.Mutex
	pending []string
}

func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{pending: ids}
}

// Generate pops the next ID. Asking for more reports than IDs supplied
// is a programming error and panics.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.pending) == 0 {
		panic("store: no report IDs left")
	}
	id := g.pending[0]
	g.pending = g.pending[1:]
	return id
}
