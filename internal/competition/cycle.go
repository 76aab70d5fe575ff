package competition

import (
	"fmt"
	"strings"

	"github.com/roach88/vbc/internal/teamref"
)

// CycleWarning describes a set of groups whose team references depend on
// each other.
type CycleWarning struct {
	Path    []string `json:"path"` // e.g. ["S:A", "S:B", "S:A"]
	Message string   `json:"message"`
	Level   string   `json:"level"`
}

// AnalyzeReferenceCycles finds groups whose matches depend, directly or
// through other groups, on their own results.
//
// The algorithm:
//  1. Build the group → referenced group graph from ReferencedGroups
//  2. Use Tarjan's algorithm to find strongly connected components
//  3. Report each SCC with more than one group as a warning
//
// Same-group references are normal in knockouts (a final refers to its
// semi-finals) and are not reported. Cycles through match results are
// warnings: resolution terminates and yields the Unknown team. Cycles
// through league positions are load errors, see checkLeagueCycles.
func (c *Competition) AnalyzeReferenceCycles() []CycleWarning {
	graph, order := c.referenceGraph()
	sccs := tarjanSCC(graph, order)

	var warnings []CycleWarning
	for _, scc := range sccs {
		if len(scc) > 1 {
			warnings = append(warnings, cycleSCCToWarning(scc, graph))
		}
	}
	return warnings
}

// referenceGraph maps "stage:group" → referenced "stage:group" keys of
// groups that exist. Same-group references are dropped.
type referenceGraph map[string][]string

func (c *Competition) referenceGraph() (referenceGraph, []string) {
	graph := make(referenceGraph)
	var order []string
	for _, g := range c.Groups() {
		from := g.Key().String()
		order = append(order, from)
		graph[from] = []string{}
		for _, key := range g.ReferencedGroups() {
			if _, ok := c.Group(key); !ok {
				continue
			}
			to := key.String()
			if to == from {
				continue
			}
			graph[from] = append(graph[from], to)
		}
	}
	return graph, order
}

// leagueGraph maps each group to the other groups whose league positions
// decide its home and away teams.
func (c *Competition) leagueGraph() (referenceGraph, []string) {
	graph := make(referenceGraph)
	var order []string
	for _, g := range c.Groups() {
		from := g.Key().String()
		order = append(order, from)
		graph[from] = []string{}
		seen := make(map[string]bool)
		for _, m := range g.matches {
			for _, ref := range []string{m.spec.Home.ID, m.spec.Away.ID} {
				r, err := c.parse(ref)
				if err != nil {
					continue
				}
				for _, op := range operands(r) {
					if op.Kind != teamref.Structured || !op.IsLeague() {
						continue
					}
					to := op.GroupKey().String()
					if _, ok := c.Group(op.GroupKey()); !ok || to == from || seen[to] {
						continue
					}
					seen[to] = true
					graph[from] = append(graph[from], to)
				}
			}
		}
	}
	return graph, order
}

// checkLeagueCycles rejects league groups whose teams depend on each
// other's final positions. No order of play can ever decide such tables.
func (c *Competition) checkLeagueCycles() error {
	graph, order := c.leagueGraph()
	for _, scc := range tarjanSCC(graph, order) {
		if len(scc) < 2 {
			continue
		}
		path := reconstructCyclePath(scc, graph)
		return newError(ErrLeagueCycle, KindReference, path[0], "",
			"league positions depend on each other: %s", strings.Join(path, " → "))
	}
	return nil
}

// tarjanSCC finds strongly connected components using Tarjan's algorithm.
// Nodes are visited in order so the result is deterministic.
func tarjanSCC(graph referenceGraph, order []string) [][]string {
	var (
		index   = 0
		stack   []string
		indices = make(map[string]int)
		lowlink = make(map[string]int)
		onStack = make(map[string]bool)
		sccs    [][]string
	)

	var strongConnect func(string)
	strongConnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range graph[v] {
			if _, visited := indices[w]; !visited {
				strongConnect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], indices[w])
			}
		}

		// v is a root node: pop the stack and emit an SCC
		if lowlink[v] == indices[v] {
			var scc []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	for _, node := range order {
		if _, visited := indices[node]; !visited {
			strongConnect(node)
		}
	}
	return sccs
}

func cycleSCCToWarning(scc []string, graph referenceGraph) CycleWarning {
	path := reconstructCyclePath(scc, graph)
	return CycleWarning{
		Path:    path,
		Message: fmt.Sprintf("Groups reference each other's results: %s", strings.Join(path, " → ")),
		Level:   "warning",
	}
}

// reconstructCyclePath walks edges inside the SCC from its last-popped
// member until it returns to the start.
func reconstructCyclePath(scc []string, graph referenceGraph) []string {
	if len(scc) == 0 {
		return []string{}
	}
	members := make(map[string]bool, len(scc))
	for _, node := range scc {
		members[node] = true
	}

	start := scc[len(scc)-1]
	current := start
	path := []string{current}
	visited := make(map[string]bool)
	for {
		visited[current] = true
		var next string
		for _, neighbor := range graph[current] {
			if members[neighbor] && (!visited[neighbor] || neighbor == start) {
				next = neighbor
				break
			}
		}
		if next == "" {
			break
		}
		path = append(path, next)
		if next == start {
			break
		}
		current = next
	}
	return path
}
