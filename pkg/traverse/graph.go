package traverse

import (
	"github.com/matzehuels/familytower/pkg/family"
	"github.com/matzehuels/familytower/pkg/observability"
)

// Graph indexes a family snapshot for relationship queries.
// It never modifies the records it was built from.
type Graph struct {
	people    []family.Person
	marriages []family.Marriage
	byID      map[string]int
	childOf   map[string][]int // person -> marriages listing them as a child
	partyOf   map[string][]int // person -> marriages listing them as a partner
	trace     observability.Tracer
}

// Option configures a Graph.
type Option func(*Graph)

// WithTracer sets the tracer receiving guard and fallback events.
func WithTracer(t observability.Tracer) Option {
	return func(g *Graph) { g.trace = t.OrNop() }
}

// New indexes people and marriages.
func New(people []family.Person, marriages []family.Marriage, opts ...Option) *Graph {
	g := &Graph{
		people:    people,
		marriages: marriages,
		byID:      make(map[string]int, len(people)),
		childOf:   make(map[string][]int),
		partyOf:   make(map[string][]int),
		trace:     observability.NopTracer,
	}
	for _, opt := range opts {
		opt(g)
	}
	for i, p := range people {
		if _, dup := g.byID[p.ID]; !dup {
			g.byID[p.ID] = i
		}
	}
	for i, m := range marriages {
		for _, id := range m.Parties() {
			g.partyOf[id] = appendOnce(g.partyOf[id], i)
		}
		for _, id := range m.Children() {
			g.childOf[id] = appendOnce(g.childOf[id], i)
		}
	}
	return g
}

// Person returns the person with the given id.
func (g *Graph) Person(id string) (family.Person, bool) {
	i, ok := g.byID[id]
	if !ok {
		return family.Person{}, false
	}
	return g.people[i], true
}

// Partners returns the partners of id across every marriage, in marriage
// order and without duplicates. A polygamous wife's partners are her
// husband and her co-wives.
func (g *Graph) Partners(id string) []string {
	var out []string
	seen := map[string]bool{id: true}
	for _, mi := range g.partyOf[id] {
		for _, p := range g.marriages[mi].Partners(id) {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}

// HasChildren reports whether id is a parent in any marriage with children.
// For a polygamous wife only her own children count.
func (g *Graph) HasChildren(id string) bool {
	for _, mi := range g.partyOf[id] {
		if len(childrenVia(g.marriages[mi], id)) > 0 {
			return true
		}
	}
	return false
}

// childrenVia returns the children of m that id is a parent of.
func childrenVia(m family.Marriage, id string) []string {
	if !m.IsPolygamous() || m.HusbandID == id {
		return m.Children()
	}
	var out []string
	for _, w := range m.Wives {
		if w.WifeID == id {
			out = append(out, w.ChildrenIDs...)
		}
	}
	return out
}

func appendOnce(s []int, v int) []int {
	if n := len(s); n > 0 && s[n-1] == v {
		return s
	}
	return append(s, v)
}
