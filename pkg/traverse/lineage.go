package traverse

import "github.com/matzehuels/familytower/pkg/family"

// Highlight is the set of node and edge ids to mark for a lineage trace.
// Both slices are ordered by discovery and free of duplicates.
type Highlight struct {
	Nodes []string `json:"nodes"`
	Edges []string `json:"edges"`
}

// Contains reports whether id is a highlighted node or edge.
func (h Highlight) Contains(id string) bool {
	for _, n := range h.Nodes {
		if n == id {
			return true
		}
	}
	for _, e := range h.Edges {
		if e == id {
			return true
		}
	}
	return false
}

// Lineage traces every ancestor of id.
//
// Starting from id, it finds each marriage listing the person as a child and
// adds both parents (and, for monogamous marriages, the union node) together
// with the connecting edge ids, then recurses on each parent. Unknown
// parents resolve to their placeholder ids so the highlight matches layout
// output. The start id is always part of the result.
func (g *Graph) Lineage(id string) Highlight {
	var h Highlight
	nodes := make(map[string]bool)
	edges := make(map[string]bool)
	addNode := func(n string) {
		if !nodes[n] {
			nodes[n] = true
			h.Nodes = append(h.Nodes, n)
		}
	}
	addEdge := func(e string) {
		if !edges[e] {
			edges[e] = true
			h.Edges = append(h.Edges, e)
		}
	}

	visited := make(map[string]bool)
	var walk func(string)
	walk = func(cur string) {
		if visited[cur] {
			g.trace("lineage revisited person", "person", cur)
			return
		}
		visited[cur] = true

		for _, mi := range g.childOf[cur] {
			m := g.marriages[mi]
			var parents []string
			if m.IsPolygamous() {
				w := m.WifeOf(cur)
				if w < 0 {
					continue
				}
				husband, wife := m.ResolvedHusband(), m.ResolvedWife(w)
				addNode(husband)
				addNode(wife)
				addEdge(family.EdgeID(family.EdgePolygamous, m.ID, husband, wife))
				addEdge(family.EdgeID(family.EdgeParentChild, m.ID, wife, cur))
				parents = []string{husband, wife}
			} else {
				union := family.UnionNodeID(m.ID)
				parents = m.ResolvedSpouses()
				for _, s := range parents {
					addNode(s)
					addEdge(family.EdgeID(family.EdgeMonogamous, m.ID, s, union))
				}
				addNode(union)
				addEdge(family.EdgeID(family.EdgeParentChild, m.ID, union, cur))
			}
			for _, p := range parents {
				walk(p)
			}
		}
	}

	addNode(id)
	walk(id)
	return h
}
