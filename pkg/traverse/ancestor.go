package traverse

// HighestAncestor follows the "child of" relation upward from id, moving to
// the husband of a polygamous marriage or the first known spouse of a
// monogamous one, until no parent marriage exists. A cycle stops the walk at
// the last person reached before it closes.
func (g *Graph) HighestAncestor(id string) string {
	visited := map[string]bool{id: true}
	cur := id
	for {
		ms := g.childOf[cur]
		if len(ms) == 0 {
			return cur
		}
		m := g.marriages[ms[0]]
		var next string
		if m.IsPolygamous() {
			next = m.HusbandID
		} else if parties := m.Parties(); len(parties) > 0 {
			next = parties[0]
		}
		if next == "" {
			return cur
		}
		if visited[next] {
			g.trace("ancestor cycle detected", "person", cur, "parent", next)
			return cur
		}
		visited[next] = true
		cur = next
	}
}
