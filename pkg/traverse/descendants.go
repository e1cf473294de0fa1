package traverse

import (
	"fmt"
	"slices"
)

// Descendants returns every descendant of id in discovery order, excluding
// id itself. It follows each marriage where the person is a parent; for a
// polygamous wife only her own children are followed. A marriage (or wife
// slot) is expanded at most once.
func (g *Graph) Descendants(id string) []string {
	var out []string
	seen := map[string]bool{id: true}
	expanded := make(map[string]bool)
	stack := []string{id}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, mi := range g.partyOf[cur] {
			m := g.marriages[mi]
			key := m.ID
			if m.IsPolygamous() && m.HusbandID != cur {
				key = fmt.Sprintf("%s#%s", m.ID, cur)
			}
			if expanded[key] {
				g.trace("marriage already expanded", "marriage", m.ID, "person", cur)
				continue
			}
			expanded[key] = true

			var fresh []string
			for _, c := range childrenVia(m, cur) {
				if !seen[c] {
					seen[c] = true
					fresh = append(fresh, c)
				}
			}
			out = append(out, fresh...)
			// Push in reverse so children pop in recorded order.
			for i := len(fresh) - 1; i >= 0; i-- {
				stack = append(stack, fresh[i])
			}
		}
	}
	return out
}

// FamilyBlock returns id followed by every partner of id. Collapsing any
// member of a block hides the whole block.
func (g *Graph) FamilyBlock(id string) []string {
	return append([]string{id}, g.Partners(id)...)
}

// HiddenSet returns the ids hidden by the isCollapsed flags of the snapshot.
//
// For every collapsed person the whole family block is hidden along with all
// descendants of every block member. Partners of hidden descendants are
// hidden too, so no family block is ever shown half-collapsed. Ids in keep
// stay visible, but their descendants are still hidden when a collapse
// reaches them.
func (g *Graph) HiddenSet(keep ...string) map[string]bool {
	hidden := make(map[string]bool)
	enqueued := make(map[string]bool)
	var queue []string
	visit := func(id string) {
		if enqueued[id] {
			return
		}
		enqueued[id] = true
		queue = append(queue, id)
		if !slices.Contains(keep, id) {
			hidden[id] = true
		}
	}

	for _, p := range g.people {
		if !p.IsCollapsed {
			continue
		}
		for _, b := range g.FamilyBlock(p.ID) {
			visit(b)
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range g.Descendants(cur) {
			visit(d)
		}
		for _, p := range g.Partners(cur) {
			visit(p)
		}
	}
	return hidden
}

// Hidden returns the hidden ids of [Graph.HiddenSet] in people order.
func (g *Graph) Hidden(keep ...string) []string {
	set := g.HiddenSet(keep...)
	var out []string
	for _, p := range g.people {
		if set[p.ID] {
			out = append(out, p.ID)
			delete(set, p.ID)
		}
	}
	// Ids referenced by marriages but missing from people.
	rest := make([]string, 0, len(set))
	for id := range set {
		rest = append(rest, id)
	}
	slices.Sort(rest)
	return append(out, rest...)
}
