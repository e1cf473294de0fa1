package traverse

import (
	ferrors "github.com/matzehuels/familytower/pkg/errors"
	"github.com/matzehuels/familytower/pkg/family"
)

// FilterByRoot returns the part of the family reachable from rootID.
//
// The traversal is breadth-first over the marriage graph: a person's
// marriages lead to every partner and every child. Placeholder partners of
// a marriage touching a reachable person are always included so family
// blocks stay whole. Marriages are kept when their participants are
// contained in the result: both spouses for monogamous marriages (unknown
// slots count as contained), the husband or at least one wife for
// polygamous ones. People and marriages keep their input order.
//
// An empty rootID yields an INVALID_ARGUMENT error, an unknown one NOT_FOUND.
func (g *Graph) FilterByRoot(rootID string) (family.Family, error) {
	if err := ferrors.ValidateID("root id", rootID); err != nil {
		return family.Family{}, err
	}
	if _, ok := g.byID[rootID]; !ok {
		return family.Family{}, ferrors.New(ferrors.ErrCodeNotFound, "root %q is not in the family", rootID)
	}

	reached := map[string]bool{rootID: true}
	queue := []string{rootID}
	visit := func(id string) {
		if id != "" && !reached[id] {
			reached[id] = true
			queue = append(queue, id)
		}
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, mi := range g.partyOf[cur] {
			m := g.marriages[mi]
			for _, p := range m.Parties() {
				visit(p)
			}
			for _, c := range m.Children() {
				visit(c)
			}
		}
	}

	for _, m := range g.marriages {
		touching := false
		for _, p := range m.Parties() {
			if reached[p] {
				touching = true
				break
			}
		}
		if !touching {
			continue
		}
		for _, p := range m.Parties() {
			if person, ok := g.Person(p); ok && person.IsPlaceholder && !reached[p] {
				g.trace("re-included placeholder", "person", p, "marriage", m.ID)
				reached[p] = true
			}
		}
	}

	out := family.Family{People: []family.Person{}, Marriages: []family.Marriage{}}
	for _, p := range g.people {
		if reached[p.ID] {
			out.People = append(out.People, p)
			delete(reached, p.ID) // first record wins for duplicated ids
		}
	}
	contained := make(map[string]bool, len(out.People))
	for _, p := range out.People {
		contained[p.ID] = true
	}
	has := func(id string) bool { return id == "" || contained[id] }

	for _, m := range g.marriages {
		keep := false
		if m.IsPolygamous() {
			keep = m.HusbandID != "" && contained[m.HusbandID]
			for _, w := range m.Wives {
				keep = keep || (w.WifeID != "" && contained[w.WifeID])
			}
		} else {
			keep = len(m.Spouses) > 0
			for _, s := range m.Spouses {
				keep = keep && has(s)
			}
			keep = keep && len(m.Parties()) > 0
		}
		if keep {
			out.Marriages = append(out.Marriages, m.Clone())
		}
	}
	return out, nil
}
