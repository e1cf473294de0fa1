package layout

import "github.com/matzehuels/familytower/pkg/family"

// SortByGeneration orders marriages by breadth-first distance from rootID.
//
// Starting at the root, each dequeued person contributes every marriage they
// are a partner in (once), and the partners and children of that marriage
// are enqueued. Marriages unreachable from the root keep their relative
// input order at the end. The input slice is not modified.
func SortByGeneration(rootID string, marriages []family.Marriage) []family.Marriage {
	partyOf := make(map[string][]int)
	for i, m := range marriages {
		for _, p := range m.Parties() {
			partyOf[p] = append(partyOf[p], i)
		}
	}

	out := make([]family.Marriage, 0, len(marriages))
	taken := make([]bool, len(marriages))
	seen := map[string]bool{rootID: true}
	queue := []string{rootID}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, i := range partyOf[cur] {
			if taken[i] {
				continue
			}
			taken[i] = true
			m := marriages[i]
			out = append(out, m)
			for _, id := range append(m.Parties(), m.Children()...) {
				if !seen[id] {
					seen[id] = true
					queue = append(queue, id)
				}
			}
		}
	}

	for i, m := range marriages {
		if !taken[i] {
			out = append(out, m)
		}
	}
	return out
}
