package family

import "fmt"

// Edge kinds, shared by the layout edge generator and lineage tracing.
const (
	EdgeMonogamous  = "monogamous"
	EdgePolygamous  = "polygamous"
	EdgeParentChild = "parentChild"
)

// SpousePlaceholderID returns the id synthesized for the n-th unknown spouse
// of a monogamous marriage. Only a marriage with both spouses unknown has a
// second placeholder, which gets an index suffix.
func SpousePlaceholderID(marriageID string, n int) string {
	if n == 0 {
		return "placeholder-spouse-" + marriageID
	}
	return fmt.Sprintf("placeholder-spouse-%s-%d", marriageID, n)
}

// HusbandPlaceholderID returns the id synthesized for an unknown husband.
func HusbandPlaceholderID(marriageID string) string {
	return "placeholder-husband-" + marriageID
}

// WifePlaceholderID returns the id synthesized for the unknown wife at index i.
func WifePlaceholderID(marriageID string, i int) string {
	return fmt.Sprintf("placeholder-wife-%s-%d", marriageID, i)
}

// UnionNodeID returns the id of the synthetic union node of a monogamous marriage.
func UnionNodeID(marriageID string) string {
	return "union-" + marriageID
}

// EdgeID returns the deterministic id of an edge of the given kind.
func EdgeID(kind, marriageID, source, target string) string {
	return fmt.Sprintf("%s:%s:%s->%s", kind, marriageID, source, target)
}

// ResolvedSpouses returns the spouse ids of a monogamous marriage with unknown
// slots replaced by their placeholder ids.
func (m Marriage) ResolvedSpouses() []string {
	out := make([]string, len(m.Spouses))
	unknown := 0
	for i, s := range m.Spouses {
		if s == "" {
			s = SpousePlaceholderID(m.ID, unknown)
			unknown++
		}
		out[i] = s
	}
	return out
}

// ResolvedHusband returns the husband id, or its placeholder id when unknown.
func (m Marriage) ResolvedHusband() string {
	if m.HusbandID == "" {
		return HusbandPlaceholderID(m.ID)
	}
	return m.HusbandID
}

// ResolvedWife returns the id of wife i, or its placeholder id when unknown.
func (m Marriage) ResolvedWife(i int) string {
	if m.Wives[i].WifeID == "" {
		return WifePlaceholderID(m.ID, i)
	}
	return m.Wives[i].WifeID
}
