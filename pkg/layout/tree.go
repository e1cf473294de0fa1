package layout

import (
	"slices"

	"github.com/matzehuels/familytower/pkg/family"
	"github.com/matzehuels/familytower/pkg/observability"
)

// treeNode is one person in the layout hierarchy.
//
// Every node is owned by at most one parent, so the hierarchy is a forest
// even when the marriage graph has cycles through remarriage chains.
type treeNode struct {
	ID       string
	Children []*treeNode
	Parent   *treeNode

	// Marriages lists the marriages this node is the primary parent of, in
	// processing order.
	Marriages []*family.Marriage
	// Partners are the other parties of the owned marriages, laid out in
	// this node's family block.
	Partners []string
	// IsSpouse is set when the person is a non-primary party of any marriage.
	IsSpouse bool

	Extent   float64
	measured bool
}

// tree is an arena of treeNodes indexed by person id.
type tree struct {
	root  *treeNode
	nodes map[string]*treeNode
	order []string
	trace observability.Tracer
}

// buildTree creates one node per id in order and attaches every marriage
// to its primary parent. rootID must be in order or empty.
func buildTree(order []string, marriages []family.Marriage, rootID string, trace observability.Tracer) *tree {
	t := &tree{
		nodes: make(map[string]*treeNode, len(order)),
		order: order,
		trace: trace,
	}
	for _, id := range order {
		t.nodes[id] = &treeNode{ID: id}
	}
	t.root = t.nodes[rootID]

	for i := range marriages {
		m := &marriages[i]
		owner := t.primary(m)
		if owner == nil {
			trace("marriage has no known party", "marriage", m.ID)
			continue
		}
		owner.Marriages = append(owner.Marriages, m)

		for _, p := range m.Partners(owner.ID) {
			pn, ok := t.nodes[p]
			if !ok {
				trace("partner not in family", "marriage", m.ID, "person", p)
				continue
			}
			pn.IsSpouse = true
			if !slices.Contains(owner.Partners, p) {
				owner.Partners = append(owner.Partners, p)
			}
		}

		for _, c := range m.Children() {
			t.attach(owner, c, m.ID)
		}
	}
	return t
}

func (t *tree) attach(owner *treeNode, childID, marriageID string) {
	child, ok := t.nodes[childID]
	switch {
	case !ok:
		t.trace("child not in family", "marriage", marriageID, "child", childID)
	case child == t.root:
		t.trace("root listed as child", "marriage", marriageID, "child", childID)
	case child.Parent != nil:
		t.trace("child already attached", "marriage", marriageID, "child", childID, "parent", child.Parent.ID)
	case child == owner || isAncestor(child, owner):
		t.trace("child would close a cycle", "marriage", marriageID, "child", childID)
	default:
		child.Parent = owner
		owner.Children = append(owner.Children, child)
	}
}

func isAncestor(a, n *treeNode) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p == a {
			return true
		}
	}
	return false
}

// primary selects the node that owns m.
//
// Polygamous marriages belong to the husband. For monogamous marriages the
// root always wins; otherwise a spouse not yet flagged as a partner elsewhere
// is preferred. When both or neither are flagged, a spouse who already owns
// a marriage wins (so remarriages share one family block), then one who is
// already a child in the tree, then the first spouse.
func (t *tree) primary(m *family.Marriage) *treeNode {
	var cands []*treeNode
	for _, id := range m.Parties() {
		if n, ok := t.nodes[id]; ok && !slices.Contains(cands, n) {
			cands = append(cands, n)
		}
	}
	if len(cands) == 0 {
		return nil
	}

	if m.IsPolygamous() {
		if h, ok := t.nodes[m.HusbandID]; ok {
			return h
		}
		t.trace("husband not in family, using first wife", "marriage", m.ID)
		return cands[0]
	}
	if len(cands) == 1 {
		return cands[0]
	}

	a, b := cands[0], cands[1]
	switch {
	case a == t.root:
		return a
	case b == t.root:
		return b
	case a.IsSpouse != b.IsSpouse:
		if a.IsSpouse {
			return b
		}
		return a
	case rank(b) > rank(a):
		return b
	default:
		return a
	}
}

func rank(n *treeNode) int {
	switch {
	case len(n.Marriages) > 0:
		return 2
	case n.Parent != nil:
		return 1
	}
	return 0
}

// resolveRoot returns rootID if it names a person in order. Otherwise it
// falls back to the first person who is not a child in any marriage and is
// a party to one, then the first person who is not a child, then the first
// person. It returns "" only when order is empty.
func resolveRoot(rootID string, order []string, marriages []family.Marriage, trace observability.Tracer) string {
	if slices.Contains(order, rootID) {
		return rootID
	}
	if len(order) == 0 {
		trace("no people to lay out", "root", rootID)
		return ""
	}

	isChild := make(map[string]bool)
	isParty := make(map[string]bool)
	for _, m := range marriages {
		for _, c := range m.Children() {
			isChild[c] = true
		}
		for _, p := range m.Parties() {
			isParty[p] = true
		}
	}

	fallback := order[0]
	for _, id := range order {
		if !isChild[id] && isParty[id] {
			fallback = id
			break
		}
	}
	if isChild[fallback] || !isParty[fallback] {
		for _, id := range order {
			if !isChild[id] {
				fallback = id
				break
			}
		}
	}
	trace("root not in family, using fallback", "root", rootID, "fallback", fallback)
	return fallback
}
