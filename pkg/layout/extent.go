package layout

// measure computes the lateral extent of n's subtree bottom-up.
//
// A node's extent is the larger of its own family block and the children's
// extents laid side by side with gap between them. Each node is measured
// once per layout.
func measure(n *treeNode, a axes, g Geometry) float64 {
	if n.measured {
		return n.Extent
	}
	n.measured = true

	own := blockSize(a, g, len(n.Partners)+1)
	if len(n.Children) == 0 {
		n.Extent = own
		return own
	}

	var sum float64
	for _, c := range n.Children {
		sum += measure(c, a, g)
	}
	sum += float64(len(n.Children)-1) * g.Gap

	n.Extent = max(own, sum)
	return n.Extent
}
