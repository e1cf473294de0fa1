package layout

import "github.com/matzehuels/familytower/pkg/observability"

// point is a center in the (lateral, generational) frame.
type point struct {
	lat, gen float64
}

// assigner places family blocks top-down.
type assigner struct {
	axes  axes
	geo   Geometry
	tree  *tree
	trace observability.Tracer

	centers  map[string]point
	expanded map[string]bool
	// component records which component placed each center. Centers set by
	// an earlier component are never moved by a later one.
	component map[string]int
	current   int
	// right is the lateral edge of everything placed so far.
	right float64
}

func newAssigner(t *tree, a axes, g Geometry, trace observability.Tracer) *assigner {
	return &assigner{
		axes:     a,
		geo:      g,
		tree:     t,
		trace:    trace,
		centers:   make(map[string]point, len(t.order)),
		expanded:  make(map[string]bool, len(t.order)),
		component: make(map[string]int, len(t.order)),
	}
}

// run places the root tree, then every component it did not reach to the
// right of what is already placed, all on the root's generation. People a
// component shares with an earlier one (an in-law placed beside their
// spouse) keep their first position; the later component leaves their slot
// empty and its edges to them run across.
func (s *assigner) run() map[string]point {
	gen := s.axes.generationalSize(s.geo) / 2

	if r := s.tree.root; r != nil {
		measure(r, s.axes, s.geo)
		s.place(r, r.Extent/2, gen)
		s.right = r.Extent
	}

	for _, id := range s.tree.order {
		n := s.tree.nodes[id]
		if s.expanded[id] {
			continue
		}
		if _, placed := s.centers[id]; placed && len(n.Children) == 0 && len(n.Partners) == 0 {
			continue
		}
		top := n
		for top.Parent != nil {
			top = top.Parent
		}
		if s.expanded[top.ID] {
			continue
		}
		measure(top, s.axes, s.geo)
		s.current++
		s.trace("placing detached component", "top", top.ID, "extent", top.Extent)

		lat := top.Extent / 2
		if len(s.centers) > 0 {
			lat += s.right + s.geo.Gap
			s.right += s.geo.Gap + top.Extent
		} else {
			s.right = top.Extent
		}
		s.place(top, lat, gen)
	}
	return s.centers
}

// place lays out n's family block centered on lat, then its children in
// contiguous slots one generation further.
func (s *assigner) place(n *treeNode, lat, gen float64) {
	if s.expanded[n.ID] {
		s.trace("node already expanded", "id", n.ID)
		return
	}
	s.expanded[n.ID] = true

	// The block holds the partners plus n. n takes the middle slot, rounding
	// toward the start, so floor(P/2) partners precede it.
	st := step(s.axes, s.geo)
	k := len(n.Partners) / 2
	start := lat - float64(len(n.Partners))*st/2
	s.set(n.ID, start+float64(k)*st, gen)
	for j, pid := range n.Partners {
		slot := j
		if j >= k {
			slot++
		}
		s.set(pid, start+float64(slot)*st, gen)
	}

	if len(n.Children) == 0 {
		return
	}
	var total float64
	for _, c := range n.Children {
		total += c.Extent
	}
	total += float64(len(n.Children)-1) * s.geo.Gap

	cur := lat - total/2
	next := gen + generationStep(s.axes, s.geo)
	for _, c := range n.Children {
		s.place(c, cur+c.Extent/2, next)
		cur += c.Extent + s.geo.Gap
	}
}

// set records a center. Within a component later writes win; descendants
// placed relative to an earlier center are not moved.
func (s *assigner) set(id string, lat, gen float64) {
	if prev, ok := s.centers[id]; ok {
		if s.component[id] != s.current {
			s.trace("node kept in earlier component", "id", id, "component", s.component[id])
			return
		}
		s.trace("node repositioned", "id", id, "from", prev.lat, "to", lat)
	}
	s.centers[id] = point{lat: lat, gen: gen}
	s.component[id] = s.current
}
