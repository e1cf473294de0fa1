package layout

// axes maps the orientation-independent (lateral, generational) frame onto
// screen coordinates and names the handles edges attach to.
//
// The lateral axis spreads siblings and spouses, the generational axis
// advances from parents to children. Lateral values grow toward the
// "after" side: right in vertical layouts, down in horizontal ones.
type axes interface {
	orientation() Orientation

	// lateralSize and generationalSize are the node extents along each axis.
	lateralSize(g Geometry) float64
	generationalSize(g Geometry) float64

	// point converts a (lateral, generational) center to screen x, y.
	point(lateral, generational float64) (x, y float64)

	// parentChildHandles names the source and target handles of an edge
	// from a parent (or union) to a child.
	parentChildHandles() (source, target string)
	// partnerHandles names the handles of an edge from a node to a partner
	// lying on the given lateral side of it: -1 before, +1 after.
	partnerHandles(side int) (source, target string)
}

func axesFor(o Orientation) axes {
	if o == Horizontal {
		return horizontal{}
	}
	return vertical{}
}

// step returns the lateral distance between adjacent slots of a family block.
func step(a axes, g Geometry) float64 {
	return a.lateralSize(g) + g.Gap
}

// generationStep returns the generational distance between a parent's
// center and its children's centers.
func generationStep(a axes, g Geometry) float64 {
	return a.generationalSize(g) + g.GenerationGap
}

// blockSize returns the lateral span of a family block with the given
// number of person slots.
func blockSize(a axes, g Geometry, slots int) float64 {
	if slots < 1 {
		slots = 1
	}
	return float64(slots)*a.lateralSize(g) + float64(slots-1)*g.Gap
}
