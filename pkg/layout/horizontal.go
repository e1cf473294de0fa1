package layout

// horizontal places generations left to right and siblings top to bottom.
type horizontal struct{}

func (horizontal) orientation() Orientation { return Horizontal }

func (horizontal) lateralSize(g Geometry) float64      { return g.NodeHeight }
func (horizontal) generationalSize(g Geometry) float64 { return g.NodeWidth }

func (horizontal) point(lateral, generational float64) (float64, float64) {
	return generational, lateral
}

func (horizontal) parentChildHandles() (string, string) { return HandleRight, HandleLeft }

func (horizontal) partnerHandles(side int) (string, string) {
	if side < 0 {
		return HandleTop, HandleBottom
	}
	return HandleBottom, HandleTop
}
