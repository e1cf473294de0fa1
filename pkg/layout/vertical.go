package layout

// vertical places generations top to bottom and siblings left to right.
type vertical struct{}

func (vertical) orientation() Orientation { return Vertical }

func (vertical) lateralSize(g Geometry) float64      { return g.NodeWidth }
func (vertical) generationalSize(g Geometry) float64 { return g.NodeHeight }

func (vertical) point(lateral, generational float64) (float64, float64) {
	return lateral, generational
}

func (vertical) parentChildHandles() (string, string) { return HandleBottom, HandleTop }

func (vertical) partnerHandles(side int) (string, string) {
	if side < 0 {
		return HandleLeft, HandleRight
	}
	return HandleRight, HandleLeft
}
