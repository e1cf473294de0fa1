package layout

import "github.com/matzehuels/familytower/pkg/observability"

// Option configures [Build].
type Option func(*config)

type config struct {
	geometry         Geometry
	trace            observability.Tracer
	sortByGeneration bool
}

func defaultConfig() config {
	return config{
		geometry:         DefaultGeometry(),
		trace:            observability.NopTracer,
		sortByGeneration: true,
	}
}

// WithGeometry sets the size constants, normalized with [Geometry.Normalized].
func WithGeometry(g Geometry) Option {
	return func(c *config) { c.geometry = g.Normalized() }
}

// WithTracer sets the tracer receiving diagnostic events.
func WithTracer(t observability.Tracer) Option {
	return func(c *config) { c.trace = t.OrNop() }
}

// WithSortByGeneration toggles breadth-first marriage ordering from the
// root before the hierarchy is built. It is on by default.
func WithSortByGeneration(on bool) Option {
	return func(c *config) { c.sortByGeneration = on }
}
