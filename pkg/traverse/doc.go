// Package traverse implements relationship queries over raw family records.
//
// # Overview
//
// The utilities in this package operate directly on [family.Person] and
// [family.Marriage] collections and never depend on layout output:
//
//   - [Graph.Descendants]: every person reachable through parenthood
//   - [Graph.HiddenSet]: persons hidden by isCollapsed flags, with whole
//     family blocks hidden together
//   - [Graph.Lineage]: node and edge ids to highlight for an ancestor trace
//   - [Graph.FilterByRoot]: the subset of the family reachable from a root
//   - [Graph.HighestAncestor]: the top of a person's paternal/first-spouse line
//
// All traversals carry visited-set guards, so cyclic or duplicated data (a
// person recorded as their own ancestor, the same marriage listed twice)
// terminates. Guard trips are reported to the configured
// [observability.Tracer].
//
// # Usage
//
//	g := traverse.New(people, marriages, traverse.WithTracer(trace))
//	hl := g.Lineage("p42")
//	scoped, err := g.FilterByRoot("p1")
package traverse
