// Package layout computes positioned family diagrams.
//
// [Build] turns a snapshot of people and marriages into render nodes and
// edges in five steps:
//
//  1. Collapse: people hidden by isCollapsed flags are removed.
//  2. Placeholders: unknown marriage parties become synthetic persons.
//  3. Hierarchy: every marriage is owned by one primary parent, which forces
//     the marriage graph into a tree rooted at the chosen person.
//  4. Extents and positions: a bottom-up pass measures the lateral span of
//     every subtree, a top-down pass places family blocks and child slots.
//  5. Edges: spousal and parent-child edges, with a union node standing in
//     for every monogamous couple.
//
// # Orientation
//
// Vertical layouts advance generations downward and spread siblings along
// x. Horizontal layouts advance generations rightward and spread siblings
// along y. Both share the same passes; only the axis mapping and the edge
// handle names differ.
//
// # Determinism
//
// Output depends only on the order of the input slices and the options.
// Identical inputs produce identical positions and edge ids.
//
// # Diagnostics
//
// Guards that trip on malformed data (cycles, missing persons, nodes placed
// twice, edges with an unplaced endpoint) never fail a call. They are
// reported to the [observability.Tracer] passed with [WithTracer].
package layout
