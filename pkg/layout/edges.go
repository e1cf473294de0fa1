package layout

import (
	"github.com/matzehuels/familytower/pkg/family"
	"github.com/matzehuels/familytower/pkg/observability"
)

// edgeGenerator derives union nodes and edges from placed centers.
type edgeGenerator struct {
	axes    axes
	geo     Geometry
	centers map[string]point
	trace   observability.Tracer

	unions []RenderNode
	edges  []Edge
	seen   map[string]bool
}

func generateEdges(marriages []family.Marriage, centers map[string]point, a axes, g Geometry, trace observability.Tracer) ([]RenderNode, []Edge) {
	e := &edgeGenerator{
		axes:    a,
		geo:     g,
		centers: centers,
		trace:   trace,
		seen:    make(map[string]bool),
	}
	for _, m := range marriages {
		if m.IsPolygamous() {
			e.polygamous(m)
		} else {
			e.monogamous(m)
		}
	}
	return e.unions, e.edges
}

// monogamous emits the union node between the spouses, one edge from each
// spouse to the union and one from the union to each child.
func (e *edgeGenerator) monogamous(m family.Marriage) {
	var placed []point
	for _, s := range m.Spouses {
		if c, ok := e.centers[s]; ok {
			placed = append(placed, c)
		}
	}
	if len(placed) == 0 {
		e.trace("marriage has no placed spouse, skipping", "marriage", m.ID)
		return
	}

	var u point
	for _, c := range placed {
		u.lat += c.lat
		u.gen += c.gen
	}
	u.lat /= float64(len(placed))
	u.gen /= float64(len(placed))
	if len(placed) == 1 {
		u.lat += step(e.axes, e.geo) / 2
	}

	unionID := family.UnionNodeID(m.ID)
	x, y := e.axes.point(u.lat, u.gen)
	half := e.geo.UnionSize / 2
	e.unions = append(e.unions, RenderNode{
		ID:   unionID,
		Type: NodeUnion,
		Data: NodeData{
			MarriageID:  m.ID,
			Orientation: e.axes.orientation(),
		},
		Position:     Position{X: x - half, Y: y - half},
		Width:        e.geo.UnionSize,
		Height:       e.geo.UnionSize,
		IsPositioned: true,
	})
	e.centers[unionID] = u

	for _, s := range m.Spouses {
		src, tgt := e.axes.partnerHandles(e.side(s, unionID))
		e.add(family.EdgeMonogamous, m.ID, s, unionID, src, tgt)
	}
	src, tgt := e.axes.parentChildHandles()
	for _, c := range m.ChildrenIDs {
		e.add(family.EdgeParentChild, m.ID, unionID, c, src, tgt)
	}
}

// polygamous emits an edge from the husband to every wife and from each
// wife to her own children.
func (e *edgeGenerator) polygamous(m family.Marriage) {
	pcSrc, pcTgt := e.axes.parentChildHandles()
	for _, w := range m.Wives {
		src, tgt := e.axes.partnerHandles(e.side(m.HusbandID, w.WifeID))
		e.add(family.EdgePolygamous, m.ID, m.HusbandID, w.WifeID, src, tgt)
		for _, c := range w.ChildrenIDs {
			e.add(family.EdgeParentChild, m.ID, w.WifeID, c, pcSrc, pcTgt)
		}
	}
}

// side returns the lateral side of to as seen from from: -1 before, +1 after.
func (e *edgeGenerator) side(from, to string) int {
	if e.centers[to].lat < e.centers[from].lat {
		return -1
	}
	return 1
}

// add appends an edge if both endpoints are placed and the id is new.
func (e *edgeGenerator) add(kind, marriageID, source, target, sourceHandle, targetHandle string) {
	id := family.EdgeID(kind, marriageID, source, target)
	if _, ok := e.centers[source]; !ok {
		e.trace("dropping edge with unplaced source", "edge", id)
		return
	}
	if _, ok := e.centers[target]; !ok {
		e.trace("dropping edge with unplaced target", "edge", id)
		return
	}
	if e.seen[id] {
		e.trace("dropping duplicate edge", "edge", id)
		return
	}
	e.seen[id] = true
	e.edges = append(e.edges, Edge{
		ID:           id,
		Source:       source,
		Target:       target,
		SourceHandle: sourceHandle,
		TargetHandle: targetHandle,
		Type:         kind,
		Data:         &EdgeData{Orientation: e.axes.orientation()},
	})
}
