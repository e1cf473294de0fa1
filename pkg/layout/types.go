package layout

import (
	"fmt"

	"github.com/matzehuels/familytower/pkg/family"
)

// Orientation selects the axis along which generations advance.
type Orientation string

// Supported orientations.
const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// ParseOrientation returns the orientation named by s. The empty string
// selects Vertical.
func ParseOrientation(s string) (Orientation, error) {
	switch Orientation(s) {
	case "", Vertical:
		return Vertical, nil
	case Horizontal:
		return Horizontal, nil
	}
	return "", fmt.Errorf("unknown orientation %q (want %s or %s)", s, Vertical, Horizontal)
}

// Variant is the display role of a person node.
type Variant string

// Person node variants, in precedence order.
const (
	VariantPlaceholder Variant = "placeholder"
	VariantDead        Variant = "dead"
	VariantRoot        Variant = "root"
	VariantSpouse      Variant = "spouse"
	VariantDirectLine  Variant = "directline"
)

// Node types.
const (
	NodePerson = "person"
	NodeUnion  = "union"
)

// Handle names are the anchor points on a node's boundary.
const (
	HandleTop    = "top"
	HandleBottom = "bottom"
	HandleLeft   = "left"
	HandleRight  = "right"
)

// Geometry holds the size constants of a layout, in pixels.
type Geometry struct {
	NodeWidth     float64 `json:"nodeWidth" toml:"node_width"`
	NodeHeight    float64 `json:"nodeHeight" toml:"node_height"`
	Gap           float64 `json:"gap" toml:"gap"`
	GenerationGap float64 `json:"generationGap" toml:"generation_gap"`
	UnionSize     float64 `json:"unionSize" toml:"union_size"`
}

// DefaultGeometry returns the default size constants.
func DefaultGeometry() Geometry {
	return Geometry{
		NodeWidth:     180,
		NodeHeight:    80,
		Gap:           40,
		GenerationGap: 100,
		UnionSize:     24,
	}
}

// Normalized fills invalid fields from DefaultGeometry: non-positive node
// and union sizes, and negative gaps. Zero gaps are kept.
func (g Geometry) Normalized() Geometry {
	d := DefaultGeometry()
	if g.NodeWidth <= 0 {
		g.NodeWidth = d.NodeWidth
	}
	if g.NodeHeight <= 0 {
		g.NodeHeight = d.NodeHeight
	}
	if g.Gap < 0 {
		g.Gap = d.Gap
	}
	if g.GenerationGap < 0 {
		g.GenerationGap = d.GenerationGap
	}
	if g.UnionSize <= 0 {
		g.UnionSize = d.UnionSize
	}
	return g
}

// Callbacks are invoked by rendered person nodes, never by the engine.
type Callbacks struct {
	OnToggleCollapse func(personID string)
	OnOpenProfile    func(personID string)
}

// NopCallbacks returns callbacks that do nothing, for callers without an
// interactive surface.
func NopCallbacks() Callbacks {
	return Callbacks{
		OnToggleCollapse: func(string) {},
		OnOpenProfile:    func(string) {},
	}
}

// Input is the snapshot handed to [Build].
type Input struct {
	RootID      string
	People      []family.Person
	Marriages   []family.Marriage
	Callbacks   Callbacks
	Orientation Orientation
}

// Position is the top-left corner of a node.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData is the display payload of a node.
type NodeData struct {
	Label       string         `json:"label"`
	Lifespan    string         `json:"lifespan,omitempty"`
	Variant     Variant        `json:"variant,omitempty"`
	Person      *family.Person `json:"person,omitempty"`
	MarriageID  string         `json:"marriageId,omitempty"`
	HasChildren bool           `json:"hasChildren,omitempty"`
	IsCollapsed bool           `json:"isCollapsed,omitempty"`
	Orientation Orientation    `json:"orientation"`

	OnToggleCollapse func(personID string) `json:"-"`
	OnOpenProfile    func(personID string) `json:"-"`
}

// RenderNode is a positioned person or union node.
type RenderNode struct {
	ID           string   `json:"id"`
	Type         string   `json:"type"`
	Data         NodeData `json:"data"`
	Position     Position `json:"position"`
	Width        float64  `json:"width"`
	Height       float64  `json:"height"`
	IsPositioned bool     `json:"isPositioned"`
}

// Center returns the center point of the node.
func (n RenderNode) Center() (x, y float64) {
	return n.Position.X + n.Width/2, n.Position.Y + n.Height/2
}

// EdgeData is the optional payload of an edge.
type EdgeData struct {
	Orientation Orientation `json:"orientation,omitempty"`
}

// Edge connects two nodes by handle name.
type Edge struct {
	ID           string    `json:"id"`
	Source       string    `json:"source"`
	Target       string    `json:"target"`
	SourceHandle string    `json:"sourceHandle"`
	TargetHandle string    `json:"targetHandle"`
	Type         string    `json:"type"`
	Data         *EdgeData `json:"data,omitempty"`
}

// Result is the output of [Build].
type Result struct {
	Nodes []RenderNode `json:"nodes"`
	Edges []Edge       `json:"edges"`
}

// Node returns the node with the given id.
func (r *Result) Node(id string) (RenderNode, bool) {
	for _, n := range r.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return RenderNode{}, false
}

// Edge returns the edge with the given id.
func (r *Result) Edge(id string) (Edge, bool) {
	for _, e := range r.Edges {
		if e.ID == id {
			return e, true
		}
	}
	return Edge{}, false
}

// Bounds returns the bounding box of every positioned node.
func (r *Result) Bounds() (minX, minY, maxX, maxY float64) {
	first := true
	for _, n := range r.Nodes {
		if !n.IsPositioned {
			continue
		}
		x0, y0 := n.Position.X, n.Position.Y
		x1, y1 := x0+n.Width, y0+n.Height
		if first {
			minX, minY, maxX, maxY = x0, y0, x1, y1
			first = false
			continue
		}
		minX, minY = min(minX, x0), min(minY, y0)
		maxX, maxY = max(maxX, x1), max(maxY, y1)
	}
	return minX, minY, maxX, maxY
}

// PersonCount returns the number of person nodes.
func (r *Result) PersonCount() int {
	n := 0
	for _, node := range r.Nodes {
		if node.Type == NodePerson {
			n++
		}
	}
	return n
}

// Bind attaches cb to every person node. Results decoded from JSON carry
// no callbacks until they are bound again.
func (r *Result) Bind(cb Callbacks) {
	for i := range r.Nodes {
		if r.Nodes[i].Type != NodePerson {
			continue
		}
		r.Nodes[i].Data.OnToggleCollapse = cb.OnToggleCollapse
		r.Nodes[i].Data.OnOpenProfile = cb.OnOpenProfile
	}
}
