package render

import (
	"github.com/matzehuels/familytower/pkg/family"
	"github.com/matzehuels/familytower/pkg/layout"
)

// Colors is the fill, stroke and text color of a node, as #rrggbb.
type Colors struct {
	Fill   string
	Stroke string
	Text   string
}

var palette = map[layout.Variant]Colors{
	layout.VariantRoot:        {Fill: "#fde68a", Stroke: "#b45309", Text: "#1f2937"},
	layout.VariantDirectLine:  {Fill: "#dbeafe", Stroke: "#1d4ed8", Text: "#1f2937"},
	layout.VariantSpouse:      {Fill: "#fce7f3", Stroke: "#be185d", Text: "#1f2937"},
	layout.VariantDead:        {Fill: "#e5e7eb", Stroke: "#4b5563", Text: "#374151"},
	layout.VariantPlaceholder: {Fill: "#ffffff", Stroke: "#9ca3af", Text: "#9ca3af"},
}

// Union node and edge colors.
const (
	UnionFill   = "#f43f5e"
	UnionStroke = "#9f1239"
	EdgeColor   = "#6b7280"
	Background  = "#ffffff"
)

// VariantColors returns the colors of a person variant. Unknown variants
// use the direct-line colors.
func VariantColors(v layout.Variant) Colors {
	if c, ok := palette[v]; ok {
		return c
	}
	return palette[layout.VariantDirectLine]
}

// IsSpousal reports whether e links partners rather than parent and child.
func IsSpousal(e layout.Edge) bool {
	return e.Type != family.EdgeParentChild
}

// Label returns the display lines of a person node. Placeholders are shown
// as "Unknown".
func Label(n layout.RenderNode) []string {
	if n.Data.Variant == layout.VariantPlaceholder {
		return []string{"Unknown"}
	}
	lines := []string{n.Data.Label}
	if n.Data.Lifespan != "" {
		lines = append(lines, n.Data.Lifespan)
	}
	return lines
}
