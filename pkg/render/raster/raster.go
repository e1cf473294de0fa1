// Package raster draws family layouts as PNG images with fogleman/gg.
//
// Nodes are drawn at the positions computed by the layout engine: person
// boxes filled by variant, union circles, and straight edges between node
// centers. Spousal edges are dashed. Labels use the built-in bitmap face,
// so no font files are needed.
package raster

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/familytower/pkg/layout"
	"github.com/matzehuels/familytower/pkg/render"
)

// Defaults.
const (
	DefaultScale   = 1.0
	DefaultPadding = 20.0
	cornerRadius   = 8.0
	lineHeight     = 16.0
)

// Options configures PNG rendering.
type Options struct {
	// Scale multiplies the output resolution. Zero means DefaultScale.
	Scale float64

	// Padding is the blank margin around the drawing, in layout pixels.
	// Negative means DefaultPadding.
	Padding float64

	// NoLabels skips person labels.
	NoLabels bool
}

func (o Options) withDefaults() Options {
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Padding < 0 {
		o.Padding = DefaultPadding
	}
	return o
}

// RenderPNG draws res and returns the encoded PNG.
func RenderPNG(res *layout.Result, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	minX, minY, maxX, maxY := res.Bounds()
	w := int(math.Ceil((maxX - minX + 2*opts.Padding) * opts.Scale))
	h := int(math.Ceil((maxY - minY + 2*opts.Padding) * opts.Scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("empty drawing %dx%d", w, h)
	}

	dc := gg.NewContext(w, h)
	dc.SetHexColor(render.Background)
	dc.Clear()
	dc.Scale(opts.Scale, opts.Scale)
	dc.Translate(opts.Padding-minX, opts.Padding-minY)

	nodes := make(map[string]layout.RenderNode, len(res.Nodes))
	for _, n := range res.Nodes {
		if n.IsPositioned {
			nodes[n.ID] = n
		}
	}

	// Edges first so that node fills cover the line ends.
	for _, e := range res.Edges {
		src, ok1 := nodes[e.Source]
		tgt, ok2 := nodes[e.Target]
		if !ok1 || !ok2 {
			continue
		}
		drawEdge(dc, e, src, tgt)
	}
	for _, n := range res.Nodes {
		if !n.IsPositioned {
			continue
		}
		if n.Type == layout.NodeUnion {
			drawUnion(dc, n)
			continue
		}
		drawPerson(dc, n, !opts.NoLabels)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawEdge(dc *gg.Context, e layout.Edge, src, tgt layout.RenderNode) {
	x1, y1 := src.Center()
	x2, y2 := tgt.Center()
	dc.SetHexColor(render.EdgeColor)
	dc.SetLineWidth(1.5)
	if render.IsSpousal(e) {
		dc.SetDash(6, 4)
	}
	dc.DrawLine(x1, y1, x2, y2)
	dc.Stroke()
	dc.SetDash()
}

func drawUnion(dc *gg.Context, n layout.RenderNode) {
	cx, cy := n.Center()
	dc.DrawCircle(cx, cy, n.Width/2)
	dc.SetHexColor(render.UnionFill)
	dc.FillPreserve()
	dc.SetHexColor(render.UnionStroke)
	dc.SetLineWidth(1.5)
	dc.Stroke()
}

func drawPerson(dc *gg.Context, n layout.RenderNode, labels bool) {
	c := render.VariantColors(n.Data.Variant)
	dc.DrawRoundedRectangle(n.Position.X, n.Position.Y, n.Width, n.Height, cornerRadius)
	dc.SetHexColor(c.Fill)
	dc.FillPreserve()
	dc.SetHexColor(c.Stroke)
	dc.SetLineWidth(2)
	if n.Data.Variant == layout.VariantPlaceholder {
		dc.SetDash(4, 3)
	}
	dc.Stroke()
	dc.SetDash()

	if n.Data.IsCollapsed {
		dc.DrawRoundedRectangle(n.Position.X+4, n.Position.Y+4, n.Width-8, n.Height-8, cornerRadius/2)
		dc.SetLineWidth(1)
		dc.Stroke()
	}
	if !labels {
		return
	}

	lines := render.Label(n)
	cx, cy := n.Center()
	top := cy - lineHeight*float64(len(lines)-1)/2
	dc.SetHexColor(c.Text)
	for i, line := range lines {
		dc.DrawStringAnchored(line, cx, top+float64(i)*lineHeight, 0.5, 0.5)
	}
}
