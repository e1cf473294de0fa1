package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/familytower/pkg/layout"
	"github.com/matzehuels/familytower/pkg/render"
)

// pointsPerInch converts layout pixels to Graphviz inches.
const pointsPerInch = 72

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the person id and variant to each label.
	Detailed bool

	// HideUnions draws union nodes as points instead of circles.
	HideUnions bool
}

// ToDOT converts a layout result to Graphviz DOT with every node pinned at
// its computed center. Unpositioned nodes are left out, together with the
// edges touching them.
func ToDOT(res *layout.Result, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  splines=line;\n")
	buf.WriteString("  overlap=true;\n")
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", render.Background)
	buf.WriteString("  node [fixedsize=true, fontname=\"Helvetica\", fontsize=12];\n")
	fmt.Fprintf(&buf, "  edge [color=%q, penwidth=1.5];\n", render.EdgeColor)
	buf.WriteString("\n")

	placed := make(map[string]bool, len(res.Nodes))
	for _, n := range res.Nodes {
		if !n.IsPositioned {
			continue
		}
		placed[n.ID] = true
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n, opts), ", "))
	}

	buf.WriteString("\n")
	for _, e := range res.Edges {
		if !placed[e.Source] || !placed[e.Target] {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(edgeAttrs(e), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n layout.RenderNode, opts Options) []string {
	cx, cy := n.Center()
	attrs := []string{
		fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(cx), fmtFloat(-cy)),
		fmt.Sprintf("width=%s", fmtFloat(n.Width/pointsPerInch)),
		fmt.Sprintf("height=%s", fmtFloat(n.Height/pointsPerInch)),
	}

	if n.Type == layout.NodeUnion {
		shape := "circle"
		if opts.HideUnions {
			shape = "point"
		}
		return append(attrs,
			"shape="+shape,
			"label=\"\"",
			"style=filled",
			fmt.Sprintf("fillcolor=%q", render.UnionFill),
			fmt.Sprintf("color=%q", render.UnionStroke),
		)
	}

	c := render.VariantColors(n.Data.Variant)
	style := "rounded,filled"
	if n.Data.Variant == layout.VariantPlaceholder {
		style += ",dashed"
	}
	attrs = append(attrs,
		"shape=box",
		fmt.Sprintf("style=%q", style),
		fmt.Sprintf("fillcolor=%q", c.Fill),
		fmt.Sprintf("color=%q", c.Stroke),
		fmt.Sprintf("fontcolor=%q", c.Text),
		fmt.Sprintf("label=%q", fmtLabel(n, opts.Detailed)),
	)
	if n.Data.IsCollapsed {
		attrs = append(attrs, "peripheries=2")
	}
	return attrs
}

func fmtLabel(n layout.RenderNode, detailed bool) string {
	lines := render.Label(n)
	if n.Data.IsCollapsed && n.Data.HasChildren {
		lines[0] += " [+]"
	}
	if detailed {
		lines = append(lines, fmt.Sprintf("%s (%s)", n.ID, n.Data.Variant))
	}
	return strings.Join(lines, "\n")
}

func edgeAttrs(e layout.Edge) []string {
	attrs := []string{fmt.Sprintf("id=%q", e.ID)}
	if render.IsSpousal(e) {
		return append(attrs, "style=dashed", "arrowhead=none")
	}
	return append(attrs, "style=solid", "arrowhead=normal", "arrowsize=0.7")
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// RenderSVG renders a DOT graph to SVG with the neato engine, which keeps
// the pinned positions.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz svg tag with one whose viewBox
// starts at the origin and whose size matches the drawing.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
