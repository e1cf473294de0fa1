// Package render turns positioned layouts into drawings.
//
// The layout engine emits node positions and handle names only; it never
// draws. This package and its subpackages are the drawing consumers:
//
//   - [nodelink]: Graphviz DOT with every node pinned at its computed
//     position, rendered to SVG in-process with go-graphviz
//   - [raster]: PNG drawn directly with fogleman/gg
//
// Both share the variant palette defined here, so an SVG and a PNG of the
// same layout look alike.
//
//	dot := nodelink.ToDOT(res, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := raster.RenderPNG(res, raster.Options{Scale: 2})
//
// [nodelink]: github.com/matzehuels/familytower/pkg/render/nodelink
// [raster]: github.com/matzehuels/familytower/pkg/render/raster
package render
