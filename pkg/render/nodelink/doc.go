// Package nodelink renders family layouts as Graphviz node-link diagrams.
//
// # Overview
//
// Graphviz never decides where a person goes: [ToDOT] pins every node at
// the center computed by the layout engine (pos="x,-y!" with
// inputscale=72, so positions are read as points) and the neato engine
// only routes the edges. Person nodes are boxes coloured by variant,
// union nodes small circles. Spousal edges are dashed and undirected,
// parent-child edges solid arrows.
//
// # Usage
//
//	dot := nodelink.ToDOT(res, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
//   - Detailed: adds the person id and variant to each label
//   - HideUnions: draws union nodes as points
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is needed.
package nodelink
