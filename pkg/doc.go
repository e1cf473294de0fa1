// Package pkg provides the core libraries for Familytower family tree layout.
//
// # Overview
//
// Familytower turns a snapshot of people and marriages into a positioned
// diagram: one node per person, a union node per monogamous couple, and
// edges for marriages and parentage. The pkg directory is organized into
// four main areas:
//
//  1. Domain logic: [family], [traverse] and [layout]
//  2. Output: [render/nodelink], [render/raster] and [io]
//  3. Infrastructure: [cache], [store], [config] and [observability]
//  4. Orchestration: [pipeline] and the HTTP [api]
//
// # Architecture
//
// The typical data flow:
//
//	Snapshot (YAML/JSON file, store, request body)
//	         ↓
//	    [io] / [store] (read and normalize)
//	         ↓
//	    [traverse] (optional scoping to the root's relatives)
//	         ↓
//	    [layout] (placeholders → hierarchy → extents → positions → edges)
//	         ↓
//	    JSON/DOT/SVG/PNG output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/familytower/pkg/io"
//	    "github.com/matzehuels/familytower/pkg/layout"
//	    "github.com/matzehuels/familytower/pkg/render/nodelink"
//	)
//
//	f, _ := io.ImportFamily("family.yaml")
//	res, _ := layout.Build(layout.Input{
//	    RootID:    "anna",
//	    People:    f.People,
//	    Marriages: f.Marriages,
//	})
//	dot := nodelink.ToDOT(res, nodelink.Options{})
//
// # Main Packages
//
// ## Domain Logic
//
// [family] - People, monogamous and polygamous marriages, deterministic ids
// for placeholders, union nodes and edges.
//
// [traverse] - Read-only queries over a snapshot: partners, descendants,
// collapse hiding, lineage highlights, highest ancestor and root scoping.
//
// [layout] - The layout engine. Synthesizes placeholder spouses, builds the
// family hierarchy from the root, measures subtree extents and assigns
// coordinates for the vertical or horizontal orientation.
//
// ## Output
//
// [render/nodelink] - DOT with pinned positions, and SVG through Graphviz.
//
// [render/raster] - PNG drawing of a layout.
//
// [io] - Snapshot and layout (de)serialization in JSON and YAML.
//
// ## Infrastructure
//
// [cache] - Null, file and Redis caches plus the key scheme shared by the
// CLI and the API.
//
// [store] - Named family snapshots in memory, on disk or in MongoDB.
//
// [config] - TOML configuration for layout defaults and backends.
//
// [observability] - Tracer and hook registries for pipeline, cache and HTTP
// events.
//
// [pipeline] - Load → layout → render, with caching, used by both entry
// points.
//
// [api] - HTTP handlers over the pipeline.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/layout/...             # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// Redis and MongoDB tests run when FAMILYTOWER_REDIS_ADDR or
// FAMILYTOWER_MONGO_URI is set.
//
// [family]: https://pkg.go.dev/github.com/matzehuels/familytower/pkg/family
// [traverse]: https://pkg.go.dev/github.com/matzehuels/familytower/pkg/traverse
// [layout]: https://pkg.go.dev/github.com/matzehuels/familytower/pkg/layout
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/familytower/pkg/render/nodelink
// [render/raster]: https://pkg.go.dev/github.com/matzehuels/familytower/pkg/render/raster
// [io]: https://pkg.go.dev/github.com/matzehuels/familytower/pkg/io
// [cache]: https://pkg.go.dev/github.com/matzehuels/familytower/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/familytower/pkg/store
// [config]: https://pkg.go.dev/github.com/matzehuels/familytower/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/familytower/pkg/observability
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/familytower/pkg/pipeline
// [api]: https://pkg.go.dev/github.com/matzehuels/familytower/pkg/api
package pkg
