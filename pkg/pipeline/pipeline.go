// Package pipeline provides the load → layout → render pipeline for familytower.
//
// This package implements the complete pipeline that the CLI and the HTTP
// API share. By centralizing this logic, both entry points cache, scope and
// render a family the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a snapshot from a file, from a [store.Store], or take it
//     from the caller, then optionally scope it to the root's relatives
//  2. Layout: Run the layout engine (collapse is applied inside)
//  3. Render: Generate output in various formats (JSON, DOT, SVG, PNG)
//
// Layouts are cached by the content hash of the scoped snapshot plus the
// layout options; artifacts by the hash of the layout plus the format.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, st, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "family.yaml",
//	    RootID:  "p1",
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/familytower/pkg/cache"
	ferrors "github.com/matzehuels/familytower/pkg/errors"
	"github.com/matzehuels/familytower/pkg/family"
	"github.com/matzehuels/familytower/pkg/layout"
	"github.com/matzehuels/familytower/pkg/observability"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// DefaultOrientation is the default layout orientation.
const DefaultOrientation = string(layout.Vertical)

// DefaultScale is the default PNG resolution multiplier.
const DefaultScale = 2.0

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options: exactly one source is used, in the order Family,
	// Input, FamilyID.
	Input    string         `json:"input,omitempty"`     // snapshot file (.json, .yaml)
	FamilyID string         `json:"family_id,omitempty"` // id in the runner's store
	Family   *family.Family `json:"-"`                   // in-memory snapshot
	Refresh  bool           `json:"refresh,omitempty"`   // bypass the cache

	// Layout options
	RootID           string          `json:"root_id"`
	Scope            bool            `json:"scope,omitempty"` // keep only the root's relatives
	Orientation      string          `json:"orientation,omitempty"`
	Geometry         layout.Geometry `json:"geometry"`
	NoGenerationSort bool            `json:"no_generation_sort,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // ids and variants in DOT/SVG labels
	Scale    float64  `json:"scale,omitempty"`    // PNG resolution multiplier

	// Runtime options (not serialized)
	Logger    *log.Logger      `json:"-"`
	Callbacks layout.Callbacks `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Family is the snapshot that was laid out, after scoping.
	Family family.Family

	// SnapshotHash is the content hash of Family.
	SnapshotHash string

	// Layout is the positioned node/edge diagram.
	Layout *layout.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PersonCount   int
	MarriageCount int
	NodeCount     int
	EdgeCount     int
	LoadTime      time.Duration
	LayoutTime    time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool // Whether a stored snapshot came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return ferrors.New(ferrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, dot, svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateOrientation checks that an orientation is valid.
func ValidateOrientation(orientation string) error {
	if _, err := layout.ParseOrientation(orientation); err != nil {
		return ferrors.Wrap(ferrors.ErrCodeInvalidOrientation, err, "invalid orientation")
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that a snapshot source is given.
func (o *Options) ValidateForLoad() error {
	if o.Family == nil && o.Input == "" && o.FamilyID == "" {
		return ferrors.New(ferrors.ErrCodeInvalidArgument, "input file or family id is required")
	}
	if o.Family == nil && o.Input == "" {
		if err := ferrors.ValidateFamilyID(o.FamilyID); err != nil {
			return err
		}
	}
	o.setLogger()
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Orientation == "" {
		o.Orientation = DefaultOrientation
	}
	zero := layout.Geometry{}
	if o.Geometry == zero {
		o.Geometry = layout.DefaultGeometry()
	} else {
		o.Geometry = o.Geometry.Normalized()
	}
	if o.Callbacks.OnToggleCollapse == nil || o.Callbacks.OnOpenProfile == nil {
		nop := layout.NopCallbacks()
		if o.Callbacks.OnToggleCollapse == nil {
			o.Callbacks.OnToggleCollapse = nop.OnToggleCollapse
		}
		if o.Callbacks.OnOpenProfile == nil {
			o.Callbacks.OnOpenProfile = nop.OnOpenProfile
		}
	}
	o.setLogger()
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ferrors.ValidateID("root id", o.RootID); err != nil {
		return err
	}
	return ValidateOrientation(o.Orientation)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// LayoutOptions returns the layout engine options.
func (o *Options) LayoutOptions() []layout.Option {
	return []layout.Option{
		layout.WithGeometry(o.Geometry),
		layout.WithSortByGeneration(!o.NoGenerationSort),
		layout.WithTracer(observability.LogTracer(o.Logger)),
	}
}

// LayoutInput returns the engine input for f.
func (o *Options) LayoutInput(f family.Family) layout.Input {
	return layout.Input{
		RootID:      o.RootID,
		People:      f.People,
		Marriages:   f.Marriages,
		Callbacks:   o.Callbacks,
		Orientation: layout.Orientation(o.Orientation),
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Root:             o.RootID,
		Orientation:      o.Orientation,
		Scope:            o.Scope,
		SortByGeneration: !o.NoGenerationSort,
		NodeWidth:        o.Geometry.NodeWidth,
		NodeHeight:       o.Geometry.NodeHeight,
		Gap:              o.Geometry.Gap,
		GenerationGap:    o.Geometry.GenerationGap,
		UnionSize:        o.Geometry.UnionSize,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatDOT, FormatSVG:
		opts.Detailed = o.Detailed
	case FormatPNG:
		opts.Scale = o.Scale
	}
	return opts
}
