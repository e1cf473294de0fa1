package pipeline

import (
	"testing"

	ferrors "github.com/matzehuels/familytower/pkg/errors"
	"github.com/matzehuels/familytower/pkg/family"
	"github.com/matzehuels/familytower/pkg/layout"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"dot", false},
		{"json", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !ferrors.Is(err, ferrors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, ferrors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateOrientation(t *testing.T) {
	tests := []struct {
		orientation string
		wantErr     bool
	}{
		{"vertical", false},
		{"horizontal", false},
		{"", false},
		{"diagonal", true},
	}

	for _, tt := range tests {
		err := ValidateOrientation(tt.orientation)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateOrientation(%q) error = %v, wantErr %v", tt.orientation, err, tt.wantErr)
		}
		if err != nil && !ferrors.Is(err, ferrors.ErrCodeInvalidOrientation) {
			t.Errorf("ValidateOrientation(%q) code = %s", tt.orientation, ferrors.GetCode(err))
		}
	}
}

func TestOptionsValidateForLoad(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"no source", Options{}, true},
		{"input file", Options{Input: "family.json"}, false},
		{"family id", Options{FamilyID: "smiths"}, false},
		{"bad family id", Options{FamilyID: "../smiths"}, true},
		{"in-memory family", Options{Family: &family.Family{}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForLoad()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateForLoad() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptionsValidateForLayout(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateForLayout(); !ferrors.Is(err, ferrors.ErrCodeInvalidArgument) {
		t.Errorf("Missing root should fail with INVALID_ARGUMENT, got %v", err)
	}

	opts = Options{RootID: "p1", Orientation: "sideways"}
	if err := opts.ValidateForLayout(); !ferrors.Is(err, ferrors.ErrCodeInvalidOrientation) {
		t.Errorf("Unknown orientation should fail, got %v", err)
	}

	opts = Options{RootID: "p1"}
	if err := opts.ValidateForLayout(); err != nil {
		t.Errorf("Valid layout options should pass: %v", err)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{
		Input:  "family.yaml",
		RootID: "p1",
	}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalOrientation := opts.Orientation
	originalFormats := opts.Formats
	originalGeometry := opts.Geometry

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.Orientation != originalOrientation {
		t.Error("Orientation changed on second call")
	}
	if len(opts.Formats) != len(originalFormats) {
		t.Error("Formats changed on second call")
	}
	if opts.Geometry != originalGeometry {
		t.Error("Geometry changed on second call")
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()

	if opts.Orientation != DefaultOrientation {
		t.Errorf("Orientation should be %s, got %s", DefaultOrientation, opts.Orientation)
	}
	if opts.Geometry != layout.DefaultGeometry() {
		t.Errorf("Geometry should default, got %+v", opts.Geometry)
	}
	if opts.Callbacks.OnToggleCollapse == nil || opts.Callbacks.OnOpenProfile == nil {
		t.Error("Callbacks should default to no-ops")
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	custom := layout.Geometry{NodeWidth: 100, NodeHeight: 40}
	opts = Options{Geometry: custom}
	opts.SetLayoutDefaults()
	want := layout.Geometry{NodeWidth: 100, NodeHeight: 40, UnionSize: layout.DefaultGeometry().UnionSize}
	if opts.Geometry != want {
		t.Errorf("Geometry should keep explicit sizes and zero gaps, got %+v", opts.Geometry)
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale should be %v, got %v", DefaultScale, opts.Scale)
	}
}

func TestLayoutKeyOpts(t *testing.T) {
	a := Options{RootID: "p1"}
	a.SetLayoutDefaults()
	b := a
	b.Orientation = "horizontal"

	if a.LayoutKeyOpts() == b.LayoutKeyOpts() {
		t.Error("Orientation should change layout key options")
	}
	if !a.LayoutKeyOpts().SortByGeneration {
		t.Error("Generation sort is on by default")
	}

	// Geometries that lay out identically share a key.
	c := Options{RootID: "p1", Geometry: layout.Geometry{NodeWidth: 180, NodeHeight: 80, Gap: 40, GenerationGap: 100, UnionSize: -1}}
	c.SetLayoutDefaults()
	if a.LayoutKeyOpts() != c.LayoutKeyOpts() {
		t.Errorf("normalized geometry should match the default key: %+v vs %+v", a.LayoutKeyOpts(), c.LayoutKeyOpts())
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Detailed: true, Scale: 3}

	if got := opts.ArtifactKeyOpts(FormatSVG); !got.Detailed || got.Scale != 0 {
		t.Errorf("svg key opts = %+v", got)
	}
	if got := opts.ArtifactKeyOpts(FormatPNG); got.Detailed || got.Scale != 3 {
		t.Errorf("png key opts = %+v", got)
	}
	if got := opts.ArtifactKeyOpts(FormatJSON); got.Detailed || got.Scale != 0 {
		t.Errorf("json key opts = %+v", got)
	}
}
