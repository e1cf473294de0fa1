package raster

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/matzehuels/familytower/pkg/family"
	"github.com/matzehuels/familytower/pkg/layout"
)

func sampleLayout(t *testing.T) *layout.Result {
	t.Helper()
	res, err := layout.Build(layout.Input{
		RootID: "anna",
		People: []family.Person{
			{ID: "anna", Name: "Anna"},
			{ID: "ben", Name: "Ben"},
			{ID: "cleo", Name: "Cleo"},
		},
		Marriages: []family.Marriage{
			{ID: "m1", Type: family.Monogamous, Spouses: []string{"anna", "ben"}, ChildrenIDs: []string{"cleo"}},
		},
		Callbacks: layout.NopCallbacks(),
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return res
}

func TestRenderPNG(t *testing.T) {
	res := sampleLayout(t)
	minX, minY, maxX, maxY := res.Bounds()

	tests := []struct {
		name  string
		opts  Options
		scale float64
		pad   float64
	}{
		{"defaults", Options{Padding: -1}, 1, DefaultPadding},
		{"scaled", Options{Scale: 2, Padding: 10}, 2, 10},
		{"no padding", Options{NoLabels: true}, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := RenderPNG(res, tt.opts)
			if err != nil {
				t.Fatalf("RenderPNG: %v", err)
			}
			img, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			wantW := int((maxX - minX + 2*tt.pad) * tt.scale)
			wantH := int((maxY - minY + 2*tt.pad) * tt.scale)
			if b := img.Bounds(); b.Dx() != wantW || b.Dy() != wantH {
				t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), wantW, wantH)
			}
		})
	}
}

func TestRenderPNGFillsRootWithVariantColor(t *testing.T) {
	res := sampleLayout(t)
	data, err := RenderPNG(res, Options{Padding: 20, NoLabels: true})
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}

	anna, _ := res.Node("anna")
	minX, minY, _, _ := res.Bounds()
	x := int(anna.Position.X-minX+20) + 30
	y := int(anna.Position.Y-minY+20) + 10

	r, g, b, _ := img.At(x, y).RGBA()
	// #fde68a
	if r>>8 != 0xfd || g>>8 != 0xe6 || b>>8 != 0x8a {
		t.Errorf("pixel at root = #%02x%02x%02x, want #fde68a", r>>8, g>>8, b>>8)
	}
}

func TestRenderPNGEmpty(t *testing.T) {
	if _, err := RenderPNG(&layout.Result{}, Options{}); err == nil {
		t.Error("empty layout without padding should fail")
	}
	if _, err := RenderPNG(&layout.Result{}, Options{Padding: 5}); err != nil {
		t.Errorf("empty layout with padding: %v", err)
	}
}
