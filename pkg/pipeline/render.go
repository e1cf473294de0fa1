package pipeline

import (
	"bytes"
	"context"
	"fmt"

	fio "github.com/matzehuels/familytower/pkg/io"
	"github.com/matzehuels/familytower/pkg/layout"
	"github.com/matzehuels/familytower/pkg/render/nodelink"
	"github.com/matzehuels/familytower/pkg/render/raster"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, res *layout.Result, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	var dot string
	dotFor := func() string {
		if dot == "" {
			dot = nodelink.ToDOT(res, nodelink.Options{Detailed: opts.Detailed})
		}
		return dot
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			var buf bytes.Buffer
			err = fio.WriteLayout(&buf, res)
			data = buf.Bytes()
		case FormatDOT:
			data = []byte(dotFor())
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dotFor())
		case FormatPNG:
			data, err = raster.RenderPNG(res, raster.Options{Scale: opts.Scale, Padding: raster.DefaultPadding})
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
