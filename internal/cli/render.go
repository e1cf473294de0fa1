package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/familytower/pkg/pipeline"
)

// renderOpts holds the render-only flags.
type renderOpts struct {
	output   string  // base path; one file per format is written as <base>.<format>
	formats  []string
	detailed bool    // ids and variants in DOT/SVG labels
	scale    float64 // PNG resolution multiplier
	stats    bool    // print a per-stage timing table
}

// renderCommand creates the render command for writing diagram artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags      layoutFlags
		formatsStr string
		opts       = renderOpts{scale: pipeline.DefaultScale}
	)

	cmd := &cobra.Command{
		Use:   "render [family.yaml]",
		Short: "Render a family diagram to SVG, PNG, DOT or JSON",
		Long: `Render a family diagram to SVG, PNG, DOT or JSON.

The family is laid out as in 'layout' and every requested format is written
next to the input (or to --output) as <base>.<format>. SVG goes through
Graphviz with every node pinned at its computed position; PNG is drawn
directly.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := c.sourceOptions(args)
			if err != nil {
				return err
			}
			flags.apply(&popts)
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			popts.Formats = opts.formats
			popts.Detailed = opts.detailed
			popts.Scale = opts.scale
			return c.runRender(cmd.Context(), popts, &opts, flags.noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default: input without extension)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show ids and variants in DOT/SVG labels")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG resolution multiplier")
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "print pipeline timings")

	return cmd
}

// runRender executes the full pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, popts pipeline.Options, opts *renderOpts, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if err := c.resolveRoot(ctx, runner, &popts); err != nil {
		return err
	}

	var result *pipeline.Result
	err = spin(ctx, fmt.Sprintf("Rendering %s...", strings.Join(popts.Formats, ", ")), func() error {
		result, err = runner.Execute(ctx, popts)
		return err
	})
	if err != nil {
		printError("Render failed")
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := basePath(opts.output, sourceName(popts))
	var written []string
	for _, format := range popts.Formats {
		path := base + "." + format
		if err := writeArtifact(path, result.Artifacts[format]); err != nil {
			return err
		}
		c.Logger.Debug("wrote artifact", "path", path, "bytes", len(result.Artifacts[format]))
		written = append(written, path)
	}

	printSuccess("Rendered %s", popts.RootID)
	for _, path := range written {
		printFile(path)
	}
	printStats(result.Layout.PersonCount(), result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.LayoutHit)
	if opts.stats {
		printNewline()
		fmt.Println(statsTable(result))
	}
	return nil
}

// basePath derives the base output path. With no output it strips the
// extension from the source; an output carrying a format extension loses it.
func basePath(output, source string) string {
	if output == "" {
		return strings.TrimSuffix(source, filepath.Ext(source))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func sortedKeys(m map[string][]byte) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
