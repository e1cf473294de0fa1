package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	fio "github.com/matzehuels/familytower/pkg/io"
	"github.com/matzehuels/familytower/pkg/pipeline"
)

// layoutCommand creates the layout command for computing positioned diagrams.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  layoutFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout [family.yaml]",
		Short: "Compute the positioned diagram of a family",
		Long: `Compute the positioned diagram of a family.

The family is read from a JSON or YAML snapshot (or from the configured store
with --family-id) and laid out around --root. The output is a layout.json
holding person nodes, union nodes and edges with their coordinates; use
'-o -' to write it to stdout.

Results are cached, keyed by the snapshot content and the layout options.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.sourceOptions(args)
			if err != nil {
				return err
			}
			flags.apply(&opts)
			return c.runLayout(cmd.Context(), opts, output, flags.noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")

	return cmd
}

// runLayout loads the family, computes the layout, and writes it as JSON.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if err := c.resolveRoot(ctx, runner, &opts); err != nil {
		return err
	}
	prog := newProgress(c.Logger)

	var (
		result *pipeline.Result
		hit    bool
	)
	err = spin(ctx, "Computing layout...", func() error {
		f, err := runner.Load(ctx, opts)
		if err != nil {
			return err
		}
		res, hash, cached, err := runner.LayoutWithCacheInfo(ctx, f, opts)
		if err != nil {
			return err
		}
		result = &pipeline.Result{Family: f, SnapshotHash: hash, Layout: res}
		hit = cached
		return nil
	})
	if err != nil {
		printError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done("layout computed", "root", opts.RootID, "nodes", len(result.Layout.Nodes))

	if output == "-" {
		return fio.WriteLayout(os.Stdout, result.Layout)
	}
	if output == "" {
		output = layoutPath(sourceName(opts))
	}
	if err := writeLayoutFile(output, result); err != nil {
		return err
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(result.Layout.PersonCount(), len(result.Layout.Nodes), len(result.Layout.Edges), hit)
	printNewline()
	printNextStep("Render", fmt.Sprintf("%s render %s --root %s -f svg", appName, sourceName(opts), opts.RootID))
	return nil
}

// layoutPath derives <input-without-ext>.layout.json.
func layoutPath(source string) string {
	return strings.TrimSuffix(source, filepath.Ext(source)) + ".layout.json"
}

func writeLayoutFile(path string, result *pipeline.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	if err := fio.WriteLayout(f, result.Layout); err != nil {
		f.Close()
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return f.Close()
}
