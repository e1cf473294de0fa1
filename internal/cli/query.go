package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	ferrors "github.com/matzehuels/familytower/pkg/errors"
	"github.com/matzehuels/familytower/pkg/family"
	fio "github.com/matzehuels/familytower/pkg/io"
	"github.com/matzehuels/familytower/pkg/observability"
	"github.com/matzehuels/familytower/pkg/pipeline"
	"github.com/matzehuels/familytower/pkg/traverse"
)

// =============================================================================
// lineage
// =============================================================================

func (c *CLI) lineageCommand() *cobra.Command {
	var (
		person string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "lineage [family.yaml] --person ID",
		Short: "List the ancestor nodes and edges of a person",
		Long: `List every ancestor of a person together with the union nodes and edge
ids that connect them, matching the ids in layout output.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, _, runner, err := c.loadFamily(cmd.Context(), args)
			if err != nil {
				return err
			}
			defer runner.Close()

			g := c.graph(f)
			if _, ok := g.Person(person); !ok {
				return ferrors.New(ferrors.ErrCodeNotFound, "person %q is not in the family", person)
			}
			h := g.Lineage(person)
			if asJSON {
				return writeJSON(h)
			}
			printInfo("Lineage of %s", StyleHighlight.Render(person))
			printKeyValue("nodes", strings.Join(h.Nodes, ", "))
			printKeyValue("edges", fmt.Sprintf("%d", len(h.Edges)))
			for _, e := range h.Edges {
				printDetail("%s", e)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&person, "person", "p", "", "person id (required)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print {nodes, edges} as JSON")
	_ = cmd.MarkFlagRequired("person")
	registerPersonCompletion(cmd, "person")
	return cmd
}

// =============================================================================
// filter
// =============================================================================

func (c *CLI) filterCommand() *cobra.Command {
	var (
		root   string
		output string
	)
	cmd := &cobra.Command{
		Use:   "filter [family.yaml] --root ID",
		Short: "Keep only the people reachable from a root",
		Long: `Write the part of the family reachable from --root: its descendants,
their partners and the placeholders of their family blocks. The result is
written as JSON to stdout, or to --output (.json or .yaml).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, _, runner, err := c.loadFamily(cmd.Context(), args)
			if err != nil {
				return err
			}
			defer runner.Close()

			scoped, err := c.graph(f).FilterByRoot(root)
			if err != nil {
				return err
			}
			c.Logger.Debug("filtered family", "root", root, "kept", len(scoped.People), "dropped", len(f.People)-len(scoped.People))
			if output == "" {
				return fio.WriteFamily(os.Stdout, scoped, fio.FormatJSON)
			}
			if err := fio.ExportFamily(scoped, output); err != nil {
				return err
			}
			printSuccess("Kept %d of %d people", len(scoped.People), len(f.People))
			printFile(output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&root, "root", "r", "", "root person id (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.json or .yaml)")
	_ = cmd.MarkFlagRequired("root")
	registerPersonCompletion(cmd, "root")
	return cmd
}

// =============================================================================
// ancestor
// =============================================================================

func (c *CLI) ancestorCommand() *cobra.Command {
	var person string
	cmd := &cobra.Command{
		Use:   "ancestor [family.yaml] --person ID",
		Short: "Print the highest ancestor of a person",
		Long: `Follow the husband (or first spouse) of each parent marriage upward from
--person and print the last id reached. Useful as a layout root.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, _, runner, err := c.loadFamily(cmd.Context(), args)
			if err != nil {
				return err
			}
			defer runner.Close()

			if err := ferrors.ValidateID("person id", person); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.graph(f).HighestAncestor(person))
			return nil
		},
	}
	cmd.Flags().StringVarP(&person, "person", "p", "", "person id (required)")
	_ = cmd.MarkFlagRequired("person")
	registerPersonCompletion(cmd, "person")
	return cmd
}

// =============================================================================
// collapse
// =============================================================================

func (c *CLI) collapseCommand() *cobra.Command {
	var (
		person string
		off    bool
		output string
	)
	cmd := &cobra.Command{
		Use:   "collapse [family.yaml] --person ID",
		Short: "Collapse or expand a person's branch",
		Long: `Set the collapsed flag of a person and write the snapshot back. A
collapsed person's family block and all descendants are left out of the
layout. Use --off to expand again.

Files are rewritten in place unless --output is given; with --family-id the
store entry is updated.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			f, opts, runner, err := c.loadFamily(ctx, args)
			if err != nil {
				return err
			}
			defer runner.Close()

			if err := setCollapsed(&f, person, !off); err != nil {
				return err
			}
			if err := c.saveFamily(ctx, runner, opts, f, output); err != nil {
				return err
			}

			hidden := c.graph(f).Hidden()
			if off {
				printSuccess("Expanded %s", person)
			} else {
				printSuccess("Collapsed %s", person)
			}
			printDetail("%d people hidden in total", len(hidden))
			return nil
		},
	}
	cmd.Flags().StringVarP(&person, "person", "p", "", "person id (required)")
	cmd.Flags().BoolVar(&off, "off", false, "expand instead of collapse")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of the input")
	_ = cmd.MarkFlagRequired("person")
	registerPersonCompletion(cmd, "person")
	return cmd
}

// setCollapsed sets the collapsed flag of person id.
func setCollapsed(f *family.Family, id string, collapsed bool) error {
	for i := range f.People {
		if f.People[i].ID == id {
			f.People[i].IsCollapsed = collapsed
			return nil
		}
	}
	return ferrors.New(ferrors.ErrCodeNotFound, "person %q is not in the family", id)
}

// saveFamily writes f to output, back to the input file, or to the store.
func (c *CLI) saveFamily(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, f family.Family, output string) error {
	switch {
	case output != "":
		return fio.ExportFamily(f, output)
	case opts.Input != "":
		return fio.ExportFamily(f, opts.Input)
	case runner.Store != nil:
		return runner.Store.Save(ctx, opts.FamilyID, f)
	}
	return fmt.Errorf("nowhere to save the family")
}

// =============================================================================
// Helpers
// =============================================================================

func (c *CLI) graph(f family.Family) *traverse.Graph {
	return traverse.New(f.People, f.Marriages, traverse.WithTracer(observability.LogTracer(c.Logger)))
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
