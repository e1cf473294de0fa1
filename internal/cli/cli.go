// Package cli implements the familytower command-line interface.
//
// Every command that reads a family takes either a snapshot file
// (.json, .yaml) as its argument or --family-id to read it from the
// configured store. Settings come from the TOML config file; flags
// override them per invocation.
//
// # Commands
//
//   - layout: compute the positioned node/edge diagram as JSON
//   - render: write DOT, SVG, PNG or JSON artifacts
//   - lineage, filter, ancestor: query the family graph
//   - collapse: set or clear a person's collapsed flag
//   - browse: interactive terminal browser
//   - serve: HTTP API
//   - cache: manage the layout cache
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/familytower/pkg/buildinfo"
	"github.com/matzehuels/familytower/pkg/cache"
	"github.com/matzehuels/familytower/pkg/config"
	"github.com/matzehuels/familytower/pkg/family"
	"github.com/matzehuels/familytower/pkg/pipeline"
	"github.com/matzehuels/familytower/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	familyID   string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Familytower lays out family trees",
		Long: `Familytower computes positioned family tree diagrams from a snapshot of
people and marriages, and renders them as DOT, SVG or PNG.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			installLogHooks(c.Logger)
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/familytower/config.toml)")
	root.PersistentFlags().StringVar(&c.familyID, "family-id", "", "read the family from the configured store")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.lineageCommand())
	root.AddCommand(c.filterCommand())
	root.AddCommand(c.ancestorCommand())
	root.AddCommand(c.collapseCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config
// =============================================================================

func (c *CLI) loadConfig() error {
	var (
		cfg *config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.LoadFromPath(c.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.Logger.Debug("config loaded", "cache", cfg.Cache.Backend, "store", cfg.Store.Backend)
	return nil
}

// settings returns the loaded config, or the defaults before PersistentPreRunE ran.
func (c *CLI) settings() *config.Config {
	if c.cfg == nil {
		c.cfg = config.DefaultConfig()
	}
	return c.cfg
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. The store is only
// opened when the family comes from it.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg := c.settings()

	var (
		ch  cache.Cache
		err error
	)
	if noCache {
		ch = cache.NewNullCache()
	} else if ch, err = cfg.OpenCache(ctx); err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	var st store.Store
	if c.familyID != "" {
		if st, err = cfg.OpenStore(ctx); err != nil {
			ch.Close()
			return nil, fmt.Errorf("open store: %w", err)
		}
	}
	return pipeline.NewRunner(ch, nil, st, c.Logger), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// sourceOptions returns pipeline options reading the family named by args
// or --family-id, with layout settings from the config.
func (c *CLI) sourceOptions(args []string) (pipeline.Options, error) {
	cfg := c.settings()
	opts := pipeline.Options{
		Orientation:      cfg.Layout.Orientation,
		Geometry:         cfg.Geometry(),
		NoGenerationSort: !cfg.Layout.SortByGeneration,
		Logger:           c.Logger,
	}
	switch {
	case len(args) > 0:
		opts.Input = args[0]
	case c.familyID != "":
		opts.FamilyID = c.familyID
	default:
		return opts, fmt.Errorf("a family file or --family-id is required")
	}
	return opts, nil
}

// sourceName names the family for output paths and messages.
func sourceName(opts pipeline.Options) string {
	if opts.Input != "" {
		return opts.Input
	}
	return opts.FamilyID
}

// layoutFlags are the flags shared by commands that compute a layout.
type layoutFlags struct {
	root        string
	orientation string
	scope       bool
	noSort      bool
	noCache     bool
	refresh     bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.root, "root", "r", "", "root person id (default: highest ancestor of the first person)")
	cmd.Flags().StringVar(&f.orientation, "orientation", "", "vertical or horizontal (default from config)")
	cmd.Flags().BoolVar(&f.scope, "scope", false, "keep only the root's relatives")
	cmd.Flags().BoolVar(&f.noSort, "no-generation-sort", false, "keep marriages in input order")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even if cached")
	registerPersonCompletion(cmd, "root")
}

func (f *layoutFlags) apply(opts *pipeline.Options) {
	opts.RootID = f.root
	opts.Scope = f.scope
	opts.Refresh = f.refresh
	if f.orientation != "" {
		opts.Orientation = f.orientation
	}
	if f.noSort {
		opts.NoGenerationSort = true
	}
}

// resolveRoot fills opts.RootID with the highest ancestor of the first
// person when no root was given.
func (c *CLI) resolveRoot(ctx context.Context, runner *pipeline.Runner, opts *pipeline.Options) error {
	if opts.RootID != "" {
		return nil
	}
	unscoped := *opts
	unscoped.Scope = false
	f, err := runner.Load(ctx, unscoped)
	if err != nil {
		return err
	}
	if len(f.People) == 0 {
		return fmt.Errorf("%s has no people", sourceName(*opts))
	}
	opts.RootID = c.graph(f).HighestAncestor(f.People[0].ID)
	c.Logger.Debug("resolved root", "root", opts.RootID)
	return nil
}

// loadFamily reads the unscoped family named by args or --family-id.
func (c *CLI) loadFamily(ctx context.Context, args []string) (family.Family, pipeline.Options, *pipeline.Runner, error) {
	opts, err := c.sourceOptions(args)
	if err != nil {
		return family.Family{}, opts, nil, err
	}
	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return family.Family{}, opts, nil, err
	}
	f, err := runner.Load(ctx, opts)
	if err != nil {
		runner.Close()
		return family.Family{}, opts, nil, fmt.Errorf("load %s: %w", sourceName(opts), err)
	}
	return f, opts, runner, nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
