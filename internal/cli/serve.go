package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/matzehuels/familytower/pkg/api"
	"github.com/matzehuels/familytower/pkg/cache"
	"github.com/matzehuels/familytower/pkg/pipeline"
)

// serveKeyPrefix separates server cache entries from CLI ones in a shared cache.
const serveKeyPrefix = "api"

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout engine over HTTP",
		Long: `Serve the JSON API: stateless layout, lineage, filter, ancestor and
hidden-set endpoints, plus layouts of families in the configured store.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	cfg := c.settings()
	if addr == "" {
		addr = cfg.Server.Addr
	}

	var (
		ch  cache.Cache = cache.NewNullCache()
		err error
	)
	if !noCache {
		if ch, err = cfg.OpenCache(ctx); err != nil {
			return fmt.Errorf("open cache: %w", err)
		}
	}
	st, err := cfg.OpenStore(ctx)
	if err != nil {
		ch.Close()
		return fmt.Errorf("open store: %w", err)
	}

	runner := pipeline.NewRunner(ch, cache.NewScopedKeyer(nil, serveKeyPrefix), st, c.Logger)
	defer runner.Close()

	srv := api.New(runner,
		api.WithLogger(c.Logger),
		api.WithGeometry(cfg.Geometry()),
		api.WithTimeout(cfg.Server.RequestTimeout.Duration),
	)

	printSuccess("Serving on %s", StyleHighlight.Render(addr))
	printDetail("cache: %s, store: %s", cfg.Cache.Backend, cfg.Store.Backend)
	if err := srv.ListenAndServe(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
