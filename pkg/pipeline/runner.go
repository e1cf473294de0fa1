package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/familytower/pkg/cache"
	ferrors "github.com/matzehuels/familytower/pkg/errors"
	"github.com/matzehuels/familytower/pkg/family"
	fio "github.com/matzehuels/familytower/pkg/io"
	"github.com/matzehuels/familytower/pkg/layout"
	"github.com/matzehuels/familytower/pkg/observability"
	"github.com/matzehuels/familytower/pkg/store"
	"github.com/matzehuels/familytower/pkg/traverse"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for its collaborators - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Store  store.Store
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache, keyer and store.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// If st is nil, options referring to a family id fail.
func NewRunner(c cache.Cache, keyer cache.Keyer, st store.Store, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Store:  st,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	hooks := observability.Pipeline()
	result := &Result{Artifacts: make(map[string][]byte)}

	// Stage 1: Load
	source := opts.source()
	hooks.OnLoadStart(ctx, source)
	loadStart := time.Now()
	f, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	result.Stats.LoadTime = time.Since(loadStart)
	hooks.OnLoadComplete(ctx, source, len(f.People), len(f.Marriages), result.Stats.LoadTime, err)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Family = f
	result.Stats.PersonCount = len(f.People)
	result.Stats.MarriageCount = len(f.Marriages)
	result.CacheInfo.LoadHit = loadHit

	r.Logger.Info("loaded family",
		"source", source,
		"people", len(f.People),
		"marriages", len(f.Marriages),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	hooks.OnLayoutStart(ctx, opts.Orientation, len(f.People))
	layoutStart := time.Now()
	res, hash, layoutHit, err := r.LayoutWithCacheInfo(ctx, f, opts)
	result.Stats.LayoutTime = time.Since(layoutStart)
	if err != nil {
		hooks.OnLayoutComplete(ctx, opts.Orientation, 0, 0, result.Stats.LayoutTime, err)
		return nil, fmt.Errorf("layout: %w", err)
	}
	hooks.OnLayoutComplete(ctx, opts.Orientation, len(res.Nodes), len(res.Edges), result.Stats.LayoutTime, nil)
	result.Layout = res
	result.SnapshotHash = hash
	result.Stats.NodeCount = len(res.Nodes)
	result.Stats.EdgeCount = len(res.Edges)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"nodes", len(res.Nodes),
		"edges", len(res.Edges),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	hooks.OnRenderStart(ctx, opts.Formats)
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, res, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo reads the snapshot named by opts, scopes it to the
// root's relatives if opts.Scope is set, and reports whether a stored
// snapshot came from the cache.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (family.Family, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLoad(); err != nil {
		return family.Family{}, false, err
	}

	var (
		f   family.Family
		hit bool
		err error
	)
	switch {
	case opts.Family != nil:
		f = opts.Family.Clone()
	case opts.Input != "":
		f, err = fio.ImportFamily(opts.Input)
	default:
		f, hit, err = r.loadStored(ctx, opts)
	}
	if err != nil {
		return family.Family{}, false, err
	}

	if opts.Scope {
		g := traverse.New(f.People, f.Marriages, traverse.WithTracer(observability.LogTracer(opts.Logger)))
		scoped, err := g.FilterByRoot(opts.RootID)
		if err != nil {
			return family.Family{}, hit, fmt.Errorf("scope: %w", err)
		}
		opts.Logger.Debug("scoped family to root",
			"root", opts.RootID,
			"people", len(scoped.People),
			"dropped", len(f.People)-len(scoped.People))
		f = scoped
	}
	return f, hit, nil
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) (family.Family, error) {
	f, _, err := r.LoadWithCacheInfo(ctx, opts)
	return f, err
}

func (r *Runner) loadStored(ctx context.Context, opts Options) (family.Family, bool, error) {
	if r.Store == nil {
		return family.Family{}, false, ferrors.New(ferrors.ErrCodeInvalidConfig, "no family store configured")
	}
	key := r.Keyer.FamilyKey(storeName(r.Store), opts.FamilyID)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if f, err := fio.ReadFamily(bytes.NewReader(data), fio.FormatJSON); err == nil {
				observability.Cache().OnCacheHit(ctx, "family")
				return f, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "family")
	}

	f, err := r.Store.Load(ctx, opts.FamilyID)
	if err != nil {
		return family.Family{}, false, err
	}

	var buf bytes.Buffer
	if err := fio.WriteFamily(&buf, f, fio.FormatJSON); err == nil {
		r.set(ctx, "family", key, buf.Bytes(), cache.TTLFamily)
	}
	return f, false, nil
}

// LayoutWithCacheInfo lays out f with caching. It returns the layout, the
// content hash of f and whether the layout came from the cache. The
// layout's person nodes are bound to opts.Callbacks either way.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, f family.Family, opts Options) (*layout.Result, string, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, "", false, err
	}

	snapshot, err := json.Marshal(f)
	if err != nil {
		return nil, "", false, fmt.Errorf("serialize family for cache key: %w", err)
	}
	hash := cache.Hash(snapshot)
	key := r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if res, err := fio.ReadLayout(bytes.NewReader(data)); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				res.Bind(opts.Callbacks)
				return res, hash, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	res, err := layout.Build(opts.LayoutInput(f), opts.LayoutOptions()...)
	if err != nil {
		return nil, "", false, err
	}

	var buf bytes.Buffer
	if err := fio.WriteLayout(&buf, res); err == nil {
		r.set(ctx, "layout", key, buf.Bytes(), cache.TTLLayout)
	}
	return res, hash, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and keeps only the layout.
func (r *Runner) Layout(ctx context.Context, f family.Family, opts Options) (*layout.Result, error) {
	res, _, _, err := r.LayoutWithCacheInfo(ctx, f, opts)
	return res, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res *layout.Result, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	var layoutJSON bytes.Buffer
	if err := fio.WriteLayout(&layoutJSON, res); err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutJSON.Bytes())

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if !opts.Refresh {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil // All artifacts from cache
	}

	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := Render(ctx, res, renderOpts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		r.set(ctx, "artifact", key, data, cache.TTLArtifact)
		artifacts[format] = data
	}
	return artifacts, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, res *layout.Result, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, res, opts)
	return artifacts, err
}

// Close releases resources held by the runner.
func (r *Runner) Close() error {
	var errs []error
	if r.Cache != nil {
		errs = append(errs, r.Cache.Close())
	}
	if r.Store != nil {
		errs = append(errs, r.Store.Close())
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) set(ctx context.Context, kind, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "kind", kind, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, kind, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func (o *Options) source() string {
	switch {
	case o.Family != nil:
		return "request"
	case o.Input != "":
		return o.Input
	}
	return "store:" + o.FamilyID
}

func storeName(st store.Store) string {
	switch st.(type) {
	case *store.FileStore:
		return "file"
	case *store.MemoryStore:
		return "memory"
	case *store.MongoStore:
		return "mongo"
	}
	return "store"
}
