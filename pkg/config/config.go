// Package config loads familytower settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/familytower/config.toml by default.
// A missing file is not an error: every value has a default, and keys
// present in the file override only themselves.
//
//	[layout]
//	orientation = "horizontal"
//	gap = 60
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[store]
//	backend = "mongo"
//	mongo_uri = "mongodb://localhost:27017"
//
//	[server]
//	addr = ":8080"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	ferrors "github.com/matzehuels/familytower/pkg/errors"
	"github.com/matzehuels/familytower/pkg/layout"
)

const (
	// AppName names the config, cache and data directories.
	AppName = "familytower"

	// FileName is the name of the config file.
	FileName = "config.toml"
)

// Backend names.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
	BackendMongo = "mongo"
)

// Config holds all familytower configuration.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`
}

// LayoutConfig holds layout engine defaults.
type LayoutConfig struct {
	Orientation      string  `toml:"orientation"`
	NodeWidth        float64 `toml:"node_width"`
	NodeHeight       float64 `toml:"node_height"`
	Gap              float64 `toml:"gap"`
	GenerationGap    float64 `toml:"generation_gap"`
	UnionSize        float64 `toml:"union_size"`
	SortByGeneration bool    `toml:"sort_by_generation"`
}

// CacheConfig selects and configures the layout cache.
type CacheConfig struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	TTL           Duration `toml:"ttl"`
}

// StoreConfig selects and configures the family store.
type StoreConfig struct {
	Backend         string `toml:"backend"`
	Dir             string `toml:"dir"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr           string   `toml:"addr"`
	RequestTimeout Duration `toml:"request_timeout"`
}

// Duration is a time.Duration written as a Go duration string ("24h").
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	g := layout.DefaultGeometry()
	return &Config{
		Layout: LayoutConfig{
			Orientation:      string(layout.Vertical),
			NodeWidth:        g.NodeWidth,
			NodeHeight:       g.NodeHeight,
			Gap:              g.Gap,
			GenerationGap:    g.GenerationGap,
			UnionSize:        g.UnionSize,
			SortByGeneration: true,
		},
		Cache: CacheConfig{
			Backend:   BackendFile,
			RedisAddr: "localhost:6379",
			TTL:       Duration{24 * time.Hour},
		},
		Store: StoreConfig{
			Backend:         BackendFile,
			MongoDatabase:   "familytower",
			MongoCollection: "families",
		},
		Server: ServerConfig{
			Addr:           ":8080",
			RequestTimeout: Duration{30 * time.Second},
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/familytower/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, AppName, FileName), nil
}

// Load reads the config file at the default path.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFromPath(path)
}

// LoadFromPath reads config from a specific path. Keys missing from the
// file keep their defaults; a missing file yields the defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, cfg)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, ferrors.Wrap(ferrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, ferrors.New(ferrors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that config values are valid.
func (c *Config) Validate() error {
	if _, err := layout.ParseOrientation(c.Layout.Orientation); err != nil {
		return ferrors.Wrap(ferrors.ErrCodeInvalidConfig, err, "layout.orientation")
	}
	for name, v := range map[string]float64{
		"layout.node_width":  c.Layout.NodeWidth,
		"layout.node_height": c.Layout.NodeHeight,
		"layout.union_size":  c.Layout.UnionSize,
	} {
		if v <= 0 {
			return ferrors.New(ferrors.ErrCodeInvalidConfig, "%s must be positive, got %v", name, v)
		}
	}
	if c.Layout.Gap < 0 || c.Layout.GenerationGap < 0 {
		return ferrors.New(ferrors.ErrCodeInvalidConfig, "layout gaps must be non-negative")
	}

	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return ferrors.New(ferrors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
	default:
		return ferrors.New(ferrors.ErrCodeInvalidConfig, "cache.backend must be one of file, redis, none; got %q", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return ferrors.New(ferrors.ErrCodeInvalidConfig, "cache.ttl must be non-negative")
	}

	switch c.Store.Backend {
	case BackendFile:
	case BackendMongo:
		if c.Store.MongoURI == "" {
			return ferrors.New(ferrors.ErrCodeInvalidConfig, "store.mongo_uri is required for the mongo backend")
		}
	default:
		return ferrors.New(ferrors.ErrCodeInvalidConfig, "store.backend must be one of file, mongo; got %q", c.Store.Backend)
	}

	if c.Server.Addr == "" {
		return ferrors.New(ferrors.ErrCodeInvalidConfig, "server.addr is required")
	}
	return nil
}

// Geometry returns the layout size constants.
func (c *Config) Geometry() layout.Geometry {
	return layout.Geometry{
		NodeWidth:     c.Layout.NodeWidth,
		NodeHeight:    c.Layout.NodeHeight,
		Gap:           c.Layout.Gap,
		GenerationGap: c.Layout.GenerationGap,
		UnionSize:     c.Layout.UnionSize,
	}
}
