// Package config loads the depsolve configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/depsolve/config.toml
// (falling back to ~/.config/depsolve/config.toml). Every field is
// optional:
//
//	behavior = "lowest"
//	feeds    = ["https://feed.example.com/v3"]
//
//	[cache]
//	backend = "redis"
//	ttl     = "12h"
//	redis_url = "redis://localhost:6379/0"
//
//	[gather]
//	max_depth = 20
//
//	[server]
//	addr = ":8080"
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/depsolve/pkg/cache"
	"github.com/matzehuels/depsolve/pkg/errors"
	"github.com/matzehuels/depsolve/pkg/feed"
	"github.com/matzehuels/depsolve/pkg/resolver"
)

// AppName names the configuration and cache directories.
const AppName = "depsolve"

// DefaultAddr is the listen address of the serve command.
const DefaultAddr = ":8080"

// Config is the decoded configuration file.
type Config struct {
	Behavior string   `toml:"behavior"`
	Feeds    []string `toml:"feeds"`
	Cache    Cache    `toml:"cache"`
	Gather   Gather   `toml:"gather"`
	Server   Server   `toml:"server"`
}

// Cache selects the feed response cache.
type Cache struct {
	Backend  string        `toml:"backend"`
	Dir      string        `toml:"dir"`
	Entries  int           `toml:"entries"`
	TTL      time.Duration `toml:"ttl"`
	RedisURL string        `toml:"redis_url"`
	MongoURI string        `toml:"mongo_uri"`
	Prefix   string        `toml:"prefix"`

	// Namespace is prepended to every key, on any backend.
	Namespace string `toml:"namespace"`
}

// Gather bounds feed crawls.
type Gather struct {
	MaxDepth int `toml:"max_depth"`
	MaxNodes int `toml:"max_nodes"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// WithDefaults returns a copy of c with zero values replaced by defaults.
func (c Config) WithDefaults() Config {
	if c.Behavior == "" {
		c.Behavior = resolver.Lowest.String()
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = cache.BackendFile
	}
	if c.Cache.Dir == "" {
		if dir, err := CacheDir(); err == nil {
			c.Cache.Dir = dir
		}
	}
	if c.Cache.Entries <= 0 {
		c.Cache.Entries = cache.DefaultMemoryEntries
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = feed.DefaultCacheTTL
	}
	if c.Gather.MaxDepth <= 0 {
		c.Gather.MaxDepth = feed.DefaultMaxDepth
	}
	if c.Gather.MaxNodes <= 0 {
		c.Gather.MaxNodes = feed.DefaultMaxNodes
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	return c
}

// Validate checks the fields that cannot be defaulted.
func (c Config) Validate() error {
	if _, err := resolver.ParseBehavior(c.Behavior); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case cache.BackendFile, cache.BackendMemory, cache.BackendRedis, cache.BackendMongo, cache.BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}
	for _, u := range c.Feeds {
		if err := errors.ValidateURL(u); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "config feed")
		}
	}
	return nil
}

// CacheOptions converts the cache section for [cache.Open].
func (c Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend:  c.Cache.Backend,
		Dir:      c.Cache.Dir,
		Entries:  c.Cache.Entries,
		TTL:      c.Cache.TTL,
		RedisURL: c.Cache.RedisURL,
		MongoURI: c.Cache.MongoURI,
		Prefix:   c.Cache.Prefix,
	}
}

// Keyer returns the cache key layout, scoped to Cache.Namespace when set.
func (c Config) Keyer() cache.Keyer {
	if c.Cache.Namespace == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.Cache.Namespace+":")
}

// FeedOptions returns the feed client options for responses cached in store.
func (c Config) FeedOptions(store cache.Cache, refresh bool) feed.ClientOptions {
	return feed.ClientOptions{
		Cache:   store,
		Keyer:   c.Keyer(),
		TTL:     c.Cache.TTL,
		Refresh: refresh,
	}
}

// WalkerOptions converts the gather section for [feed.NewWalker].
func (c Config) WalkerOptions() feed.Options {
	return feed.Options{MaxDepth: c.Gather.MaxDepth, MaxNodes: c.Gather.MaxNodes}
}

// Load reads path and applies defaults. An empty path means [Path]; a
// missing file at the default location is not an error, a missing file
// named explicitly is.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return Config{}.WithDefaults(), nil
		}
		path = p
	}

	var c Config
	if _, err := toml.DecodeFile(path, &c); err != nil {
		if os.IsNotExist(err) && !explicit {
			return c.WithDefaults(), nil
		}
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "config %s", path)
	}
	c = c.WithDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, errors.Wrap(errors.GetCode(err), err, "config %s", path)
	}
	return c, nil
}

// Path returns the default configuration file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// CacheDir returns the file cache directory. DEPSOLVE_CACHE_DIR wins over
// XDG_CACHE_HOME, which wins over ~/.cache.
func CacheDir() (string, error) {
	if dir := os.Getenv("DEPSOLVE_CACHE_DIR"); dir != "" {
		return dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
