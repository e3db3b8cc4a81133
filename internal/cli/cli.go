package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depdot/pkg/cache"
	"github.com/matzehuels/depdot/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "depdot"

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded by the root command before any subcommand runs.
	Config Config

	configFile string
	verbose    bool
}

// New creates a CLI that logs to w. The level is replaced once the config
// file and --verbose have been read.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: defaultConfig(),
	}
}

// applyLogLevel sets the logger level from the config, with --verbose
// taking precedence.
func (c *CLI) applyLogLevel() error {
	if c.verbose {
		c.Logger.SetLevel(log.DebugLevel)
		return nil
	}
	level, err := parseLogLevel(c.Config.LogLevel)
	if err != nil {
		return err
	}
	c.Logger.SetLevel(level)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.openCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(store, nil, c.Logger)
	if r.TTL, err = c.Config.ttl(); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

// openCache builds the configured cache. The file backend falls back to no
// caching when no home directory is available.
func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cfg := cache.Config{
		Backend:  c.Config.Cache.Backend,
		RedisURL: c.Config.Cache.RedisURL,
		MongoURI: c.Config.Cache.MongoURI,
	}
	if cfg.Backend == "" || cfg.Backend == cache.BackendFile {
		dir, err := cacheDir()
		if err != nil {
			c.Logger.Debug("no cache directory, caching disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		cfg.Dir = dir
	}
	return cache.Open(ctx, cfg)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns $XDG_CACHE_HOME/depdot, else ~/.cache/depdot.
func cacheDir() (string, error) {
	return xdgPath("XDG_CACHE_HOME", ".cache", appName)
}

// configPath returns $XDG_CONFIG_HOME/depdot/config.toml, else
// ~/.config/depdot/config.toml.
func configPath() (string, error) {
	return xdgPath("XDG_CONFIG_HOME", ".config", appName, "config.toml")
}

// xdgPath joins elem under the directory named by env, falling back to
// fallback under the home directory when env is unset or empty.
func xdgPath(env, fallback string, elem ...string) (string, error) {
	base := os.Getenv(env)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, fallback)
	}
	return filepath.Join(append([]string{base}, elem...)...), nil
}
