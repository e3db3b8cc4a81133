package cli

import (
	stderrors "errors"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/depdot/pkg/cache"
	"github.com/matzehuels/depdot/pkg/errors"
	"github.com/matzehuels/depdot/pkg/pipeline"
)

// Config mirrors config.toml. Flags override it.
type Config struct {
	GraphName string       `toml:"graph_name"`
	Verify    bool         `toml:"verify"`
	LogLevel  string       `toml:"log_level"`
	Cache     CacheConfig  `toml:"cache"`
	Server    ServerConfig `toml:"server"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend  string `toml:"backend"`
	RedisURL string `toml:"redis_url"`
	MongoURI string `toml:"mongo_uri"`
	TTL      string `toml:"ttl"`
}

// ServerConfig configures "depdot serve".
type ServerConfig struct {
	Addr string `toml:"addr"`
}

const defaultAddr = ":8080"

func defaultConfig() Config {
	return Config{
		GraphName: pipeline.DefaultGraphName,
		Cache:     CacheConfig{Backend: cache.BackendFile},
		Server:    ServerConfig{Addr: defaultAddr},
	}
}

// loadConfig reads path on top of the defaults. A missing file is not an
// error.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeIO, err, "open config %s", path)
	}
	defer f.Close()

	md, err := toml.NewDecoder(f).Decode(&cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown key %s", path, undecoded[0])
	}
	if err := cfg.validate(); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if err := errors.ValidateGraphName(c.GraphName); err != nil {
		return err
	}
	if _, err := parseLogLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case "", cache.BackendFile, cache.BackendNone:
	case cache.BackendRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache.redis_url is required for the redis backend")
		}
	case cache.BackendMongo:
		if c.Cache.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache.mongo_uri is required for the mongo backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}
	if _, err := c.ttl(); err != nil {
		return err
	}
	return nil
}

// ttl parses Cache.TTL. Empty means the pipeline default.
func (c Config) ttl() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "cache.ttl")
	}
	if d < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "cache.ttl must not be negative")
	}
	return d, nil
}
