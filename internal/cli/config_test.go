package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/depdot/pkg/cache"
	"github.com/matzehuels/depdot/pkg/errors"
	"github.com/matzehuels/depdot/pkg/pipeline"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigMissing(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("loadConfig(missing) = %v", err)
	}
	if cfg != defaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
	if cfg.GraphName != pipeline.DefaultGraphName || cfg.Server.Addr != defaultAddr {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
graph_name = "deps"
verify = true
log_level = "warn"

[cache]
backend = "none"
ttl = "1h30m"

[server]
addr = "127.0.0.1:9000"
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() = %v", err)
	}
	if cfg.GraphName != "deps" || !cfg.Verify || cfg.LogLevel != "warn" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Cache.Backend != cache.BackendNone || cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("cfg = %+v", cfg)
	}
	if ttl, _ := cfg.ttl(); ttl != 90*time.Minute {
		t.Errorf("ttl = %v, want 1h30m", ttl)
	}
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, `verify = true`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.GraphName != pipeline.DefaultGraphName || cfg.Cache.Backend != cache.BackendFile {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", `graph_name = `},
		{"unknown key", `colour = "red"`},
		{"bad graph name", `graph_name = "a b"`},
		{"bad log level", `log_level = "loud"`},
		{"bad backend", "[cache]\nbackend = \"memcached\""},
		{"redis without url", "[cache]\nbackend = \"redis\""},
		{"mongo without uri", "[cache]\nbackend = \"mongo\""},
		{"bad ttl", "[cache]\nttl = \"soon\""},
		{"negative ttl", "[cache]\nttl = \"-1h\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, tt.content))
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("loadConfig() = %v, want INVALID_INPUT", err)
			}
		})
	}
}
