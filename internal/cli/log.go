// Package cli implements the depdot command-line interface.
//
// # Commands
//
// The main commands are:
//   - export: Write a dependency graph as Graphviz DOT
//   - check: Report unresolved atoms and dangling references
//   - atom: Parse package atoms
//   - xml: Inspect the XML backend, escape text, reformat documents
//   - serve: Run the HTTP API
//   - cache: Manage the result cache
//
// # Configuration
//
// Settings come from flags, then $XDG_CONFIG_HOME/depdot/config.toml, then
// built-in defaults.
//
// # Logging
//
// The level comes from log_level in the config file (default info);
// --verbose (-v) forces debug. The logger travels in the command context.
package cli

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depdot/pkg/errors"
)

// newLogger writes timestamped entries ("14:32:01.45") to w.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// parseLogLevel maps a config value to a level. Empty means info.
func parseLogLevel(s string) (log.Level, error) {
	if s == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(strings.ToLower(s))
	if err != nil {
		return log.InfoLevel, errors.New(errors.ErrCodeInvalidInput, "log_level %q: want debug, info, warn or error", s)
	}
	return level, nil
}

// withLogger attaches l to ctx for loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return log.WithContext(ctx, l)
}

// loggerFromContext returns the command logger, or the package default
// when none is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	return log.FromContext(ctx)
}

// progress logs the end of a step with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with keyvals and an "elapsed" field.
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}
