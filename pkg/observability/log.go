package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by logging at debug level,
// except failed exports and 5xx responses, which log as errors.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks writing to logger, or to log.Default() when
// logger is nil.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger.WithPrefix("hooks")}
}

func (h *LogHooks) OnExportStart(_ context.Context, graphName string, atoms, pkgs int) {
	h.logger.Debug("export start", "graph", graphName, "atoms", atoms, "pkgs", pkgs)
}

func (h *LogHooks) OnExportComplete(_ context.Context, graphName string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("export failed", "graph", graphName, "duration", d, "error", err)
		return
	}
	h.logger.Debug("export done", "graph", graphName, "bytes", size, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, requestID, method, path string) {
	h.logger.Debug("request", "id", requestID, "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, requestID, method, path string, status int, d time.Duration) {
	if status >= 500 {
		h.logger.Error("response", "id", requestID, "method", method, "path", path, "status", status, "duration", d)
		return
	}
	h.logger.Debug("response", "id", requestID, "method", method, "path", path, "status", status, "duration", d)
}
