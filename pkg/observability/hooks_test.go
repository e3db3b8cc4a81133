package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestDefaultsAreNoop(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Export().(NoopExportHooks); !ok {
		t.Errorf("Export() = %T, want NoopExportHooks", Export())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T, want NoopCacheHooks", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T, want NoopHTTPHooks", HTTP())
	}
}

func TestSetters(t *testing.T) {
	Reset()
	defer Reset()

	rec := &recordingExportHooks{}
	SetExportHooks(rec)
	SetExportHooks(nil)
	if Export() != rec {
		t.Error("SetExportHooks(nil) replaced the installed hooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("SetExportHooks touched the cache hooks")
	}

	ctx := context.Background()
	Export().OnExportStart(ctx, "g", 1, 2)
	Export().OnExportComplete(ctx, "g", 10, time.Second, errors.New("boom"))
	if rec.started != "g" || rec.atoms != 1 || rec.pkgs != 2 || rec.size != 10 || rec.err == nil {
		t.Errorf("recorded %+v", rec)
	}

	Reset()
	if Export() == rec {
		t.Error("Reset() kept the installed hooks")
	}
}

func TestInstall(t *testing.T) {
	Reset()
	defer Reset()

	h := NewLogHooks(log.New(&bytes.Buffer{}))
	Install(h)
	if Export() != h || Cache() != h || HTTP() != h {
		t.Error("Install should register LogHooks for every interface")
	}

	// Partial implementations only replace what they implement.
	rec := &recordingExportHooks{}
	Install(rec)
	if Export() != rec || Cache() != h {
		t.Errorf("Install(partial): export=%T cache=%T", Export(), Cache())
	}
}

func TestConcurrentReadersAndWriters(t *testing.T) {
	Reset()
	defer Reset()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetCacheHooks(NoopCacheHooks{})
		}()
		go func() {
			defer wg.Done()
			Cache().OnCacheHit(context.Background(), KeyDOT)
		}()
	}
	wg.Wait()
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)
	h := NewLogHooks(logger)
	ctx := context.Background()

	h.OnExportStart(ctx, "deps", 3, 2)
	h.OnExportComplete(ctx, "deps", 0, time.Millisecond, errors.New("disk full"))
	h.OnCacheMiss(ctx, KeyGraph)
	h.OnResponse(ctx, "req-1", "POST", "/api/v1/dot", 503, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"export start", "atoms=3", "export failed", "disk full", "type=graph", "status=503"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooksQuietAtInfo(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.New(&buf))
	h.OnCacheHit(context.Background(), KeyDOT)
	h.OnResponse(context.Background(), "r", "GET", "/healthz", 200, 0)
	if buf.Len() != 0 {
		t.Errorf("debug events leaked at info level: %q", buf.String())
	}
}

type recordingExportHooks struct {
	NoopExportHooks
	started string
	atoms   int
	pkgs    int
	size    int
	err     error
}

func (r *recordingExportHooks) OnExportStart(_ context.Context, name string, atoms, pkgs int) {
	r.started, r.atoms, r.pkgs = name, atoms, pkgs
}

func (r *recordingExportHooks) OnExportComplete(_ context.Context, _ string, size int, _ time.Duration, err error) {
	r.size, r.err = size, err
}
