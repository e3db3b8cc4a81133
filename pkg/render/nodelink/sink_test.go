package nodelink

import (
	"bytes"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/depdot/pkg/depgraph"
	"github.com/matzehuels/depdot/pkg/errors"
)

func TestSinkFor(t *testing.T) {
	var buf bytes.Buffer
	tests := []struct {
		name    string
		in      any
		want    Sink
		wantErr bool
	}{
		{"path", "out.dot", PathSink("out.dot"), false},
		{"writer", &buf, StreamSink{W: &buf}, false},
		{"path sink", PathSink("x.dot"), PathSink("x.dot"), false},
		{"stream sink", StreamSink{W: &buf}, StreamSink{W: &buf}, false},
		{"int", 42, nil, true},
		{"nil", nil, nil, true},
		{"empty path", "", nil, true},
		{"byte slice", []byte("out.dot"), nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SinkFor(tt.in)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidArgument) {
					t.Fatalf("SinkFor(%v) error = %v, want INVALID_ARGUMENT", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SinkFor(%v) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("SinkFor(%v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSinkFor_ErrorNamesValue(t *testing.T) {
	_, err := SinkFor(42)
	if err == nil {
		t.Fatal("SinkFor(42) should fail")
	}
	if msg := err.Error(); !strings.Contains(msg, "42") || !strings.Contains(msg, "int") {
		t.Errorf("error %q should name the value and its type", msg)
	}
}

func TestExportTo_IntegerSink(t *testing.T) {
	err := ExportTo(depgraph.New(), 7, "")
	if !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("ExportTo(int) = %v, want INVALID_ARGUMENT", err)
	}
}

func TestExport_NilSink(t *testing.T) {
	if err := Export(depgraph.New(), nil, ""); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("Export(nil sink) = %v, want INVALID_ARGUMENT", err)
	}
	if err := Export(depgraph.New(), StreamSink{}, ""); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("Export(empty StreamSink) = %v, want INVALID_ARGUMENT", err)
	}
}

func TestExport_PathSink(t *testing.T) {
	g := buildGraph(t, []testAtom{{"a", []string{"root"}, nil}}, "root")
	path := filepath.Join(t.TempDir(), "out.dot")

	// Pre-existing content is truncated.
	if err := os.WriteFile(path, []byte(strings.Repeat("x", 4096)), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := ExportTo(g, path, "deps"); err != nil {
		t.Fatalf("ExportTo() = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() = %v", err)
	}
	if got, want := string(data), ToDOT(g, "deps"); got != want {
		t.Errorf("file content mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestExport_PathSinkCreateError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.dot")

	err := Export(depgraph.New(), PathSink(path), "")
	if !errors.Is(err, errors.ErrCodeIO) {
		t.Fatalf("Export() = %v, want IO_ERROR", err)
	}
	if !stderrors.Is(err, fs.ErrNotExist) {
		t.Errorf("Export() error %v should keep fs.ErrNotExist in the chain", err)
	}
}

type closeTracker struct {
	bytes.Buffer
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func TestExport_StreamSinkNotClosed(t *testing.T) {
	w := &closeTracker{}
	if err := ExportTo(depgraph.New(), w, ""); err != nil {
		t.Fatalf("ExportTo() = %v", err)
	}
	if w.closed {
		t.Error("caller-owned stream was closed")
	}
	if !strings.HasPrefix(w.String(), "digraph dumped_graph {") {
		t.Errorf("unexpected output %q", w.String())
	}
}
