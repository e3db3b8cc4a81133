package io

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/depdot/pkg/depgraph"
	"github.com/matzehuels/depdot/pkg/errors"
)

const sampleJSON = `{
  "atoms": [
    {"atom": "dev-libs/foo", "parents": ["root"], "matches": ["foo-1"]},
    {"atom": "dev-libs/missing", "parents": ["root"]}
  ],
  "pkgs": [
    {"id": "root"},
    {"id": "foo-1", "data": {"slot": "0"}}
  ]
}`

const sampleTOML = `
[[atoms]]
atom = "dev-libs/foo"
parents = ["root"]
matches = ["foo-1"]

[[atoms]]
atom = "dev-libs/missing"
parents = ["root"]

[[pkgs]]
id = "root"

[[pkgs]]
id = "foo-1"
data = { slot = "0" }
`

func checkSample(t *testing.T, g *depgraph.Graph) {
	t.Helper()
	if got, want := g.Pkgs(), []string{"root", "foo-1"}; !slices.Equal(got, want) {
		t.Errorf("Pkgs() = %v, want %v", got, want)
	}
	atoms := g.Atoms()
	if len(atoms) != 2 || atoms[0].ID != "dev-libs/foo" || atoms[1].ID != "dev-libs/missing" {
		t.Fatalf("Atoms() = %+v", atoms)
	}
	if !slices.Equal(atoms[0].Matches, []string{"foo-1"}) {
		t.Errorf("foo matches = %v", atoms[0].Matches)
	}
	if got := slices.Collect(g.UnresolvedAtoms()); !slices.Equal(got, []string{"dev-libs/missing"}) {
		t.Errorf("UnresolvedAtoms() = %v", got)
	}
	data, _ := g.Pkg("foo-1")
	m, ok := data.(map[string]any)
	if !ok || m["slot"] != "0" {
		t.Errorf("foo-1 data = %#v", data)
	}
}

func TestReadJSON(t *testing.T) {
	g, err := ReadJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("ReadJSON() = %v", err)
	}
	checkSample(t, g)
}

func TestReadTOML(t *testing.T) {
	g, err := ReadTOML(strings.NewReader(sampleTOML))
	if err != nil {
		t.Fatalf("ReadTOML() = %v", err)
	}
	checkSample(t, g)
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		read func(string) error
		in   string
	}{
		{"json syntax", readJSON, `{"atoms": [`},
		{"json unknown field", readJSON, `{"nodes": []}`},
		{"json duplicate pkg", readJSON, `{"pkgs": [{"id": "a"}, {"id": "a"}]}`},
		{"json duplicate atom", readJSON, `{"atoms": [{"atom": "x"}, {"atom": "x"}]}`},
		{"json empty pkg id", readJSON, `{"pkgs": [{"id": ""}]}`},
		{"json empty atom", readJSON, `{"atoms": [{"atom": ""}]}`},
		{"toml syntax", readTOML, `[[atoms]`},
		{"toml unknown key", readTOML, "[[atoms]]\natom = \"x\"\nweight = 3\n"},
		{"toml duplicate pkg", readTOML, "[[pkgs]]\nid = \"a\"\n[[pkgs]]\nid = \"a\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.read(tt.in)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("got %v, want INVALID_INPUT", err)
			}
		})
	}
}

func readJSON(s string) error {
	_, err := ReadJSON(strings.NewReader(s))
	return err
}

func readTOML(s string) error {
	_, err := ReadTOML(strings.NewReader(s))
	return err
}

func TestDuplicateErrorNamesEntry(t *testing.T) {
	err := readJSON(`{"pkgs": [{"id": "dev-libs/a-1"}, {"id": "dev-libs/a-1"}]}`)
	if err == nil || !strings.Contains(err.Error(), "dev-libs/a-1") {
		t.Errorf("error %v should name the duplicate pkg", err)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	g, err := ReadJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		t.Fatalf("WriteJSON() = %v", err)
	}
	first := buf.String()

	again, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON(WriteJSON()) = %v", err)
	}
	checkSample(t, again)

	var second bytes.Buffer
	_ = WriteJSON(again, &second)
	if first != second.String() {
		t.Errorf("WriteJSON not stable:\n%s\n---\n%s", first, second.String())
	}
}

func TestTOMLRoundTrip(t *testing.T) {
	g, err := ReadTOML(strings.NewReader(sampleTOML))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteTOML(g, &buf); err != nil {
		t.Fatalf("WriteTOML() = %v", err)
	}
	again, err := ReadTOML(&buf)
	if err != nil {
		t.Fatalf("ReadTOML(WriteTOML()) = %v\n%s", err, buf.String())
	}
	checkSample(t, again)
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "world.json")
	tomlPath := filepath.Join(dir, "world.TOML")
	if err := os.WriteFile(jsonPath, []byte(sampleJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(tomlPath, []byte(sampleTOML), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{jsonPath, tomlPath} {
		g, err := Import(path)
		if err != nil {
			t.Fatalf("Import(%s) = %v", path, err)
		}
		checkSample(t, g)
	}
}

func TestImportErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Import(filepath.Join(dir, "graph.yaml")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Import(.yaml) = %v, want INVALID_FORMAT", err)
	}
	if _, err := Import(filepath.Join(dir, "absent.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Import(absent) = %v, want FILE_NOT_FOUND", err)
	}

	bad := filepath.Join(dir, "bad.json")
	_ = os.WriteFile(bad, []byte("{"), 0o644)
	_, err := Import(bad)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("Import(bad) = %v, want INVALID_INPUT", err)
	}
	if !strings.Contains(err.Error(), bad) {
		t.Errorf("error %q should name the file", err)
	}
}

func TestDecode(t *testing.T) {
	g, err := Decode("world.toml", []byte(sampleTOML))
	if err != nil {
		t.Fatalf("Decode(toml) = %v", err)
	}
	checkSample(t, g)

	if _, err := Decode("world.xml", []byte(sampleJSON)); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Decode(.xml) = %v, want INVALID_FORMAT", err)
	}
	_, err = Decode("in.json", []byte("["))
	if !errors.Is(err, errors.ErrCodeInvalidInput) || !strings.Contains(err.Error(), "in.json") {
		t.Errorf("Decode(bad) = %v, want INVALID_INPUT naming in.json", err)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := ReadFile(filepath.Join(dir, "absent.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ReadFile(absent) = %v, want FILE_NOT_FOUND", err)
	}
	if _, err := ReadFile(dir); !errors.Is(err, errors.ErrCodeIO) {
		t.Errorf("ReadFile(dir) = %v, want IO_ERROR", err)
	}
}

func TestExportJSON(t *testing.T) {
	g := depgraph.New()
	_ = g.AddPkg("root", nil)
	_ = g.AddAtom("a", []string{"root"}, nil)

	path := filepath.Join(t.TempDir(), "out.json")
	if err := ExportJSON(g, path); err != nil {
		t.Fatalf("ExportJSON() = %v", err)
	}
	back, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() = %v", err)
	}
	if back.AtomCount() != 1 || back.PkgCount() != 1 {
		t.Errorf("round trip lost entries: %d atoms, %d pkgs", back.AtomCount(), back.PkgCount())
	}
}
