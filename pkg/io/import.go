package io

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/depdot/pkg/depgraph"
	"github.com/matzehuels/depdot/pkg/errors"
)

// ReadJSON decodes a JSON graph from r.
//
// The input must be an object with "atoms" and "pkgs" arrays:
//
//	{
//	  "atoms": [{"atom": "dev-libs/foo", "parents": ["root"], "matches": ["dev-libs/foo-1.0"]}],
//	  "pkgs":  [{"id": "root"}, {"id": "dev-libs/foo-1.0", "data": {"slot": "0"}}]
//	}
//
// Array order becomes graph order. An empty id, a duplicate pkg or a
// duplicate atom fails with INVALID_INPUT naming the entry. References from
// atoms to unknown pkgs are accepted; use [depgraph.Graph.Validate] to find
// them. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*depgraph.Graph, error) {
	var data graph
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
	}
	return data.build()
}

// ReadTOML decodes a TOML graph from r:
//
//	[[atoms]]
//	atom = "dev-libs/foo"
//	parents = ["root"]
//	matches = ["dev-libs/foo-1.0"]
//
//	[[pkgs]]
//	id = "root"
//
// The same rules as [ReadJSON] apply.
func ReadTOML(r io.Reader) (*depgraph.Graph, error) {
	var data graph
	md, err := toml.NewDecoder(r).Decode(&data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		// data tables are free-form.
		for _, k := range undecoded {
			if len(k) < 2 || k[0] != "pkgs" || k[1] != "data" {
				return nil, errors.New(errors.ErrCodeInvalidInput, "decode toml: unknown key %q", k.String())
			}
		}
	}
	return data.build()
}

func (data graph) build() (*depgraph.Graph, error) {
	g := depgraph.New()
	for i, p := range data.Pkgs {
		if _, dup := g.Pkg(p.ID); dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "pkg %s: duplicate id", p.ID)
		}
		if err := g.AddPkg(p.ID, p.Data); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "pkg #%d", i)
		}
	}
	for i, a := range data.Atoms {
		if _, dup := g.Atom(a.Atom); dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "atom %s: duplicate atom", a.Atom)
		}
		if err := g.AddAtom(a.Atom, a.Parents, a.Matches); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "atom #%d", i)
		}
	}
	return g, nil
}

// ImportJSON reads a JSON graph file.
func ImportJSON(path string) (*depgraph.Graph, error) {
	return importFile(path, ReadJSON)
}

// ImportTOML reads a TOML graph file.
func ImportTOML(path string) (*depgraph.Graph, error) {
	return importFile(path, ReadTOML)
}

// Import reads a graph file, choosing the format by extension (.json or
// .toml). Other extensions fail with INVALID_FORMAT.
func Import(path string) (*depgraph.Graph, error) {
	read, err := readerFor(path)
	if err != nil {
		return nil, err
	}
	return importFile(path, read)
}

// Decode parses graph data already in memory. The format is chosen from
// the extension of name, as in [Import].
func Decode(name string, data []byte) (*depgraph.Graph, error) {
	read, err := readerFor(name)
	if err != nil {
		return nil, err
	}
	return decode(name, bytes.NewReader(data), read)
}

// ReadFile returns the contents of a graph file. A missing file fails
// with FILE_NOT_FOUND, any other read failure with IO_ERROR.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, openError(path, err)
	}
	return data, nil
}

// CheckFormat reports whether path has an extension [Import] accepts,
// failing with INVALID_FORMAT otherwise.
func CheckFormat(path string) error {
	_, err := readerFor(path)
	return err
}

// Formats lists the file extensions accepted by [Import].
func Formats() []string { return []string{".json", ".toml"} }

func readerFor(path string) (func(io.Reader) (*depgraph.Graph, error), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ReadJSON, nil
	case ".toml":
		return ReadTOML, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported graph file %s: want .json or .toml", path)
	}
}

func openError(path string, err error) error {
	if stderrors.Is(err, fs.ErrNotExist) {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	return errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
}

func importFile(path string, read func(io.Reader) (*depgraph.Graph, error)) (*depgraph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, openError(path, err)
	}
	defer f.Close()
	return decode(path, f, read)
}

func decode(name string, r io.Reader, read func(io.Reader) (*depgraph.Graph, error)) (*depgraph.Graph, error) {
	g, err := read(r)
	if err != nil {
		var coded *errors.Error
		if stderrors.As(err, &coded) {
			coded.Message = name + ": " + coded.Message
		}
		return nil, err
	}
	return g, nil
}
