package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/depdot/pkg/atom"
	"github.com/matzehuels/depdot/pkg/buildinfo"
	"github.com/matzehuels/depdot/pkg/depgraph"
	"github.com/matzehuels/depdot/pkg/errors"
	pkgio "github.com/matzehuels/depdot/pkg/io"
	"github.com/matzehuels/depdot/pkg/pipeline"
)

// DOTContentType is the media type of DOT responses.
const DOTContentType = "text/vnd.graphviz; charset=utf-8"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Get().Version,
	})
}

// handleDOT exports the posted JSON graph. Query: name, verify, refresh.
func (s *Server) handleDOT(w http.ResponseWriter, r *http.Request) {
	g, err := s.readGraph(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	opts := pipeline.Options{GraphName: q.Get("name")}
	if opts.Verify, err = boolParam(q, "verify"); err != nil {
		writeError(w, r, err)
		return
	}
	if opts.Refresh, err = boolParam(q, "refresh"); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := s.runner.Export(r.Context(), g, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", DOTContentType)
	w.Header().Set("X-Graph-Hash", res.GraphHash)
	if res.CacheHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.DOT)
}

// handleCheck reports on the posted JSON graph. Query: strict.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	g, err := s.readGraph(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	strict, err := boolParam(r.URL.Query(), "strict")
	if err != nil {
		writeError(w, r, err)
		return
	}

	rep := pipeline.Check(g, strict)
	writeJSON(w, http.StatusOK, checkResponse{
		OK:     rep.OK(),
		Atoms:  g.AtomCount(),
		Pkgs:   g.PkgCount(),
		Report: rep,
	})
}

// handleAtom parses the URL-escaped atom after /atoms/. Query: eapi.
func (s *Server) handleAtom(w http.ResponseWriter, r *http.Request) {
	raw, err := url.PathUnescape(chi.URLParam(r, "*"))
	if err != nil {
		writeError(w, r, errors.Wrap(errors.ErrCodeInvalidArgument, err, "unescape atom"))
		return
	}
	eapi := atom.Unrestricted
	if v := r.URL.Query().Get("eapi"); v != "" {
		if eapi, err = strconv.Atoi(v); err != nil || eapi < atom.Unrestricted {
			writeError(w, r, errors.New(errors.ErrCodeInvalidArgument, "invalid eapi %q", v))
			return
		}
	}

	a, err := atom.Parse(raw, atom.WithEAPI(eapi))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newAtomResponse(a))
}

func (s *Server) readGraph(w http.ResponseWriter, r *http.Request) (*depgraph.Graph, error) {
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	defer body.Close()

	g, err := pkgio.ReadJSON(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "graph exceeds %d bytes", tooLarge.Limit)
		}
		return nil, err
	}
	return g, nil
}

func boolParam(q url.Values, name string) (bool, error) {
	v := q.Get(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidArgument, "invalid %s=%q: want a boolean", name, v)
	}
	return b, nil
}

type checkResponse struct {
	OK    bool `json:"ok"`
	Atoms int  `json:"atoms"`
	Pkgs  int  `json:"pkgs"`
	pipeline.Report
}

type atomResponse struct {
	Atom           string   `json:"atom"`
	Key            string   `json:"key"`
	Category       string   `json:"category"`
	Package        string   `json:"package"`
	Op             string   `json:"op,omitempty"`
	Version        string   `json:"version,omitempty"`
	Revision       string   `json:"revision,omitempty"`
	Blocks         bool     `json:"blocks,omitempty"`
	BlocksStrongly bool     `json:"blocks_strongly,omitempty"`
	Slots          []string `json:"slots,omitempty"`
	Repo           string   `json:"repo,omitempty"`
	Use            []string `json:"use,omitempty"`
	Transitive     bool     `json:"transitive,omitempty"`
}

func newAtomResponse(a *atom.Atom) atomResponse {
	return atomResponse{
		Atom:           a.String(),
		Key:            a.Key(),
		Category:       a.Category,
		Package:        a.Package,
		Op:             a.Op.String(),
		Version:        a.Version,
		Revision:       a.Revision,
		Blocks:         a.Blocks,
		BlocksStrongly: a.BlocksStrongly,
		Slots:          a.Slots,
		Repo:           a.Repo,
		Use:            a.Use,
		Transitive:     a.Transitive,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
