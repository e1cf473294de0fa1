package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	ferrors "github.com/matzehuels/familytower/pkg/errors"
	"github.com/matzehuels/familytower/pkg/family"
	fio "github.com/matzehuels/familytower/pkg/io"
	"github.com/matzehuels/familytower/pkg/layout"
	"github.com/matzehuels/familytower/pkg/observability"
	"github.com/matzehuels/familytower/pkg/pipeline"
	"github.com/matzehuels/familytower/pkg/traverse"
)

// ===== Request bodies =====

// LayoutRequest is the body of POST /v1/layout.
type LayoutRequest struct {
	family.Family
	RootID           string           `json:"rootId"`
	Orientation      string           `json:"orientation,omitempty"`
	Geometry         *layout.Geometry `json:"geometry,omitempty"`
	Scope            bool             `json:"scope,omitempty"`
	SortByGeneration *bool            `json:"sortByGeneration,omitempty"`
}

// PersonRequest is the body of POST /v1/lineage and POST /v1/ancestor.
type PersonRequest struct {
	family.Family
	PersonID string `json:"personId"`
}

// FilterRequest is the body of POST /v1/filter.
type FilterRequest struct {
	family.Family
	RootID string `json:"rootId"`
}

// HiddenRequest is the body of POST /v1/hidden. Keep lists ids that stay
// visible regardless of collapse flags, typically the current root.
type HiddenRequest struct {
	family.Family
	Keep []string `json:"keep,omitempty"`
}

// AncestorResponse is the body returned by POST /v1/ancestor.
type AncestorResponse struct {
	ID string `json:"id"`
}

// HiddenResponse is the body returned by POST /v1/hidden.
type HiddenResponse struct {
	IDs []string `json:"ids"`
}

// ===== Handlers =====

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	// A partial geometry in the body overrides only the fields it names.
	g := s.geometry
	req := LayoutRequest{Geometry: &g}
	if !s.decode(w, r, &req) {
		return
	}

	opts := pipeline.Options{
		Family:      &req.Family,
		RootID:      req.RootID,
		Scope:       req.Scope,
		Orientation: req.Orientation,
		Geometry:    s.geometry,
		Logger:      s.logger,
	}
	if req.Geometry != nil {
		opts.Geometry = *req.Geometry
	}
	if req.SortByGeneration != nil {
		opts.NoGenerationSort = !*req.SortByGeneration
	}

	f, err := s.runner.Load(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, _, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), f, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("X-Cache", hitOrMiss(hit))
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleLineage(w http.ResponseWriter, r *http.Request) {
	var req PersonRequest
	if !s.decode(w, r, &req) {
		return
	}
	g, ok := s.graphWithPerson(w, r, req.Family, req.PersonID)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, g.Lineage(req.PersonID))
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	var req FilterRequest
	if !s.decode(w, r, &req) {
		return
	}
	scoped, err := s.graph(req.Family).FilterByRoot(req.RootID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(scoped))
}

func (s *Server) handleAncestor(w http.ResponseWriter, r *http.Request) {
	var req PersonRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := ferrors.ValidateID("person id", req.PersonID); err != nil {
		s.writeError(w, r, err)
		return
	}
	// People are optional here: the walk only follows marriages.
	writeJSON(w, http.StatusOK, AncestorResponse{ID: s.graph(req.Family).HighestAncestor(req.PersonID)})
}

func (s *Server) handleHidden(w http.ResponseWriter, r *http.Request) {
	var req HiddenRequest
	if !s.decode(w, r, &req) {
		return
	}
	ids := s.graph(req.Family).Hidden(req.Keep...)
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, HiddenResponse{IDs: ids})
}

func (s *Server) handleListFamilies(w http.ResponseWriter, r *http.Request) {
	if s.runner.Store == nil {
		s.writeError(w, r, ferrors.New(ferrors.ErrCodeUnsupported, "no family store configured"))
		return
	}
	ids, err := s.runner.Store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"ids": ids})
}

// handleFamilyLayout lays out a stored family and returns the artifact in
// the requested format (json by default).
func (s *Server) handleFamilyLayout(w http.ResponseWriter, r *http.Request) {
	if s.runner.Store == nil {
		s.writeError(w, r, ferrors.New(ferrors.ErrCodeUnsupported, "no family store configured"))
		return
	}
	q := r.URL.Query()

	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}
	scope, err := queryBool(q.Get("scope"))
	if err != nil {
		s.writeError(w, r, ferrors.Wrap(ferrors.ErrCodeInvalidArgument, err, "scope"))
		return
	}
	refresh, err := queryBool(q.Get("refresh"))
	if err != nil {
		s.writeError(w, r, ferrors.Wrap(ferrors.ErrCodeInvalidArgument, err, "refresh"))
		return
	}

	opts := pipeline.Options{
		FamilyID:    chi.URLParam(r, "id"),
		RootID:      q.Get("root"),
		Orientation: q.Get("orientation"),
		Scope:       scope,
		Refresh:     refresh,
		Geometry:    s.geometry,
		Formats:     []string{format},
		Logger:      s.logger,
	}
	if opts.RootID == "" {
		unscoped := opts
		unscoped.Scope = false
		f, err := s.runner.Load(r.Context(), unscoped)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		opts.RootID = s.graph(f).HighestAncestor(firstPerson(f))
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Cache", hitOrMiss(result.CacheInfo.LayoutHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// ===== Helpers =====

var contentTypes = map[string]string{
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
}

// decode reads a JSON body into v and normalizes the embedded family.
// It writes the error response and returns false on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v snapshotRequest) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty body")
		}
		s.writeError(w, r, ferrors.Wrap(ferrors.ErrCodeInvalidFormat, err, "decode request"))
		return false
	}
	fio.Normalize(v.snapshot())
	return true
}

// snapshotRequest is a request body embedding a family snapshot.
type snapshotRequest interface {
	snapshot() *family.Family
}

func (r *LayoutRequest) snapshot() *family.Family { return &r.Family }
func (r *PersonRequest) snapshot() *family.Family { return &r.Family }
func (r *FilterRequest) snapshot() *family.Family { return &r.Family }
func (r *HiddenRequest) snapshot() *family.Family { return &r.Family }

func (s *Server) graph(f family.Family) *traverse.Graph {
	return traverse.New(f.People, f.Marriages, traverse.WithTracer(observability.LogTracer(s.logger)))
}

func (s *Server) graphWithPerson(w http.ResponseWriter, r *http.Request, f family.Family, id string) (*traverse.Graph, bool) {
	if err := ferrors.ValidateID("person id", id); err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	g := s.graph(f)
	if _, ok := g.Person(id); !ok {
		s.writeError(w, r, ferrors.New(ferrors.ErrCodeNotFound, "person %s not found", id))
		return nil, false
	}
	return g, true
}

func firstPerson(f family.Family) string {
	if len(f.People) == 0 {
		return ""
	}
	return f.People[0].ID
}

func nonNil(f family.Family) family.Family {
	if f.People == nil {
		f.People = []family.Person{}
	}
	if f.Marriages == nil {
		f.Marriages = []family.Marriage{}
	}
	return f
}

func queryBool(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}

func hitOrMiss(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
