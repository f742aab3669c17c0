package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/roomtile/pkg/cache"
	errs "github.com/matzehuels/roomtile/pkg/errors"
	"github.com/matzehuels/roomtile/pkg/pipeline"
	"github.com/matzehuels/roomtile/pkg/render"
	"github.com/matzehuels/roomtile/pkg/tiling"
)

// TilingRequest is the body of POST /api/v1/tilings. A missing palette uses
// the default; an empty one leaves everything to the unit fill.
type TilingRequest struct {
	Width   int   `json:"width"`
	Height  int   `json:"height"`
	Palette []int `json:"palette"`
}

// Record is a stored tiling.
type Record struct {
	ID        string         `json:"id"`
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	Palette   []int          `json:"palette"`
	Summary   tiling.Summary `json:"summary"`
	Filled    int            `json:"filled"`
	Tiles     []tiling.Tile  `json:"tiles"`
	CreatedAt time.Time      `json:"created_at"`
}

func (rec *Record) result() (*tiling.Result, error) {
	return tiling.FromTiles(rec.Height, rec.Width, rec.Palette, rec.Tiles)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateTiling(w http.ResponseWriter, r *http.Request) {
	var req TilingRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	if err := s.checkArea(req.Height, req.Width); err != nil {
		writeError(w, err)
		return
	}
	if err := s.checkPalette(req.Palette); err != nil {
		writeError(w, err)
		return
	}
	if isNullCache(s.runner.Cache) {
		writeError(w, errs.New(errs.ErrCodeUnsupported, "storing tilings requires a cache backend"))
		return
	}

	t, err := s.runner.Tile(r.Context(), pipeline.Options{
		Width:   req.Width,
		Height:  req.Height,
		Palette: req.Palette,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	rec := &Record{
		ID:        uuid.NewString(),
		Width:     t.Width,
		Height:    t.Height,
		Palette:   t.Palette,
		Summary:   tiling.Summarize(t.Tiles),
		Filled:    t.Filled,
		Tiles:     t.Tiles,
		CreatedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		writeError(w, errs.Wrap(errs.ErrCodeInternal, err, "encode record"))
		return
	}
	if err := s.runner.Cache.Set(r.Context(), s.runner.Keyer.RecordKey(rec.ID), data, s.recordTTL); err != nil {
		writeError(w, errs.Wrap(errs.ErrCodeInternal, err, "store record"))
		return
	}

	s.logger.Debug("stored tiling", "id", rec.ID, "width", rec.Width, "height", rec.Height, "tiles", len(rec.Tiles))
	w.Header().Set("Location", "/api/v1/tilings/"+rec.ID)
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleGetTiling(w http.ResponseWriter, r *http.Request) {
	rec, err := s.loadRecord(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleRenderTiling(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}
	rec, err := s.loadRecord(r)
	if err != nil {
		writeError(w, err)
		return
	}
	t, err := rec.result()
	if err != nil {
		writeError(w, errs.Wrap(errs.ErrCodeInternal, err, "stored record %s is corrupt", rec.ID))
		return
	}

	opts := s.render
	opts.Formats = []string{format}
	artifacts, err := s.runner.Render(r.Context(), t, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeArtifact(w, format, pipeline.OutputName(t.Width, t.Height, format), artifacts[format])
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}

	q := r.URL.Query()
	width, err := intParam(q.Get("width"), "width")
	if err != nil {
		writeError(w, err)
		return
	}
	height, err := intParam(q.Get("height"), "height")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.checkArea(height, width); err != nil {
		writeError(w, err)
		return
	}

	opts := s.render
	opts.Width, opts.Height = width, height
	opts.Formats = []string{format}
	if q.Has("palette") {
		if opts.Palette, err = pipeline.ParsePalette(q.Get("palette")); err != nil {
			writeError(w, err)
			return
		}
		if err := s.checkPalette(opts.Palette); err != nil {
			writeError(w, err)
			return
		}
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeArtifact(w, format, pipeline.OutputName(width, height, format), res.Artifacts[format])
}

func (s *Server) loadRecord(r *http.Request) (*Record, error) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		return nil, errs.New(errs.ErrCodeInvalidInput, "invalid tiling id %q", id)
	}
	data, ok, err := s.runner.Cache.Get(r.Context(), s.runner.Keyer.RecordKey(id))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "load record")
	}
	if !ok {
		return nil, errNotFound("tiling %s not found", id)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "decode record %s", id)
	}
	return &rec, nil
}

// checkArea validates dimensions and rejects rooms above the cell limit
// before any grid is allocated.
func (s *Server) checkArea(height, width int) error {
	if err := errs.ValidateDimensions(height, width); err != nil {
		return err
	}
	if s.maxCells > 0 && height > s.maxCells/width {
		return errs.New(errs.ErrCodeInvalidDimensions, "room %dx%d exceeds the limit of %d cells", width, height, s.maxCells)
	}
	return nil
}

// checkPalette rejects palettes longer than the server limit.
func (s *Server) checkPalette(palette []int) error {
	if s.maxPalette > 0 && len(palette) > s.maxPalette {
		return errs.New(errs.ErrCodeInvalidPalette, "palette has %d sizes, the limit is %d", len(palette), s.maxPalette)
	}
	return nil
}

func isNullCache(c cache.Cache) bool {
	_, ok := c.(*cache.NullCache)
	return ok
}

func intParam(v, name string) (int, error) {
	if v == "" {
		return 0, errs.New(errs.ErrCodeInvalidDimensions, "%s is required", name)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errs.New(errs.ErrCodeInvalidDimensions, "%s must be an integer, got %q", name, v)
	}
	return n, nil
}

// =============================================================================
// Responses
// =============================================================================

type errorBody struct {
	Code  errs.Code `json:"code"`
	Error string    `json:"error"`
}

func errNotFound(format string, args ...any) error {
	return errs.New(errs.ErrCodeNotFound, format, args...)
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errs.IsValidation(err):
		return http.StatusBadRequest
	case errs.IsNotFound(err):
		return http.StatusNotFound
	case errs.Is(err, errs.ErrCodeUnsupported):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	writeJSON(w, statusFor(err), errorBody{Code: code, Error: errs.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeArtifact(w http.ResponseWriter, format, name string, data []byte) {
	w.Header().Set("Content-Type", render.ContentType(format))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
