package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/roomtile/pkg/cache"
	errs "github.com/matzehuels/roomtile/pkg/errors"
	rtio "github.com/matzehuels/roomtile/pkg/io"
	"github.com/matzehuels/roomtile/pkg/observability"
	"github.com/matzehuels/roomtile/pkg/pipeline"
	"github.com/matzehuels/roomtile/pkg/tiling"
)

func newTestServer(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(c, nil, logger)
	t.Cleanup(func() { _ = runner.Close() })
	return New(runner, logger, opts...).Handler()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestHealth(t *testing.T) {
	h := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	assert.NoError(t, err, "response should carry a generated request ID")
}

func TestRequestIDIsPropagated(t *testing.T) {
	h := newTestServer(t)
	id := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get(RequestIDHeader))
}

func TestCreateAndFetchTiling(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/v1/tilings", `{"width": 5, "height": 3}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 5, created.Width)
	assert.Equal(t, 3, created.Height)
	assert.Equal(t, []int{4, 3, 2, 1}, created.Palette)
	assert.Equal(t, tiling.Summary{{Size: 3, Count: 1}, {Size: 1, Count: 6}}, created.Summary)
	assert.Equal(t, tiling.Tile{Size: 3, Row: 0, Col: 1}, created.Tiles[0])
	assert.Len(t, created.Tiles, 7)
	assert.Equal(t, "/api/v1/tilings/"+created.ID, rec.Header().Get("Location"))

	rec = do(t, h, http.MethodGet, "/api/v1/tilings/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.Tiles, fetched.Tiles)

	rec = do(t, h, http.MethodGet, "/api/v1/tilings/"+created.ID+"/render/svg", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "tiling_5x3.svg")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("<svg ")))

	rec = do(t, h, http.MethodGet, "/api/v1/tilings/"+created.ID+"/render/dot", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "graph G {")
}

func TestCreateTilingEmptyPalette(t *testing.T) {
	h := newTestServer(t)
	rec := do(t, h, http.MethodPost, "/api/v1/tilings", `{"width": 2, "height": 2, "palette": []}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Empty(t, created.Palette)
	assert.Equal(t, 4, created.Filled)
	assert.Equal(t, tiling.Summary{{Size: 1, Count: 4}}, created.Summary)
}

func TestCreateTilingErrors(t *testing.T) {
	h := newTestServer(t, WithMaxCells(100))

	tests := []struct {
		name string
		body string
		code errs.Code
	}{
		{"zero width", `{"width": 0, "height": 3}`, errs.ErrCodeInvalidDimensions},
		{"negative height", `{"width": 3, "height": -2}`, errs.ErrCodeInvalidDimensions},
		{"too large", `{"width": 11, "height": 10}`, errs.ErrCodeInvalidDimensions},
		{"duplicate size", `{"width": 3, "height": 3, "palette": [2, 2]}`, errs.ErrCodeInvalidPalette},
		{"non-positive size", `{"width": 3, "height": 3, "palette": [0]}`, errs.ErrCodeInvalidPalette},
		{"malformed json", `{"width": `, errs.ErrCodeInvalidInput},
		{"unknown field", `{"width": 3, "height": 3, "colour": "red"}`, errs.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/v1/tilings", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.code, decodeError(t, rec).Code)
		})
	}
}

func TestPaletteLengthLimit(t *testing.T) {
	h := newTestServer(t, WithMaxPaletteLen(3))

	rec := do(t, h, http.MethodPost, "/api/v1/tilings", `{"width": 8, "height": 8, "palette": [4, 3, 2, 1]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errs.ErrCodeInvalidPalette, decodeError(t, rec).Code)

	rec = do(t, h, http.MethodGet, "/api/v1/render/json?width=8&height=8&palette=5,4,3,2", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errs.ErrCodeInvalidPalette, decodeError(t, rec).Code)

	rec = do(t, h, http.MethodGet, "/api/v1/render/json?width=8&height=8&palette=4,2,1", "")
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestDefaultPaletteLengthLimit(t *testing.T) {
	h := newTestServer(t)

	sizes := make([]string, DefaultMaxPaletteLen+1)
	for i := range sizes {
		sizes[i] = strconv.Itoa(i + 1)
	}
	rec := do(t, h, http.MethodGet, "/api/v1/render/json?width=4&height=4&palette="+strings.Join(sizes, ","), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errs.ErrCodeInvalidPalette, decodeError(t, rec).Code)
}

func TestCreateTilingWithoutCacheIsUnsupported(t *testing.T) {
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
	h := New(runner, logger).Handler()

	rec := do(t, h, http.MethodPost, "/api/v1/tilings", `{"width": 3, "height": 3}`)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	assert.Equal(t, errs.ErrCodeUnsupported, decodeError(t, rec).Code)
	assert.Empty(t, rec.Header().Get("Location"))

	rec = do(t, h, http.MethodGet, "/api/v1/render/json?width=3&height=3", "")
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestGetTilingErrors(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/v1/tilings/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, errs.ErrCodeNotFound, decodeError(t, rec).Code)

	rec = do(t, h, http.MethodGet, "/api/v1/tilings/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/tilings/"+uuid.NewString()+"/render/gif", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errs.ErrCodeInvalidFormat, decodeError(t, rec).Code)
}

func TestRenderDirect(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/v1/render/json?width=5&height=3", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	r, err := rtio.UnmarshalJSON(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Len(t, r.Tiles, 7)

	rec = do(t, h, http.MethodGet, "/api/v1/render/json?width=3&height=3&palette=2", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	r, err = rtio.UnmarshalJSON(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []int{2}, r.Palette)
	assert.Equal(t, tiling.Tile{Size: 2, Row: 0, Col: 0}, r.Tiles[0])
	assert.Equal(t, 5, r.Filled)
}

func TestRenderDirectErrors(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		target string
		code   errs.Code
	}{
		{"/api/v1/render/svg?height=3", errs.ErrCodeInvalidDimensions},
		{"/api/v1/render/svg?width=x&height=3", errs.ErrCodeInvalidDimensions},
		{"/api/v1/render/svg?width=3&height=0", errs.ErrCodeInvalidDimensions},
		{"/api/v1/render/bmp?width=3&height=3", errs.ErrCodeInvalidFormat},
		{"/api/v1/render/svg?width=3&height=3&palette=3,3", errs.ErrCodeInvalidPalette},
		{"/api/v1/render/svg?width=3&height=3&palette=a", errs.ErrCodeInvalidPalette},
	}
	for _, tt := range tests {
		rec := do(t, h, http.MethodGet, tt.target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, tt.target)
		assert.Equal(t, tt.code, decodeError(t, rec).Code, tt.target)
	}
}

func TestUnknownRoute(t *testing.T) {
	h := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, errs.ErrCodeNotFound, decodeError(t, rec).Code)
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu       sync.Mutex
	requests []string
	statuses []int
}

func (h *recordingHTTPHooks) OnRequest(_ context.Context, method, path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.requests = append(h.requests, method+" "+path)
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	h := newTestServer(t)
	do(t, h, http.MethodGet, "/healthz", "")
	do(t, h, http.MethodGet, "/api/v1/tilings/abc", "")

	assert.Equal(t, []string{"GET /healthz", "GET /api/v1/tilings/abc"}, hooks.requests)
	assert.Equal(t, []int{http.StatusOK, http.StatusBadRequest}, hooks.statuses)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(errs.New(errs.ErrCodeInvalidPalette, "x")))
	assert.Equal(t, http.StatusNotFound, statusFor(errs.New(errs.ErrCodeFileNotFound, "x")))
	assert.Equal(t, http.StatusNotImplemented, statusFor(errs.New(errs.ErrCodeUnsupported, "x")))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errs.New(errs.ErrCodeInternal, "x")))
	assert.Equal(t, http.StatusInternalServerError, statusFor(io.EOF))
}
