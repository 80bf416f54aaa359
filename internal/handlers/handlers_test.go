package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"media-catalog/internal/catalog"
	"media-catalog/internal/media"
	"media-catalog/internal/mediatypes"

	"github.com/gorilla/mux"
)

// mockCatalog returns canned listings and records calls.
type mockCatalog struct {
	mu          sync.Mutex
	listings    map[mediatypes.Kind]catalog.Listing
	searchItems []media.MediaFile
	configured  bool

	fetchCalls  []mediatypes.Kind
	searchCalls []string
}

func newMockCatalog() *mockCatalog {
	return &mockCatalog{
		listings: map[mediatypes.Kind]catalog.Listing{
			mediatypes.KindAudio: {
				Kind:   mediatypes.KindAudio,
				Source: catalog.TierBlob,
				Files: []media.MediaFile{{
					ID: "audio-0-Neon Pulse - Electric Dreams.mp3", Title: "Electric Dreams",
					Artist: "Neon Pulse", Filename: "Neon Pulse - Electric Dreams.mp3", Type: mediatypes.KindAudio,
				}},
			},
			mediatypes.KindVideo: {
				Kind:     mediatypes.KindVideo,
				Source:   catalog.TierNone,
				Files:    []media.MediaFile{},
				Degraded: "endpoint_unavailable",
			},
		},
		configured: true,
	}
}

func (m *mockCatalog) Fetch(_ context.Context, kind mediatypes.Kind) catalog.Listing {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchCalls = append(m.fetchCalls, kind)
	return m.listings[kind]
}

func (m *mockCatalog) GetAllMediaFiles(ctx context.Context) catalog.Library {
	return catalog.Library{
		Audio: m.Fetch(ctx, mediatypes.KindAudio),
		Video: m.Fetch(ctx, mediatypes.KindVideo),
	}
}

func (m *mockCatalog) Search(_ context.Context, query string) []media.MediaFile {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchCalls = append(m.searchCalls, query)
	return m.searchItems
}

func (m *mockCatalog) Status() []catalog.TierStatus {
	return []catalog.TierStatus{
		{Kind: mediatypes.KindAudio, Blob: m.configured},
		{Kind: mediatypes.KindVideo},
	}
}

func (m *mockCatalog) Configured() bool {
	return m.configured
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode %q: %v", rec.Body.String(), err)
	}
}

func TestGetMediaByType(t *testing.T) {
	t.Parallel()

	cat := newMockCatalog()
	h := New(cat)

	req := httptest.NewRequest(http.MethodGet, "/api/media/audio", nil)
	req = mux.SetURLVars(req, map[string]string{"type": "audio"})
	rec := httptest.NewRecorder()
	h.GetMediaByType(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got catalog.Listing
	decode(t, rec, &got)
	if got.Kind != mediatypes.KindAudio || got.Source != catalog.TierBlob || len(got.Files) != 1 {
		t.Errorf("listing = %+v", got)
	}
	if got.Files[0].Artist != "Neon Pulse" {
		t.Errorf("Artist = %q", got.Files[0].Artist)
	}
}

func TestGetMediaByTypeDegraded(t *testing.T) {
	t.Parallel()

	h := New(newMockCatalog())

	req := httptest.NewRequest(http.MethodGet, "/api/media/video", nil)
	req = mux.SetURLVars(req, map[string]string{"type": "video"})
	rec := httptest.NewRecorder()
	h.GetMediaByType(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"items":[]`) {
		t.Errorf("expected an empty items array, got %s", body)
	}
	if !strings.Contains(body, `"degraded":"endpoint_unavailable"`) {
		t.Errorf("expected degraded reason, got %s", body)
	}
}

func TestGetMediaByTypeInvalid(t *testing.T) {
	t.Parallel()

	for _, kind := range []string{"image", "", "audios", "none"} {
		cat := newMockCatalog()
		h := New(cat)

		req := httptest.NewRequest(http.MethodGet, "/api/media/"+kind, nil)
		req = mux.SetURLVars(req, map[string]string{"type": kind})
		rec := httptest.NewRecorder()
		h.GetMediaByType(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("type %q: status = %d, want 400", kind, rec.Code)
		}
		if len(cat.fetchCalls) != 0 {
			t.Errorf("type %q: catalog should not be called", kind)
		}

		var body map[string]string
		decode(t, rec, &body)
		if body["error"] == "" {
			t.Errorf("type %q: missing error message", kind)
		}
	}
}

func TestGetAllMedia(t *testing.T) {
	t.Parallel()

	h := New(newMockCatalog())

	rec := httptest.NewRecorder()
	h.GetAllMedia(rec, httptest.NewRequest(http.MethodGet, "/api/media", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got AllMediaResponse
	decode(t, rec, &got)
	if len(got.Audio) != 1 || got.Video == nil || len(got.Video) != 0 {
		t.Errorf("response = %+v", got)
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()

	cat := newMockCatalog()
	cat.searchItems = cat.listings[mediatypes.KindAudio].Files
	h := New(cat)

	rec := httptest.NewRecorder()
	h.Search(rec, httptest.NewRequest(http.MethodGet, "/api/search?q=Neon", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got SearchResponse
	decode(t, rec, &got)
	if got.Query != "Neon" || got.TotalItems != 1 || len(got.Items) != 1 {
		t.Errorf("response = %+v", got)
	}
	if len(cat.searchCalls) != 1 || cat.searchCalls[0] != "Neon" {
		t.Errorf("search calls = %v", cat.searchCalls)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	t.Parallel()

	// nil from the catalog must still encode as [].
	h := New(newMockCatalog())

	rec := httptest.NewRecorder()
	h.Search(rec, httptest.NewRequest(http.MethodGet, "/api/search", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"items":[]`) {
		t.Errorf("body = %s", rec.Body.String())
	}

	var got SearchResponse
	decode(t, rec, &got)
	if got.TotalItems != 0 || got.Query != "" {
		t.Errorf("response = %+v", got)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	MethodNotAllowed().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/search", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}

	var body map[string]string
	decode(t, rec, &body)
	if body["error"] != "Method not allowed" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestNotFound(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	NotFound().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestWriteJSONError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeJSONError(rec, "boom", http.StatusTeapot)

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"error":"boom"}` {
		t.Errorf("body = %s", got)
	}
}
