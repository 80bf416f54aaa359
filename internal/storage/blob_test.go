package storage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"media-catalog/internal/mediatypes"
)

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func newTestBlobLister(url string) *BlobLister {
	return NewBlobLister(ClientConfig{
		Endpoint: url,
		Now:      func() time.Time { return fixedNow },
	})
}

func jsonHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestBlobListerSendsTokenAndPrefix(t *testing.T) {
	t.Parallel()

	var gotAuth, gotPrefix, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPrefix = r.URL.Query().Get("prefix")
		gotMethod = r.Method
		jsonHandler(http.StatusOK, `{"blobs":[]}`)(w, r)
	}))
	defer server.Close()

	lister := newTestBlobLister(server.URL + "/api/blob/list")
	entries, err := lister.List(context.Background(), ListRequest{Credential: "secret", Prefix: "music/a b"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
	if gotMethod != http.MethodGet {
		t.Errorf("method = %s, want GET", gotMethod)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer secret")
	}
	if gotPrefix != "music/a b" {
		t.Errorf("prefix = %q, want %q", gotPrefix, "music/a b")
	}
}

func TestBlobListerNormalizesEntries(t *testing.T) {
	t.Parallel()

	body := `{"blobs":[
		{"url":"https://cdn.example/Neon Pulse - Electric Dreams.mp3","pathname":"Neon Pulse - Electric Dreams.mp3","size":1234,"uploadedAt":"2025-06-01T10:00:00.000Z","contentType":"audio/mpeg"},
		{"url":"clip.mp4","pathname":"clip.mp4"},
		{"pathname":"bare.mp3","size":-5,"uploadedAt":1717236000000},
		{"url":"https://cdn.example/x.mp3","pathname":"x.mp3","uploadedAt":"not a date","size":12.0}
	]}`
	server := httptest.NewServer(jsonHandler(http.StatusOK, body))
	defer server.Close()

	lister := newTestBlobLister(server.URL)
	entries, err := lister.List(context.Background(), ListRequest{Credential: "t", BaseURL: "https://store.example/"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}

	first := entries[0]
	if first.Size != 1234 || first.ContentType != "audio/mpeg" {
		t.Errorf("first entry = %+v", first)
	}
	if want := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC); !first.UploadedAt.Equal(want) {
		t.Errorf("UploadedAt = %v, want %v", first.UploadedAt, want)
	}

	second := entries[1]
	if second.URL != "https://store.example/clip.mp4" {
		t.Errorf("relative URL not rebuilt: %q", second.URL)
	}
	if second.Size != 0 || second.ContentType != "" {
		t.Errorf("defaults not applied: %+v", second)
	}
	if !second.UploadedAt.Equal(fixedNow) {
		t.Errorf("missing uploadedAt should default to now, got %v", second.UploadedAt)
	}

	third := entries[2]
	if third.URL != "bare.mp3" {
		t.Errorf("empty URL should fall back to pathname, got %q", third.URL)
	}
	if third.Size != 0 {
		t.Errorf("negative size should clamp to 0, got %d", third.Size)
	}
	if want := time.UnixMilli(1717236000000).UTC(); !third.UploadedAt.Equal(want) {
		t.Errorf("millis UploadedAt = %v, want %v", third.UploadedAt, want)
	}

	fourth := entries[3]
	if !fourth.UploadedAt.Equal(fixedNow) {
		t.Errorf("unparseable uploadedAt should default to now, got %v", fourth.UploadedAt)
	}
	if fourth.Size != 12 {
		t.Errorf("Size = %d, want 12", fourth.Size)
	}
}

func TestBlobListerLenientFieldTypes(t *testing.T) {
	t.Parallel()

	body := `{"blobs":[
		{"id":42,"url":"https://cdn.example/a.mp3","pathname":"a.mp3","size":"123"},
		{"id":"b-1","url":"https://cdn.example/b.mp3","pathname":"b.mp3","size":"big"},
		{"id":null,"url":null,"pathname":"c.mp3","size":null,"contentType":null},
		{"id":{"x":1},"url":"https://cdn.example/d.mp3","pathname":"d.mp3","size":[1]}
	]}`
	server := httptest.NewServer(jsonHandler(http.StatusOK, body))
	defer server.Close()

	entries, err := newTestBlobLister(server.URL).List(context.Background(), ListRequest{Credential: "t"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}

	tests := []struct {
		id   string
		size int64
	}{
		{"42", 123},
		{"b-1", 0},
		{"", 0},
		{"", 0},
	}
	for i, tt := range tests {
		if entries[i].ID != tt.id {
			t.Errorf("entries[%d].ID = %q, want %q", i, entries[i].ID, tt.id)
		}
		if entries[i].Size != tt.size {
			t.Errorf("entries[%d].Size = %d, want %d", i, entries[i].Size, tt.size)
		}
	}
	if entries[2].URL != "c.mp3" {
		t.Errorf("entries[2].URL = %q, want pathname fallback", entries[2].URL)
	}
}

func TestBlobListerMissingBlobsKey(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(jsonHandler(http.StatusOK, `{}`))
	defer server.Close()

	entries, err := newTestBlobLister(server.URL).List(context.Background(), ListRequest{Credential: "t"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty list, got %d", len(entries))
	}
}

func TestBlobListerFaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		handler     http.HandlerFunc
		wantErr     error
		wantStatus  int
		wantInError string
	}{
		{
			name:        "server error",
			handler:     jsonHandler(http.StatusInternalServerError, `{"error":"Failed to list blobs"}`),
			wantErr:     ErrBackendHTTP,
			wantStatus:  http.StatusInternalServerError,
			wantInError: "Failed to list blobs",
		},
		{
			name:        "missing token",
			handler:     jsonHandler(http.StatusUnauthorized, `{"error":"Missing authorization token"}`),
			wantErr:     ErrBackendHTTP,
			wantStatus:  http.StatusUnauthorized,
			wantInError: "HTTP 401",
		},
		{
			name: "empty error body uses status text",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			wantErr:     ErrBackendHTTP,
			wantStatus:  http.StatusBadGateway,
			wantInError: "Bad Gateway",
		},
		{
			name: "html page",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "text/html")
				_, _ = w.Write([]byte("<!DOCTYPE html><html><head><title>404: NOT_FOUND</title></head><body></body></html>"))
			},
			wantErr:     ErrEndpointUnavailable,
			wantInError: "404: NOT_FOUND",
		},
		{
			name: "html body with json content type",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte("  <html><body>oops</body></html>"))
			},
			wantErr: ErrEndpointUnavailable,
		},
		{
			name: "plain text",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "text/plain")
				_, _ = w.Write([]byte(`{"blobs":[]}`))
			},
			wantErr: ErrEndpointUnavailable,
		},
		{
			name:        "malformed json",
			handler:     jsonHandler(http.StatusOK, `{"blobs":[`),
			wantErr:     ErrInvalidResponse,
			wantInError: "invalid JSON",
		},
		{
			name:    "gateway timeout",
			handler: jsonHandler(http.StatusGatewayTimeout, `{"error":"upstream"}`),
			wantErr: ErrUpstreamTimeout,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(tt.handler)
			defer server.Close()

			entries, err := newTestBlobLister(server.URL).List(context.Background(), ListRequest{Credential: "t"})
			if entries != nil {
				t.Errorf("expected nil entries on fault, got %v", entries)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}

			var fault *Fault
			if !errors.As(err, &fault) {
				t.Fatalf("expected *Fault, got %T", err)
			}
			if fault.Backend != BackendBlob {
				t.Errorf("Backend = %q, want %q", fault.Backend, BackendBlob)
			}
			if tt.wantStatus != 0 && fault.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", fault.StatusCode, tt.wantStatus)
			}
			if tt.wantInError != "" && !strings.Contains(err.Error(), tt.wantInError) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantInError)
			}
		})
	}
}

func TestBlobListerUnreachable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(jsonHandler(http.StatusOK, `{}`))
	url := server.URL
	server.Close()

	_, err := newTestBlobLister(url).List(context.Background(), ListRequest{Credential: "t"})
	if !errors.Is(err, ErrEndpointUnavailable) {
		t.Errorf("error = %v, want endpoint_unavailable", err)
	}
}

func TestBlobListerInvalidEndpoint(t *testing.T) {
	t.Parallel()

	_, err := newTestBlobLister("not-a-url").List(context.Background(), ListRequest{Credential: "t"})
	if !errors.Is(err, ErrEndpointUnavailable) {
		t.Errorf("error = %v, want endpoint_unavailable", err)
	}
}

func TestBlobListerContextDeadline(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestBlobLister(server.URL).List(ctx, ListRequest{Credential: "t", Kind: mediatypes.KindAudio})
	if !errors.Is(err, ErrUpstreamTimeout) {
		t.Errorf("error = %v, want upstream_timeout", err)
	}
}
