package blobproxy

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeLister struct {
	objects []Object
	err     error
	prefix  string
	calls   int
}

func (f *fakeLister) ListObjects(_ context.Context, prefix string) ([]Object, error) {
	f.calls++
	f.prefix = prefix
	if f.err != nil {
		return nil, f.err
	}
	return f.objects, nil
}

var uploaded = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newTestHandler(lister ObjectLister) *Handler {
	return NewHandler(lister, Config{Token: "secret", BaseURL: "https://cdn.example/media/"})
}

func do(t *testing.T, h http.Handler, method, target, auth string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, target, http.NoBody)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var body map[string]interface{}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid JSON %q: %v", rec.Body.String(), err)
		}
	}
	return rec, body
}

func TestHandlerAuth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		auth     string
		wantCode int
		wantErr  string
	}{
		{"missing header", "", http.StatusUnauthorized, "Missing authorization token"},
		{"not bearer", "Basic abc", http.StatusUnauthorized, "Missing authorization token"},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, "Missing authorization token"},
		{"wrong token", "Bearer nope", http.StatusForbidden, "Invalid authorization token"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lister := &fakeLister{}
			rec, body := do(t, newTestHandler(lister), http.MethodGet, ListPath, tt.auth)

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if body["error"] != tt.wantErr {
				t.Errorf("error = %v, want %q", body["error"], tt.wantErr)
			}
			if lister.calls != 0 {
				t.Error("bucket must not be listed for unauthorized requests")
			}
		})
	}
}

func TestHandlerMethods(t *testing.T) {
	t.Parallel()

	h := newTestHandler(&fakeLister{})

	rec, _ := do(t, h, http.MethodOptions, ListPath, "")
	if rec.Code != http.StatusOK {
		t.Errorf("OPTIONS status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("OPTIONS should carry CORS headers")
	}
	if rec.Header().Get("Access-Control-Allow-Headers") != "Authorization, Content-Type" {
		t.Errorf("Allow-Headers = %q", rec.Header().Get("Access-Control-Allow-Headers"))
	}

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		rec, body := do(t, h, method, ListPath, "Bearer secret")
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s status = %d, want 405", method, rec.Code)
		}
		if body["error"] != "Method not allowed" {
			t.Errorf("%s error = %v", method, body["error"])
		}
	}
}

func TestHandlerList(t *testing.T) {
	t.Parallel()

	lister := &fakeLister{objects: []Object{
		{Key: "Neon Pulse - Electric Dreams.mp3", Size: 4096, LastModified: uploaded, ContentType: "audio/mpeg"},
		{Key: "videos/intro.mp4", Size: 1 << 20, LastModified: uploaded},
		{Key: "notes.bin", Size: 3, LastModified: uploaded},
	}}

	req := httptest.NewRequest(http.MethodGet, ListPath+"?prefix=music/", http.NoBody)
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	newTestHandler(lister).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if lister.prefix != "music/" {
		t.Errorf("prefix = %q, want music/", lister.prefix)
	}

	var resp ListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Blobs) != 3 {
		t.Fatalf("expected 3 blobs, got %d", len(resp.Blobs))
	}

	first := resp.Blobs[0]
	if first.URL != "https://cdn.example/media/Neon%20Pulse%20-%20Electric%20Dreams.mp3" {
		t.Errorf("URL = %q", first.URL)
	}
	if first.Pathname != "Neon Pulse - Electric Dreams.mp3" || first.Size != 4096 || first.ContentType != "audio/mpeg" {
		t.Errorf("first = %+v", first)
	}
	if !first.UploadedAt.Equal(uploaded) {
		t.Errorf("UploadedAt = %v", first.UploadedAt)
	}

	if resp.Blobs[1].URL != "https://cdn.example/media/videos/intro.mp4" {
		t.Errorf("nested URL = %q", resp.Blobs[1].URL)
	}
	if resp.Blobs[1].ContentType != "video/mp4" {
		t.Errorf("ContentType from extension = %q", resp.Blobs[1].ContentType)
	}
	if resp.Blobs[2].ContentType != "application/octet-stream" {
		t.Errorf("unknown extension ContentType = %q", resp.Blobs[2].ContentType)
	}
}

func TestHandlerEmptyBucket(t *testing.T) {
	t.Parallel()

	rec, _ := do(t, newTestHandler(&fakeLister{}), http.MethodGet, ListPath, "Bearer secret")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Body.String(); got != "{\"blobs\":[]}\n" {
		t.Errorf("body = %q", got)
	}
}

func TestHandlerListError(t *testing.T) {
	t.Parallel()

	lister := &fakeLister{err: errors.New("bucket gone")}
	rec, body := do(t, newTestHandler(lister), http.MethodGet, ListPath, "Bearer secret")

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if body["error"] != "bucket gone" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		public, endpoint, bucket string
		want                     string
	}{
		{"https://cdn.example/", "https://s3.example", "media", "https://cdn.example"},
		{"", "http://minio:9000", "media", "http://minio:9000/media"},
		{"", "https://s3.example/", "my bucket", "https://s3.example/my%20bucket"},
	}

	for _, tt := range tests {
		if got := BaseURL(tt.public, tt.endpoint, tt.bucket); got != tt.want {
			t.Errorf("BaseURL(%q, %q, %q) = %q, want %q", tt.public, tt.endpoint, tt.bucket, got, tt.want)
		}
	}
}

func TestNewMinioLister(t *testing.T) {
	t.Parallel()

	lister, err := NewMinioLister(MinioConfig{
		Endpoint:  "localhost:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Bucket:    "media",
	})
	if err != nil {
		t.Fatalf("NewMinioLister() error = %v", err)
	}
	if lister.Bucket() != "media" {
		t.Errorf("Bucket() = %q", lister.Bucket())
	}
	if lister.EndpointURL() != "http://localhost:9000" {
		t.Errorf("EndpointURL() = %q", lister.EndpointURL())
	}

	if _, err := NewMinioLister(MinioConfig{Endpoint: ""}); err == nil {
		t.Error("expected an error for an invalid endpoint")
	}
}
