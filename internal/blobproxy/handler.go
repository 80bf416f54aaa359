package blobproxy

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"media-catalog/internal/logging"
	"media-catalog/internal/mediatypes"
	"media-catalog/internal/metrics"
)

// ListPath is where the handler is mounted.
const ListPath = "/api/blob/list"

// Blob is one entry of the list response.
type Blob struct {
	URL         string    `json:"url"`
	Pathname    string    `json:"pathname"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploadedAt"`
	ContentType string    `json:"contentType"`
}

// ListResponse is the body of a successful listing.
type ListResponse struct {
	Blobs []Blob `json:"blobs"`
}

// Config configures a Handler.
type Config struct {
	// Token is the bearer token clients must present.
	Token string
	// BaseURL prefixes object keys to form public URLs, e.g.
	// "https://cdn.example.com" or "http://minio:9000/media".
	BaseURL string
}

// Handler serves the blob-list endpoint.
type Handler struct {
	lister  ObjectLister
	token   string
	baseURL string
}

// NewHandler creates a Handler listing through lister.
func NewHandler(lister ObjectLister, cfg Config) *Handler {
	return &Handler{
		lister:  lister,
		token:   cfg.Token,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
	}
}

// BaseURL derives the public base URL of a bucket: publicURL when set,
// otherwise the endpoint URL followed by the bucket name.
func BaseURL(publicURL, endpointURL, bucket string) string {
	if publicURL != "" {
		return strings.TrimSuffix(publicURL, "/")
	}
	return strings.TrimSuffix(endpointURL, "/") + "/" + url.PathEscape(bucket)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status := h.serve(w, r)
	metrics.ProxyListRequestsTotal.WithLabelValues(strconv.Itoa(status)).Inc()
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request) int {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		return http.StatusOK
	case http.MethodGet:
	default:
		return writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}

	token, ok := bearerToken(r)
	if !ok {
		return writeError(w, "Missing authorization token", http.StatusUnauthorized)
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(h.token)) != 1 {
		logging.Warn("blob proxy: rejected request with invalid token from %s", r.RemoteAddr)
		return writeError(w, "Invalid authorization token", http.StatusForbidden)
	}

	prefix := r.URL.Query().Get("prefix")
	objects, err := h.lister.ListObjects(r.Context(), prefix)
	if err != nil {
		logging.Error("blob proxy: listing prefix %q failed: %v", prefix, err)
		return writeError(w, err.Error(), http.StatusInternalServerError)
	}

	resp := ListResponse{Blobs: make([]Blob, 0, len(objects))}
	for _, obj := range objects {
		resp.Blobs = append(resp.Blobs, h.blob(obj))
	}
	metrics.ProxyObjectsListed.Add(float64(len(resp.Blobs)))
	logging.Debug("blob proxy: listed %d objects under %q", len(resp.Blobs), prefix)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Error("failed to encode JSON response: %v", err)
	}
	return http.StatusOK
}

func (h *Handler) blob(obj Object) Blob {
	contentType := obj.ContentType
	if contentType == "" {
		contentType = mediatypes.GetMimeType(mediatypes.Ext(obj.Key))
	}
	return Blob{
		URL:         h.baseURL + "/" + escapeKey(obj.Key),
		Pathname:    obj.Key,
		Size:        obj.Size,
		UploadedAt:  obj.LastModified.UTC(),
		ContentType: contentType,
	}
}

// escapeKey escapes each path segment of an object key, keeping the slashes.
func escapeKey(key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) < len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(auth[len(prefix):])
	return token, token != ""
}

func writeError(w http.ResponseWriter, message string, status int) int {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		logging.Error("failed to encode JSON response: %v", err)
	}
	return status
}
