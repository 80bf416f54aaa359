package handlers

import (
	"net/http"

	"media-catalog/internal/media"
)

// SearchResponse is the body of GET /api/search.
type SearchResponse struct {
	Query      string            `json:"query"`
	Items      []media.MediaFile `json:"items"`
	TotalItems int               `json:"totalItems"`
}

func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	items := h.catalog.Search(r.Context(), query)
	if items == nil {
		items = []media.MediaFile{}
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, SearchResponse{
		Query:      query,
		Items:      items,
		TotalItems: len(items),
	})
}
