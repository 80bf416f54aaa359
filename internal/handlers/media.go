package handlers

import (
	"net/http"

	"media-catalog/internal/media"
	"media-catalog/internal/mediatypes"

	"github.com/gorilla/mux"
)

// AllMediaResponse is the body of GET /api/media.
type AllMediaResponse struct {
	Audio []media.MediaFile `json:"audio"`
	Video []media.MediaFile `json:"video"`
}

// GetMediaByType lists one kind. Backend failures are not errors here: the
// response is 200 with an empty item list and a degraded reason.
func (h *Handlers) GetMediaByType(w http.ResponseWriter, r *http.Request) {
	kind, ok := mediatypes.ParseKind(mux.Vars(r)["type"])
	if !ok {
		writeJSONError(w, "Invalid media type, expected audio or video", http.StatusBadRequest)
		return
	}

	listing := h.catalog.Fetch(r.Context(), kind)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, listing)
}

// GetAllMedia lists both kinds.
func (h *Handlers) GetAllMedia(w http.ResponseWriter, r *http.Request) {
	lib := h.catalog.GetAllMediaFiles(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, AllMediaResponse{
		Audio: lib.Audio.Files,
		Video: lib.Video.Files,
	})
}
