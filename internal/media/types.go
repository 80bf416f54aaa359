package media

import "media-catalog/internal/mediatypes"

// UnknownArtist is shown for audio files whose name carries no artist.
const UnknownArtist = "Unknown Artist"

// MediaFile represents one playable item in the catalog.
//
// IDs are only unique within a single listing; they are rebuilt on every
// fetch and must not be used as persistent identifiers.
type MediaFile struct {
	ID        string          `json:"id"`
	URL       string          `json:"url"`
	Title     string          `json:"title"`
	Filename  string          `json:"filename"`
	Type      mediatypes.Kind `json:"type"`
	Size      int64           `json:"size,omitempty"`
	Duration  string          `json:"duration,omitempty"`
	Thumbnail string          `json:"thumbnail,omitempty"`
	Artist    string          `json:"artist,omitempty"`
	Album     string          `json:"album,omitempty"`
}

// Metadata is what can be recovered from a file name alone.
type Metadata struct {
	Title  string `json:"title"`
	Artist string `json:"artist,omitempty"`
	Album  string `json:"album,omitempty"`
}
