package media

import (
	"strings"

	"media-catalog/internal/mediatypes"
)

// FieldSeparator separates artist, album and title in a stored file name.
const FieldSeparator = " - "

// ParseFilename extracts metadata from names following the
// "Artist - Title.ext" or "Artist - Album - Title.ext" convention.
//
// A known media extension is stripped first (case-insensitive). With one
// segment the whole name is the title; with two the first is the artist; with
// three or more the second is the album and the rest is joined back into the
// title. There is no escape for a literal " - " inside a field, so such names
// shift into the next field.
func ParseFilename(name string) Metadata {
	base := mediatypes.TrimMediaExtension(name)
	parts := strings.Split(base, FieldSeparator)

	switch {
	case len(parts) >= 3:
		return Metadata{
			Artist: strings.TrimSpace(parts[0]),
			Album:  strings.TrimSpace(parts[1]),
			Title:  strings.TrimSpace(strings.Join(parts[2:], FieldSeparator)),
		}
	case len(parts) == 2:
		return Metadata{
			Artist: strings.TrimSpace(parts[0]),
			Title:  strings.TrimSpace(parts[1]),
		}
	default:
		return Metadata{Title: strings.TrimSpace(base)}
	}
}
