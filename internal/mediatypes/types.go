package mediatypes

import (
	"path"
	"strings"
)

// Kind represents the kind of a playable media file.
type Kind string

const (
	// KindAudio represents a music or other audio file.
	KindAudio Kind = "audio"
	// KindVideo represents a video file.
	KindVideo Kind = "video"
	// KindNone is returned when a file is neither audio nor video.
	KindNone Kind = ""
)

// Kinds lists every playable kind in catalog order (audio before video).
var Kinds = []Kind{KindAudio, KindVideo}

// ParseKind converts a string such as "audio" or "Video" into a Kind.
// Returns false if the string does not name a playable kind.
func ParseKind(s string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindAudio:
		return KindAudio, true
	case KindVideo:
		return KindVideo, true
	default:
		return KindNone, false
	}
}

func (k Kind) String() string {
	if k == KindNone {
		return "none"
	}
	return string(k)
}

// AudioExtensions maps file extensions to whether they are supported audio formats.
var AudioExtensions = map[string]bool{
	".mp3":  true,
	".m4a":  true,
	".wav":  true,
	".flac": true,
	".aac":  true,
	".ogg":  true,
}

// VideoExtensions maps file extensions to whether they are supported video formats.
var VideoExtensions = map[string]bool{
	".mp4":  true,
	".avi":  true,
	".mov":  true,
	".mkv":  true,
	".webm": true,
	".flv":  true,
}

// MimeTypes maps file extensions to their MIME types.
var MimeTypes = map[string]string{
	// Audio
	".mp3":  "audio/mpeg",
	".m4a":  "audio/mp4",
	".wav":  "audio/wav",
	".flac": "audio/flac",
	".aac":  "audio/aac",
	".ogg":  "audio/ogg",

	// Video
	".mp4":  "video/mp4",
	".avi":  "video/x-msvideo",
	".mov":  "video/quicktime",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
	".flv":  "video/x-flv",
}

// Ext returns the lowercase extension of name, including the leading dot.
func Ext(name string) string {
	return strings.ToLower(path.Ext(name))
}

// GetKind returns the Kind for a given file extension.
// The extension should be lowercase and include the leading dot (e.g., ".mp3").
// Returns KindNone if the extension is not recognized.
func GetKind(ext string) Kind {
	if AudioExtensions[ext] {
		return KindAudio
	}
	if VideoExtensions[ext] {
		return KindVideo
	}
	return KindNone
}

// GetMimeType returns the MIME type for a given file extension.
// Returns "application/octet-stream" if the extension is not recognized.
func GetMimeType(ext string) string {
	if mime, ok := MimeTypes[ext]; ok {
		return mime
	}
	return "application/octet-stream"
}

// IsMediaFile returns true if the extension represents a supported media file.
func IsMediaFile(ext string) bool {
	return GetKind(ext) != KindNone
}

// Classify decides the kind of a stored object from its pathname and the
// content type reported by the backend. The extension is authoritative; the
// content type is only consulted when the extension is unknown, so a file is
// never both audio and video.
func Classify(pathname, contentType string) Kind {
	if kind := GetKind(Ext(pathname)); kind != KindNone {
		return kind
	}

	ct := strings.ToLower(contentType)
	switch {
	case strings.HasPrefix(ct, "audio/"):
		return KindAudio
	case strings.HasPrefix(ct, "video/"):
		return KindVideo
	case strings.Contains(ct, "audio"), strings.Contains(ct, "mpeg"):
		return KindAudio
	case strings.Contains(ct, "video"), strings.Contains(ct, "mp4"):
		return KindVideo
	}
	return KindNone
}

// TrimMediaExtension removes a trailing known media extension from name,
// matching case-insensitively. Other extensions are left in place.
func TrimMediaExtension(name string) string {
	ext := path.Ext(name)
	if ext == "" || !IsMediaFile(strings.ToLower(ext)) {
		return name
	}
	return name[:len(name)-len(ext)]
}
