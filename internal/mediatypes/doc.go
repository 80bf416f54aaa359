// Package mediatypes provides shared type definitions and utilities for media file
// handling across the media-catalog application.
//
// This package exists as a dependency-free foundation that can be imported by other
// packages without creating import cycles. It contains primitive types, constants,
// and pure utility functions with no external dependencies beyond the standard library.
//
// # Kinds
//
// The catalog only deals with playable media, so Kind is a closed set:
//
//	mediatypes.KindAudio // mp3, m4a, wav, flac, aac, ogg
//	mediatypes.KindVideo // mp4, avi, mov, mkv, webm, flv
//	mediatypes.KindNone  // anything else
//
// # Classification
//
// Use Classify to decide the kind of an object listed by a storage backend.
// The extension decides first; the backend-reported content type is only used
// when the extension is unknown:
//
//	kind := mediatypes.Classify("Artist - Title.mp3", "")      // KindAudio
//	kind = mediatypes.Classify("blob-1234", "video/mp4")      // KindVideo
//
// # MIME Types
//
// Use GetMimeType to guess a content type when a backend does not report one:
//
//	mimeType := mediatypes.GetMimeType(mediatypes.Ext(key)) // e.g., "audio/mpeg"
package mediatypes
