// Package media defines the catalog's MediaFile record and the file name
// parser that fills in its title, artist and album.
//
// Stored objects carry no tags, so everything the catalog knows about a track
// comes from its name:
//
//	media.ParseFilename("Neon Pulse - Electric Dreams.mp3")
//	// Metadata{Artist: "Neon Pulse", Title: "Electric Dreams"}
//
//	media.ParseFilename("Neon Pulse - Midnight Vibes - Electric Dreams.mp3")
//	// Metadata{Artist: "Neon Pulse", Album: "Midnight Vibes", Title: "Electric Dreams"}
package media
