// Package handlers provides HTTP request handlers for the media catalog API.
//
// It includes handlers for:
//   - Listing audio or video files (GET /api/media/{type}) and both (GET /api/media)
//   - Searching the catalog (GET /api/search?q=)
//   - Health, liveness, readiness and version probes
//
// Handlers never surface backend failures as HTTP errors: an unreachable
// storage tier yields an empty listing with a degraded reason.
package handlers
