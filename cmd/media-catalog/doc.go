// Package main provides the entry point for the media catalog server.
//
// The server lists audio and video files from two storage tiers and serves
// them as JSON:
//
//  1. Blob storage, reached through the blob-list proxy (see cmd/blob-proxy).
//  2. A cloud drive, reached through its own list proxy, used when blob
//     storage is unconfigured, empty or failing.
//
// # Application Lifecycle
//
//  1. Configuration Loading: Reads environment variables via startup.LoadConfig
//  2. Metrics Registration: Pre-populates label sets and hooks the storage observer
//  3. Storage Wiring: Creates the blob lister, and the drive lister when MEGA_API_URL is set
//  4. HTTP Server Setup: Routes, then request ID, CORS, access log, metrics and gzip middleware
//  5. Graceful Shutdown: Handles SIGINT/SIGTERM with a 30s timeout
//
// # HTTP Server
//
// The application runs two HTTP servers:
//
//  1. Main Server (default port 8080):
//     - GET /api/media/{type}: files of one kind (audio or video)
//     - GET /api/media: both kinds
//     - GET /api/search?q=: case-insensitive search over title, artist and filename
//     - /health, /healthz, /livez, /readyz, /version
//
//  2. Metrics Server (default port 9090, optional):
//     - Prometheus metrics endpoint (/metrics)
//
// Nothing is cached; every request lists the storage backends again.
//
// See [media-catalog/internal/startup] for the environment variables.
package main
