// Package middleware provides HTTP middleware shared by the catalog server
// and the blob proxy.
//
// It includes:
//   - Request IDs (X-Request-ID, generated with a random UUID when absent)
//   - CORS headers and preflight handling
//   - Request logging in W3C Extended Log Format
//   - Prometheus request metrics with bounded path labels
//   - Response compression (gzip)
//
// [Chain] composes them; the first middleware passed is the outermost.
package middleware
