// Package main provides the blob-list proxy.
//
// The proxy lists an S3-compatible bucket (AWS S3, MinIO, R2 and the like)
// and serves the listing in the format the media catalog's blob tier
// expects:
//
//	GET /api/blob/list?prefix=<p>
//	Authorization: Bearer <BLOB_PROXY_TOKEN>
//
// Clients without a token get 401, clients with the wrong token 403.
// Object URLs are built from S3_PUBLIC_URL when set, otherwise from the
// S3 endpoint and the bucket name.
//
// See [media-catalog/internal/startup] for the environment variables.
package main
