// Package blobproxy serves the blob-list endpoint the catalog's blob tier
// reads from. It lists an S3-compatible bucket with minio-go and answers
//
//	GET /api/blob/list?prefix=<p>
//	Authorization: Bearer <token>
//
// with {"blobs":[{url,pathname,size,uploadedAt,contentType}]}.
package blobproxy
