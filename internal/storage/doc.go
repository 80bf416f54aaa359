// Package storage lists media objects held by the two remote storage
// backends through their HTTP list proxies.
//
// Both backends implement [Lister]:
//
//   - [BlobLister] calls the blob-list proxy with a bearer token and a prefix.
//   - [DriveLister] calls the cloud-drive proxy with a recovery key header and
//     a type filter.
//
// Both proxies answer with the same envelope, {"blobs": [...]}, which is
// normalized into [Entry] values. Missing sizes become 0, missing content
// types become "", and missing upload times become the current time.
//
// # Faults
//
// Every failure is returned as a *[Fault] whose Kind is one of
// backend_http_error, endpoint_unavailable, invalid_response or
// upstream_timeout. Faults match their sentinel with errors.Is:
//
//	entries, err := lister.List(ctx, req)
//	if errors.Is(err, storage.ErrEndpointUnavailable) {
//	    // the proxy is not deployed or not reachable
//	}
//
// There is no retry or backoff; a call is bounded only by its context.
package storage
