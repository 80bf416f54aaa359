package storage

import (
	"context"
	"net/http"
)

// BlobLister lists objects through the blob-list proxy
// (GET <endpoint>?prefix=..., Authorization: Bearer <token>).
type BlobLister struct {
	client proxyClient
}

// NewBlobLister creates a lister for the blob backend.
func NewBlobLister(cfg ClientConfig) *BlobLister {
	return &BlobLister{client: newProxyClient(BackendBlob, cfg)}
}

// List returns every object whose pathname starts with req.Prefix.
func (b *BlobLister) List(ctx context.Context, req ListRequest) ([]Entry, error) {
	target, err := b.client.requestURL("prefix", req.Prefix)
	if err != nil {
		return nil, &Fault{Kind: FaultEndpointUnavailable, Backend: BackendBlob, Detail: "invalid blob list URL", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &Fault{Kind: FaultEndpointUnavailable, Backend: BackendBlob, Err: err}
	}
	httpReq.Header.Set("Authorization", "Bearer "+req.Credential)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	return b.client.list(ctx, httpReq, req)
}
