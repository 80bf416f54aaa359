package storage

import (
	"context"
	"net/http"
)

// RecoveryKeyHeader carries the optional cloud-drive recovery key. The
// account email and password live in the proxy's own environment.
const RecoveryKeyHeader = "X-Mega-Recovery-Key"

// DriveLister lists files through the cloud-drive proxy
// (GET <endpoint>?type=audio|video). The proxy filters by extension and
// resolves download links itself; its login is bounded to 30 seconds upstream.
type DriveLister struct {
	client proxyClient
}

// NewDriveLister creates a lister for the cloud-drive backend.
func NewDriveLister(cfg ClientConfig) *DriveLister {
	return &DriveLister{client: newProxyClient(BackendDrive, cfg)}
}

// List returns the files of req.Kind. req.Prefix is not supported by the
// proxy and is ignored.
func (d *DriveLister) List(ctx context.Context, req ListRequest) ([]Entry, error) {
	target, err := d.client.requestURL("type", string(req.Kind))
	if err != nil {
		return nil, &Fault{Kind: FaultEndpointUnavailable, Backend: BackendDrive, Detail: "invalid drive list URL", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &Fault{Kind: FaultEndpointUnavailable, Backend: BackendDrive, Err: err}
	}
	httpReq.Header.Set(RecoveryKeyHeader, req.Credential)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	return d.client.list(ctx, httpReq, req)
}
