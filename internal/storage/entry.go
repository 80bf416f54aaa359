package storage

import (
	"context"
	"time"

	"media-catalog/internal/mediatypes"
)

// Backend names used in IDs, logs and metric labels.
const (
	BackendBlob  = "blob"
	BackendDrive = "drive"
)

// Entry is one object reported by a storage backend, normalized so that
// every field is populated. Entries live for a single aggregation call.
type Entry struct {
	// ID is the backend's own handle for the object. Only the cloud-drive
	// proxy reports one.
	ID          string
	URL         string
	Pathname    string
	Size        int64
	UploadedAt  time.Time
	ContentType string
}

// ListRequest describes one list call against a backend.
type ListRequest struct {
	// Credential is the bearer token for the blob backend or the recovery
	// key for the cloud-drive backend. It may be empty for the cloud drive.
	Credential string
	// Prefix restricts the blob listing to pathnames starting with it.
	Prefix string
	// Kind selects the server-side type filter of the cloud-drive proxy and
	// labels metrics for both backends.
	Kind mediatypes.Kind
	// BaseURL is the public storage URL used to absolutize entry URLs that
	// the proxy returned as relative paths.
	BaseURL string
}

// Lister lists the objects held by one storage backend.
//
// Implementations return a *Fault for every failure and are safe for
// concurrent use.
type Lister interface {
	List(ctx context.Context, req ListRequest) ([]Entry, error)
}
