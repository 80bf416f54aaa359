package handlers

import (
	"context"
	"time"

	"media-catalog/internal/catalog"
	"media-catalog/internal/media"
	"media-catalog/internal/mediatypes"
)

// Catalog is the part of the aggregator the handlers use.
type Catalog interface {
	Fetch(ctx context.Context, kind mediatypes.Kind) catalog.Listing
	GetAllMediaFiles(ctx context.Context) catalog.Library
	Search(ctx context.Context, query string) []media.MediaFile
	Status() []catalog.TierStatus
	Configured() bool
}

type Handlers struct {
	catalog   Catalog
	startTime time.Time
}

func New(c Catalog) *Handlers {
	return &Handlers{
		catalog:   c,
		startTime: time.Now(),
	}
}
