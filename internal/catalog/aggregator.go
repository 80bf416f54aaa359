package catalog

import (
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"

	"media-catalog/internal/logging"
	"media-catalog/internal/media"
	"media-catalog/internal/mediatypes"
	"media-catalog/internal/metrics"
	"media-catalog/internal/storage"
)

// Tier names the backend that produced a listing.
type Tier string

const (
	// TierBlob is the primary blob backend.
	TierBlob Tier = storage.BackendBlob
	// TierDrive is the secondary cloud-drive backend.
	TierDrive Tier = storage.BackendDrive
	// TierNone means no backend produced the listing.
	TierNone Tier = "none"
)

// DegradedUnconfigured is the Degraded reason when no tier is configured.
const DegradedUnconfigured = "no storage configured"

// Source holds the credentials of both tiers for one media kind.
type Source struct {
	// BlobToken enables tier 1 when set.
	BlobToken string
	// BlobBaseURL absolutizes relative URLs returned by the blob proxy.
	BlobBaseURL string
	// DriveEnabled enables tier 2; it is set when the cloud-drive proxy URL
	// is configured.
	DriveEnabled bool
	// DriveRecoveryKey is sent to the cloud-drive proxy; it may be empty.
	DriveRecoveryKey string
}

// Config selects which tiers are reachable for each kind.
type Config struct {
	Audio Source
	Video Source
}

func (c Config) source(kind mediatypes.Kind) Source {
	if kind == mediatypes.KindVideo {
		return c.Video
	}
	return c.Audio
}

// Listing is the result of fetching one kind.
//
// Files is never nil. When every configured tier failed, Files is empty and
// Degraded holds the last fault; callers that only need files can ignore it.
type Listing struct {
	Kind     mediatypes.Kind   `json:"type"`
	Files    []media.MediaFile `json:"items"`
	Source   Tier              `json:"source"`
	Degraded string            `json:"degraded,omitempty"`
}

// TierStatus reports which tiers are configured for a kind.
type TierStatus struct {
	Kind  mediatypes.Kind `json:"type"`
	Blob  bool            `json:"blob"`
	Drive bool            `json:"drive"`
}

// Aggregator builds the media catalog from the storage backends. It keeps
// no state between calls; every call lists the backends again.
type Aggregator struct {
	cfg   Config
	blob  storage.Lister
	drive storage.Lister
}

// New creates an Aggregator. Either lister may be nil, which disables that
// tier regardless of cfg.
func New(cfg Config, blob, drive storage.Lister) *Aggregator {
	return &Aggregator{cfg: cfg, blob: blob, drive: drive}
}

// Status returns the configured tiers for every kind, audio first.
func (a *Aggregator) Status() []TierStatus {
	statuses := make([]TierStatus, 0, len(mediatypes.Kinds))
	for _, kind := range mediatypes.Kinds {
		statuses = append(statuses, TierStatus{
			Kind:  kind,
			Blob:  a.blobEnabled(kind),
			Drive: a.driveEnabled(kind),
		})
	}
	return statuses
}

// Configured reports whether any tier is configured for any kind.
func (a *Aggregator) Configured() bool {
	for _, s := range a.Status() {
		if s.Blob || s.Drive {
			return true
		}
	}
	return false
}

func (a *Aggregator) blobEnabled(kind mediatypes.Kind) bool {
	return a.blob != nil && a.cfg.source(kind).BlobToken != ""
}

func (a *Aggregator) driveEnabled(kind mediatypes.Kind) bool {
	return a.drive != nil && a.cfg.source(kind).DriveEnabled
}

// GetMediaFiles returns the files of one kind. It never fails: a backend
// outage and an empty library both yield an empty slice.
func (a *Aggregator) GetMediaFiles(ctx context.Context, kind mediatypes.Kind) []media.MediaFile {
	return a.Fetch(ctx, kind).Files
}

// Fetch lists one kind, preferring the blob tier and falling back to the
// cloud-drive tier when the blob tier is unconfigured, empty or failing.
// The tiers are never merged and never queried concurrently.
func (a *Aggregator) Fetch(ctx context.Context, kind mediatypes.Kind) Listing {
	src := a.cfg.source(kind)
	listing := Listing{Kind: kind, Files: []media.MediaFile{}, Source: TierNone}

	var lastErr error
	fallbackReason := "unconfigured"

	if a.blobEnabled(kind) {
		entries, err := a.blob.List(ctx, storage.ListRequest{
			Credential: src.BlobToken,
			Kind:       kind,
			BaseURL:    src.BlobBaseURL,
		})
		if err != nil {
			logging.Warn("%s: blob storage failed, trying cloud drive: %v", kind, err)
			lastErr = err
			fallbackReason = "fault"
		} else {
			listing.Source = TierBlob
			listing.Files = BuildFiles(kind, TierBlob, entries)
			if len(listing.Files) > 0 {
				return a.finish(listing)
			}
			fallbackReason = "empty"
		}
	}

	if a.driveEnabled(kind) {
		if ctx.Err() != nil {
			listing.Degraded = fmt.Sprintf("request canceled: %v", ctx.Err())
			return a.finish(listing)
		}

		metrics.CatalogFallbacksTotal.WithLabelValues(kind.String(), fallbackReason).Inc()
		entries, err := a.drive.List(ctx, storage.ListRequest{
			Credential: src.DriveRecoveryKey,
			Kind:       kind,
		})
		if err != nil {
			logging.Error("%s: cloud drive failed: %v", kind, err)
			lastErr = err
		} else {
			listing.Source = TierDrive
			listing.Files = BuildFiles(kind, TierDrive, entries)
			return a.finish(listing)
		}
	}

	switch {
	case !a.blobEnabled(kind) && !a.driveEnabled(kind):
		logging.Warn("No %s storage configured. Set %s or MEGA_API_URL", kind, tokenEnvName(kind))
		listing.Degraded = DegradedUnconfigured
	case lastErr != nil:
		listing.Degraded = lastErr.Error()
		metrics.CatalogDegradedTotal.WithLabelValues(kind.String()).Inc()
	}

	return a.finish(listing)
}

func (a *Aggregator) finish(listing Listing) Listing {
	metrics.CatalogFetchesTotal.WithLabelValues(listing.Kind.String(), string(listing.Source)).Inc()
	metrics.CatalogFiles.WithLabelValues(listing.Kind.String()).Set(float64(len(listing.Files)))
	logging.Debug("%s: %d files from %s", listing.Kind, len(listing.Files), listing.Source)
	return listing
}

func tokenEnvName(kind mediatypes.Kind) string {
	if kind == mediatypes.KindVideo {
		return "VIDEO_BLOB_READ_WRITE_TOKEN"
	}
	return "MUSIC_BLOB_READ_WRITE_TOKEN"
}

// BuildFiles keeps the entries classified as kind and maps them to media
// files in listing order.
func BuildFiles(kind mediatypes.Kind, tier Tier, entries []storage.Entry) []media.MediaFile {
	files := make([]media.MediaFile, 0, len(entries))
	for _, entry := range entries {
		if mediatypes.Classify(entry.Pathname, entry.ContentType) != kind {
			continue
		}
		files = append(files, newMediaFile(kind, tier, len(files), entry))
	}
	return files
}

func newMediaFile(kind mediatypes.Kind, tier Tier, index int, entry storage.Entry) media.MediaFile {
	name := entry.Pathname
	if strings.Contains(name, "/") {
		name = path.Base(name)
	}
	meta := media.ParseFilename(name)
	if meta.Title == "" {
		meta.Title = name
	}

	file := media.MediaFile{
		ID:       FileID(kind, tier, index, entry.Pathname),
		URL:      entry.URL,
		Title:    meta.Title,
		Filename: entry.Pathname,
		Type:     kind,
		Size:     entry.Size,
		Artist:   meta.Artist,
		Album:    meta.Album,
	}

	switch kind {
	case mediatypes.KindAudio:
		if file.Artist == "" {
			file.Artist = media.UnknownArtist
		}
	case mediatypes.KindVideo:
		// There is no separate thumbnail asset; clients render a frame of the video.
		file.Thumbnail = entry.URL
	}

	return file
}

// FileID builds the per-response identifier of a file:
// "<kind>-<index>-<pathname>" for the blob tier and
// "<kind>-drive-<index>-<pathname>" for the cloud-drive tier.
func FileID(kind mediatypes.Kind, tier Tier, index int, pathname string) string {
	var b strings.Builder
	b.WriteString(string(kind))
	b.WriteByte('-')
	if tier == TierDrive {
		b.WriteString(string(TierDrive))
		b.WriteByte('-')
	}
	b.WriteString(strconv.Itoa(index))
	b.WriteByte('-')
	b.WriteString(pathname)
	return b.String()
}
