package catalog

import (
	"context"
	"strings"

	"media-catalog/internal/media"
	"media-catalog/internal/mediatypes"
	"media-catalog/internal/metrics"

	"golang.org/x/sync/errgroup"
)

// Library is the audio and video listings of one catalog call.
type Library struct {
	Audio Listing `json:"audio"`
	Video Listing `json:"video"`
}

// All returns audio files followed by video files.
func (l Library) All() []media.MediaFile {
	all := make([]media.MediaFile, 0, len(l.Audio.Files)+len(l.Video.Files))
	all = append(all, l.Audio.Files...)
	return append(all, l.Video.Files...)
}

// GetAllMediaFiles fetches audio and video concurrently and returns once
// both are done. Each kind still walks its own tiers sequentially.
func (a *Aggregator) GetAllMediaFiles(ctx context.Context) Library {
	var lib Library
	var g errgroup.Group

	g.Go(func() error {
		lib.Audio = a.Fetch(ctx, mediatypes.KindAudio)
		return nil
	})
	g.Go(func() error {
		lib.Video = a.Fetch(ctx, mediatypes.KindVideo)
		return nil
	})

	// Fetch never fails.
	_ = g.Wait()
	return lib
}

// Search returns the files whose title, artist or filename contains query,
// ignoring case, with audio before video. An empty query matches nothing
// and does not touch the backends.
func (a *Aggregator) Search(ctx context.Context, query string) []media.MediaFile {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		metrics.SearchQueriesTotal.WithLabelValues("empty_query").Inc()
		return []media.MediaFile{}
	}

	results := Filter(a.GetAllMediaFiles(ctx).All(), q)
	if len(results) > 0 {
		metrics.SearchQueriesTotal.WithLabelValues("hit").Inc()
	} else {
		metrics.SearchQueriesTotal.WithLabelValues("miss").Inc()
	}
	return results
}

// Filter returns the files matching query, preserving order.
func Filter(files []media.MediaFile, query string) []media.MediaFile {
	q := strings.ToLower(query)
	results := make([]media.MediaFile, 0)
	for _, f := range files {
		if Matches(f, q) {
			results = append(results, f)
		}
	}
	return results
}

// Matches reports whether f matches the lowercased query. Files without an
// artist are not matched on that field.
func Matches(f media.MediaFile, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(f.Title), lowerQuery) {
		return true
	}
	if f.Artist != "" && strings.Contains(strings.ToLower(f.Artist), lowerQuery) {
		return true
	}
	return strings.Contains(strings.ToLower(f.Filename), lowerQuery)
}
