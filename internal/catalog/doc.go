// Package catalog aggregates the storage backends into the media catalog
// served to clients.
//
// Each media kind is fetched from two tiers:
//
//  1. The blob backend, when its token is configured. A non-empty result is
//     returned as is and the cloud drive is not consulted.
//  2. The cloud-drive backend, when its proxy is configured and the blob tier
//     was unconfigured, empty or failing.
//
// Results from the two tiers are never merged. Backend faults are logged and
// turned into an empty listing; the Degraded field of [Listing] carries the
// reason for callers that want to tell "no files" from "backend down".
//
// Search fetches audio and video concurrently and filters them by a
// case-insensitive substring of the title, artist or filename. Nothing is
// cached: every call lists the backends again.
package catalog
