package domain

import "time"

// PageStore caches fetched pages on disk, keyed by resource and the
// continuation they were requested with.
type PageStore interface {
	// GetPage decodes a cached page into dest. It reports false when nothing
	// is cached or the entry is older than maxAge (maxAge <= 0 disables the
	// age check).
	GetPage(id ResourceID, continuation string, maxAge time.Duration, dest any) bool

	// SavePage stores a page
	SavePage(id ResourceID, continuation string, page any) error

	// InvalidateResource drops every cached page of a resource
	InvalidateResource(id ResourceID) error

	// InvalidateAll wipes the cache
	InvalidateAll() error

	Close() error
}
