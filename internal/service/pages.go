package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/spotivi/internal/domain"
)

// PageService fetches pages of browsable resources, serving repeat requests
// from the page store while they are younger than the TTL
type PageService struct {
	repo   domain.PlaylistRepository
	store  domain.PageStore // nil disables caching
	ttl    time.Duration
	logger *slog.Logger
}

// NewPageService creates a new page service
func NewPageService(repo domain.PlaylistRepository, store domain.PageStore, ttl time.Duration, logger *slog.Logger) *PageService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PageService{
		repo:   repo,
		store:  store,
		ttl:    ttl,
		logger: logger,
	}
}

// FetchPage returns one page of id as a domain.Page of the resource's item
// type. A nil token requests the first page. fresh skips the cache and, for a
// first page, drops every cached page of the resource.
func (s *PageService) FetchPage(ctx context.Context, id domain.ResourceID, token *domain.Token, fresh bool) (any, error) {
	if fresh && token == nil {
		// Failures are logged; the fetch itself still skips the cache
		_ = s.Invalidate(id)
	}

	switch id.Kind {
	case domain.ResourcePlaylists:
		return fetchCached(ctx, s, id, token, fresh, func(ctx context.Context) (domain.Page[domain.PlaylistSummary], error) {
			return s.repo.GetPlaylists(ctx, token)
		})
	case domain.ResourcePlaylistTracks:
		return fetchCached(ctx, s, id, token, fresh, func(ctx context.Context) (domain.Page[domain.PlaylistTrack], error) {
			return s.repo.GetPlaylistTracks(ctx, id.ID, token)
		})
	default:
		return nil, fmt.Errorf("unknown resource kind: %s", id.Kind)
	}
}

// Invalidate drops the cached pages of id
func (s *PageService) Invalidate(id domain.ResourceID) error {
	if s.store == nil {
		return nil
	}
	if err := s.store.InvalidateResource(id); err != nil {
		s.logger.Error("failed to invalidate page cache", "resource", id.String(), "error", err)
		return err
	}
	s.logger.Debug("invalidated page cache", "resource", id.String())
	return nil
}

// fetchCached is the read-through cache shared by every resource kind
func fetchCached[T any](
	ctx context.Context,
	s *PageService,
	id domain.ResourceID,
	token *domain.Token,
	fresh bool,
	fetch func(ctx context.Context) (domain.Page[T], error),
) (domain.Page[T], error) {
	continuation := ""
	if token != nil {
		continuation = token.URI
	}

	if s.store != nil && s.ttl > 0 && !fresh {
		var cached domain.Page[T]
		if s.store.GetPage(id, continuation, s.ttl, &cached) {
			s.logger.Debug("page cache hit", "resource", id.String(), "items", len(cached.Items))
			return cached, nil
		}
	}

	start := time.Now()
	page, err := fetch(ctx)
	if err != nil {
		s.logger.Error("page fetch failed", "resource", id.String(), "error", err)
		return domain.Page[T]{}, err
	}
	s.logger.Debug("page fetched",
		"resource", id.String(),
		"items", len(page.Items),
		"has_more", page.Next != "",
		"took", time.Since(start))

	if s.store != nil && s.ttl > 0 {
		if err := s.store.SavePage(id, continuation, page); err != nil {
			s.logger.Warn("failed to cache page", "resource", id.String(), "error", err)
		}
	}
	return page, nil
}
