package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mmcdole/spotivi/internal/domain"
)

// launcher opens a URI in a local client (consumer-defined interface)
type launcher interface {
	Launch(uri string) error
}

// PlaybackService orchestrates playback operations
type PlaybackService struct {
	repo     domain.PlaybackRepository
	launcher launcher // nil disables the local fallback
	logger   *slog.Logger
}

// NewPlaybackService creates a new playback service
func NewPlaybackService(repo domain.PlaybackRepository, launcher launcher, logger *slog.Logger) *PlaybackService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlaybackService{
		repo:     repo,
		launcher: launcher,
		logger:   logger,
	}
}

// Play starts playback of uri on the active device. Without an active
// device the URI is handed to the local client instead.
func (s *PlaybackService) Play(ctx context.Context, uri string) error {
	s.logger.Info("starting playback", "uri", uri)

	err := s.repo.Play(ctx, uri)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNoActiveDevice) || s.launcher == nil {
		s.logger.Error("playback failed", "uri", uri, "error", err)
		return err
	}

	s.logger.Info("no active device, opening local client", "uri", uri)
	if lerr := s.launcher.Launch(uri); lerr != nil {
		s.logger.Error("failed to launch local client", "uri", uri, "error", lerr)
		return errors.Join(err, lerr)
	}
	return nil
}
