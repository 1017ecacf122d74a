package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/spotivi/internal/domain"
	"golang.org/x/oauth2"
)

const (
	defaultTimeout  = 30 * time.Second
	userAgent       = "spotivi/1.0"
	defaultPageSize = 8

	// Fields requested for playlist items; keeps pages small
	trackFields = "items(is_local,track(id,uri,name,type,duration_ms,artists(name),album(name))),next,offset,limit,total"
)

// Client implements domain.PlaylistRepository and domain.PlaybackRepository
// for the Spotify Web API
type Client struct {
	baseURL    string
	pageSize   int
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Spotify API client. httpClient must attach the bearer
// token (see Authenticator.HTTPClient).
func NewClient(baseURL string, httpClient *http.Client, pageSize int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if httpClient.Timeout == 0 {
		httpClient.Timeout = defaultTimeout
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		pageSize:   pageSize,
		httpClient: httpClient,
		logger:     logger,
	}
}

// doRequest performs a request against an absolute URL
func (c *Client) doRequest(ctx context.Context, method, reqURL string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("spotify request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// The oauth2 transport reports refresh failures here too
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return nil, domain.ErrAuthFailed
		}
		c.logger.Error("spotify request failed", "error", err)
		return nil, domain.ErrServerOffline
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return respBody, nil
	}

	return nil, c.statusError(resp, respBody)
}

// statusError maps a non-2xx response to a domain error
func (c *Client) statusError(resp *http.Response, body []byte) error {
	var apiErr errorDTO
	_ = json.Unmarshal(body, &apiErr)
	msg := apiErr.Error.Message

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return domain.ErrAuthFailed
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", domain.ErrNotAuthorized, msg)
	case http.StatusNotFound:
		if apiErr.Error.Reason == "NO_ACTIVE_DEVICE" {
			return domain.ErrNoActiveDevice
		}
		return domain.ErrNotFound
	case http.StatusTooManyRequests:
		retry, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		c.logger.Warn("spotify rate limit", "retry_after_s", retry)
		return domain.ErrRateLimited
	}

	c.logger.Error("spotify request error", "status", resp.StatusCode, "body", string(body))
	if msg != "" {
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, msg)
	}
	return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
}

// pageURL returns the first-page URL for path, or the continuation in next
func (c *Client) pageURL(path string, query url.Values, next *domain.Token) (string, error) {
	if next != nil {
		// Continuations are absolute URLs handed out by the API itself
		if !strings.HasPrefix(next.URI, c.baseURL+"/") {
			return "", fmt.Errorf("%w: continuation outside api: %q", domain.ErrMalformedPage, next.URI)
		}
		return next.URI, nil
	}
	query.Set("limit", strconv.Itoa(c.pageSize))
	query.Set("offset", "0")
	return c.baseURL + path + "?" + query.Encode(), nil
}

// fetchPage retrieves one paging envelope
func fetchPage[D any](ctx context.Context, c *Client, reqURL string) (pagingDTO[D], error) {
	var page pagingDTO[D]
	body, err := c.doRequest(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return page, err
	}
	if err := json.Unmarshal(body, &page); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return page, fmt.Errorf("failed to parse response: %w", err)
	}
	return page, nil
}

// GetPlaylists returns one page of the current user's playlists
func (c *Client) GetPlaylists(ctx context.Context, next *domain.Token) (domain.Page[domain.PlaylistSummary], error) {
	reqURL, err := c.pageURL("/me/playlists", url.Values{}, next)
	if err != nil {
		return domain.Page[domain.PlaylistSummary]{}, err
	}

	page, err := fetchPage[playlistDTO](ctx, c, reqURL)
	if err != nil {
		return domain.Page[domain.PlaylistSummary]{}, err
	}

	return mapPage(page, MapPlaylist), nil
}

// GetPlaylistTracks returns one page of a playlist's tracks
func (c *Client) GetPlaylistTracks(ctx context.Context, playlistID string, next *domain.Token) (domain.Page[domain.PlaylistTrack], error) {
	if playlistID == "" {
		return domain.Page[domain.PlaylistTrack]{}, fmt.Errorf("%w: empty playlist id", domain.ErrNotFound)
	}

	query := url.Values{}
	query.Set("fields", trackFields)
	path := fmt.Sprintf("/playlists/%s/tracks", url.PathEscape(playlistID))

	reqURL, err := c.pageURL(path, query, next)
	if err != nil {
		return domain.Page[domain.PlaylistTrack]{}, err
	}

	page, err := fetchPage[playlistItemDTO](ctx, c, reqURL)
	if err != nil {
		return domain.Page[domain.PlaylistTrack]{}, err
	}

	return mapPage(page, MapPlaylistItem), nil
}

// Play starts playback of uri on the user's active device
func (c *Client) Play(ctx context.Context, uri string) error {
	if uri == "" {
		return fmt.Errorf("%w: empty track uri", domain.ErrNotFound)
	}
	_, err := c.doRequest(ctx, http.MethodPut, c.baseURL+"/me/player/play", playRequest{URIs: []string{uri}})
	return err
}
