package spotify

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/mmcdole/spotivi/internal/domain"
	"golang.org/x/oauth2"
	spotifyoauth "golang.org/x/oauth2/spotify"
	"golang.org/x/sync/errgroup"
)

// Scopes needed to read playlists and start playback
var Scopes = []string{
	"playlist-read-private",
	"playlist-read-collaborative",
	"user-read-playback-state",
	"user-modify-playback-state",
}

// AuthConfig holds the application credentials
type AuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	TokenFile    string
}

// Authenticator runs the authorization code flow and keeps the token file
// up to date
type Authenticator struct {
	config    *oauth2.Config
	tokenFile string
	logger    *slog.Logger

	mu sync.Mutex // serializes token file writes
}

// NewAuthenticator creates an Authenticator for the Spotify accounts service
func NewAuthenticator(cfg AuthConfig, logger *slog.Logger) *Authenticator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Authenticator{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       Scopes,
			Endpoint:     spotifyoauth.Endpoint,
		},
		tokenFile: cfg.TokenFile,
		logger:    logger,
	}
}

// LoadToken reads the cached token. ErrNotAuthorized means there is none.
func (a *Authenticator) LoadToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(a.tokenFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotAuthorized
		}
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}
	if tok.RefreshToken == "" && tok.AccessToken == "" {
		return nil, domain.ErrNotAuthorized
	}
	return &tok, nil
}

// SaveToken writes tok to the token file, readable by the owner only
func (a *Authenticator) SaveToken(tok *oauth2.Token) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(a.tokenFile), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(a.tokenFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// HTTPClient returns a client that attaches the cached token and persists
// refreshed tokens
func (a *Authenticator) HTTPClient(ctx context.Context) (*http.Client, error) {
	tok, err := a.LoadToken()
	if err != nil {
		return nil, err
	}
	src := &persistingTokenSource{
		base:   a.config.TokenSource(ctx, tok),
		last:   tok.AccessToken,
		save:   a.SaveToken,
		logger: a.logger,
	}
	return oauth2.NewClient(ctx, oauth2.ReuseTokenSource(tok, src)), nil
}

// persistingTokenSource saves every new access token it sees
type persistingTokenSource struct {
	base   oauth2.TokenSource
	save   func(*oauth2.Token) error
	logger *slog.Logger

	mu   sync.Mutex
	last string
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.AccessToken != s.last {
		s.last = tok.AccessToken
		if err := s.save(tok); err != nil {
			s.logger.Warn("failed to persist refreshed token", "error", err)
		} else {
			s.logger.Info("refreshed access token", "expiry", tok.Expiry)
		}
	}
	return tok, nil
}

type callbackResult struct {
	code string
	err  error
}

// Authorize runs the authorization code flow: it serves the redirect URI
// locally, hands the consent URL to open, waits for the callback and
// exchanges the code. The token is saved before it is returned.
func (a *Authenticator) Authorize(ctx context.Context, open func(authURL string) error) (*oauth2.Token, error) {
	redirect, err := url.Parse(a.config.RedirectURL)
	if err != nil || redirect.Host == "" {
		return nil, fmt.Errorf("invalid redirect uri %q", a.config.RedirectURL)
	}

	ln, err := net.Listen("tcp", redirect.Host)
	if err != nil {
		return nil, fmt.Errorf("failed to listen for callback: %w", err)
	}

	cfg := *a.config
	if redirect.Port() == "0" {
		redirect.Host = ln.Addr().String()
		cfg.RedirectURL = redirect.String()
	}

	state, err := randomState()
	if err != nil {
		ln.Close()
		return nil, err
	}

	results := make(chan callbackResult, 1)
	path := redirect.Path
	if path == "" {
		path = "/"
	}

	mux := http.NewServeMux()
	mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		var res callbackResult
		switch {
		case q.Get("state") != state:
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		case q.Get("error") != "":
			res.err = fmt.Errorf("%w: %s", domain.ErrAuthFailed, q.Get("error"))
			http.Error(w, "Authorization failed, you can close this tab.", http.StatusForbidden)
		default:
			res.code = q.Get("code")
			fmt.Fprintln(w, "spotivi is authorized, you can close this tab.")
		}
		select {
		case results <- res:
		default:
		}
	})
	srv := &http.Server{Handler: mux}

	var code string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		defer srv.Shutdown(context.Background())

		authURL := cfg.AuthCodeURL(state)
		a.logger.Info("waiting for authorization", "redirect", cfg.RedirectURL)
		if err := open(authURL); err != nil {
			return err
		}

		select {
		case <-gctx.Done():
			return gctx.Err()
		case res := <-results:
			if res.err != nil {
				return res.err
			}
			code = res.code
			return nil
		}
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAuthFailed, err)
	}
	if err := a.SaveToken(tok); err != nil {
		return nil, err
	}
	a.logger.Info("authorization complete")
	return tok, nil
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return hex.EncodeToString(b), nil
}
