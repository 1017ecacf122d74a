package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/spotivi/internal/adapter"
	"github.com/mmcdole/spotivi/internal/adapter/source/spotify"
	"github.com/mmcdole/spotivi/internal/domain"
	"github.com/mmcdole/spotivi/internal/pager"
	"github.com/mmcdole/spotivi/internal/service"
	"github.com/mmcdole/spotivi/internal/store"
	"github.com/mmcdole/spotivi/internal/tui"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

type options struct {
	showVersion bool
	clearCache  bool
	login       bool
}

func main() {
	var opts options
	flag.BoolVar(&opts.showVersion, "v", false, "print version")
	flag.BoolVar(&opts.showVersion, "version", false, "print version")
	flag.BoolVar(&opts.clearCache, "clear-cache", false, "remove cached pages and exit")
	flag.BoolVar(&opts.login, "login", false, "authorize with Spotify again")
	flag.Parse()

	if opts.showVersion {
		fmt.Printf("spotivi %s\n", Version)
		return
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if opts.clearCache {
		if err := adapter.ClearCache(cfg); err != nil {
			return err
		}
		fmt.Println("Cache cleared.")
		return nil
	}

	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting spotivi", "version", Version)

	if !cfg.IsConfigured() {
		if err := runSetupFlow(cfg); err != nil {
			return err
		}
		opts.login = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	launcher := adapter.NewLauncher(cfg.Player.Command, cfg.Player.Args, logger)
	auth := spotify.NewAuthenticator(spotify.AuthConfig{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
		RedirectURI:  cfg.Spotify.RedirectURI,
		TokenFile:    cfg.Spotify.TokenFile,
	}, logger)

	if !opts.login {
		if _, err := auth.LoadToken(); errors.Is(err, domain.ErrNotAuthorized) {
			opts.login = true
		} else if err != nil {
			return err
		}
	}
	if opts.login {
		if err := login(ctx, auth, launcher); err != nil {
			return err
		}
	}

	httpClient, err := auth.HTTPClient(context.Background())
	if err != nil {
		return fmt.Errorf("failed to create http client: %w", err)
	}
	client := spotify.NewClient(cfg.Spotify.APIURL, httpClient, cfg.Browse.PageSize, logger)

	// Tokens are bound to an app and account, so is the cache
	pageStore, err := store.NewPageStore(cfg.Cache.Dir, cfg.Spotify.APIURL+"|"+cfg.Spotify.ClientID)
	if err != nil {
		logger.Warn("page cache unavailable, using memory only", "error", err)
		pageStore, _ = store.NewPageStore("", "")
	}
	defer pageStore.Close()

	pagesSvc := service.NewPageService(client, pageStore, cfg.Cache.TTL, logger)
	var playbackSvc *service.PlaybackService
	if cfg.Player.Fallback {
		playbackSvc = service.NewPlaybackService(client, launcher, logger)
	} else {
		playbackSvc = service.NewPlaybackService(client, nil, logger)
	}

	keys := tui.DefaultKeyMap()
	if err := keys.Apply(cfg.Keys); err != nil {
		return fmt.Errorf("invalid keys config: %w", err)
	}

	model := tui.NewModel(pagesSvc, playbackSvc, pager.NewCoordinator(cfg.Browse.PageSize), &keys, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// login runs the browser authorization flow
func login(ctx context.Context, auth *spotify.Authenticator, launcher *adapter.Launcher) error {
	fmt.Println("Opening your browser to authorize spotivi...")
	_, err := auth.Authorize(ctx, func(authURL string) error {
		if err := launcher.OpenURL(authURL); err != nil {
			fmt.Println("Could not open a browser, visit this URL instead:")
		} else {
			fmt.Println("If nothing opened, visit this URL:")
		}
		fmt.Println()
		fmt.Println(authURL)
		fmt.Println()
		return nil
	})
	if err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}
	fmt.Println("✓ Authorized!")
	return nil
}

// runSetupFlow asks for the API credentials when not configured
func runSetupFlow(cfg *adapter.Config) error {
	fmt.Println()
	fmt.Println("Welcome to spotivi!")
	fmt.Println()
	fmt.Println("Create an app at https://developer.spotify.com/dashboard and add")
	fmt.Printf("%s as a redirect URI.\n", cfg.Spotify.RedirectURI)
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	for cfg.Spotify.ClientID == "" {
		fmt.Print("Client ID: ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		cfg.Spotify.ClientID = strings.TrimSpace(input)
		if cfg.Spotify.ClientID == "" {
			fmt.Println("Client ID cannot be empty. Please try again.")
		}
	}

	for cfg.Spotify.ClientSecret == "" {
		fmt.Print("Client secret: ")
		secret, err := readSecret(reader)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		cfg.Spotify.ClientSecret = secret
		if secret == "" {
			fmt.Println("Client secret cannot be empty. Please try again.")
		}
	}

	if err := adapter.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	return nil
}

// readSecret reads a line without echo when stdin is a terminal
func readSecret(reader *bufio.Reader) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		input, err := reader.ReadString('\n')
		return strings.TrimSpace(input), err
	}
	b, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
