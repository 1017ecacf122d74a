package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultAPIURL is the Spotify Web API base URL
const DefaultAPIURL = "https://api.spotify.com/v1"

// DefaultRedirectURI is where the authorization flow listens for its callback
const DefaultRedirectURI = "http://127.0.0.1:8888/callback"

// Config holds all application configuration
type Config struct {
	Spotify SpotifyConfig       `mapstructure:"spotify"`
	Browse  BrowseConfig        `mapstructure:"browse"`
	Player  PlayerConfig        `mapstructure:"player"`
	Cache   CacheConfig         `mapstructure:"cache"`
	Logging LoggingConfig       `mapstructure:"logging"`
	Keys    map[string][]string `mapstructure:"keys"`
}

// SpotifyConfig holds Web API credentials
type SpotifyConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURI  string `mapstructure:"redirect_uri"`
	APIURL       string `mapstructure:"api_url"`
	TokenFile    string `mapstructure:"token_file"` // cached OAuth token
}

// BrowseConfig controls pagination
type BrowseConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// PlayerConfig selects how tracks are played
type PlayerConfig struct {
	// Fallback opens the track URI in a local app when the API has no active device
	Fallback bool     `mapstructure:"fallback"`
	Command  string   `mapstructure:"command"` // empty for system default
	Args     []string `mapstructure:"args"`
}

// CacheConfig holds the page cache settings
type CacheConfig struct {
	Dir string        `mapstructure:"dir"`
	TTL time.Duration `mapstructure:"ttl"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Spotify: SpotifyConfig{
			RedirectURI: DefaultRedirectURI,
			APIURL:      DefaultAPIURL,
			TokenFile:   filepath.Join(defaultConfigPath(), "api_auth.json"),
		},
		Browse: BrowseConfig{
			PageSize: 8,
		},
		Player: PlayerConfig{
			Fallback: true,
			Args:     []string{},
		},
		Cache: CacheConfig{
			Dir: defaultCachePath(),
			TTL: 10 * time.Minute,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
		Keys: map[string][]string{},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "spotivi", "spotivi.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "spotivi", "spotivi.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" && runtime.GOOS != "windows" {
		return filepath.Join(dir, "spotivi")
	}
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "spotivi")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "spotivi")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "spotivi", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "spotivi", "cache")
	}
}

// ConfigDir returns the directory holding config.yaml
func ConfigDir() string {
	return defaultConfigPath()
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	return loadConfig(viper.GetViper(), defaultConfigPath())
}

func loadConfig(v *viper.Viper, dir string) (*Config, error) {
	cfg := DefaultConfig()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	// Environment variable overrides, e.g. SPOTIVI_SPOTIFY_CLIENT_ID
	v.SetEnvPrefix("SPOTIVI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{
		"spotify.client_id",
		"spotify.client_secret",
		"spotify.redirect_uri",
		"spotify.api_url",
		"spotify.token_file",
		"browse.page_size",
		"cache.dir",
		"cache.ttl",
		"logging.file",
		"logging.level",
	} {
		v.BindEnv(key)
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if cfg.Browse.PageSize < 1 {
		return nil, fmt.Errorf("browse.page_size must be positive, got %d", cfg.Browse.PageSize)
	}
	cfg.Spotify.TokenFile = expandHome(cfg.Spotify.TokenFile)
	cfg.Cache.Dir = expandHome(cfg.Cache.Dir)
	cfg.Logging.File = expandHome(cfg.Logging.File)

	return cfg, nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	return saveConfig(viper.GetViper(), defaultConfigPath(), cfg)
}

func saveConfig(v *viper.Viper, dir string, cfg *Config) error {
	// Ensure config directory exists
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("spotify.client_id", cfg.Spotify.ClientID)
	v.Set("spotify.client_secret", cfg.Spotify.ClientSecret)
	v.Set("spotify.redirect_uri", cfg.Spotify.RedirectURI)
	v.Set("spotify.api_url", cfg.Spotify.APIURL)
	v.Set("spotify.token_file", cfg.Spotify.TokenFile)

	v.Set("browse.page_size", cfg.Browse.PageSize)

	v.Set("player.fallback", cfg.Player.Fallback)
	v.Set("player.command", cfg.Player.Command)
	v.Set("player.args", cfg.Player.Args)

	v.Set("cache.dir", cfg.Cache.Dir)
	v.Set("cache.ttl", cfg.Cache.TTL.String())

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	if len(cfg.Keys) > 0 {
		v.Set("keys", cfg.Keys)
	}

	// Credentials live in this file
	configFile := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return os.Chmod(configFile, 0600)
}

// IsConfigured returns true if the API client credentials are set
func (c *Config) IsConfigured() bool {
	return c.Spotify.ClientID != "" && c.Spotify.ClientSecret != ""
}

// ClearCache removes all cached pages
func ClearCache(cfg *Config) error {
	dir := defaultCachePath()
	if cfg != nil && cfg.Cache.Dir != "" {
		dir = cfg.Cache.Dir
	}
	if err := os.RemoveAll(dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// expandHome expands a leading ~ in path
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
