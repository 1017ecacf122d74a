package adapter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Browse.PageSize)
	assert.Equal(t, DefaultAPIURL, cfg.Spotify.APIURL)
	assert.Equal(t, DefaultRedirectURI, cfg.Spotify.RedirectURI)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.False(t, cfg.IsConfigured())
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	yaml := `spotify:
  client_id: abc
  client_secret: shh
browse:
  page_size: 20
cache:
  ttl: 1h
keys:
  info: ["?"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0600))

	cfg, err := loadConfig(viper.New(), dir)
	require.NoError(t, err)

	assert.True(t, cfg.IsConfigured())
	assert.Equal(t, 20, cfg.Browse.PageSize)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, []string{"?"}, cfg.Keys["info"])
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("SPOTIVI_SPOTIFY_CLIENT_ID", "from-env")
	t.Setenv("SPOTIVI_BROWSE_PAGE_SIZE", "12")

	cfg, err := loadConfig(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Spotify.ClientID)
	assert.Equal(t, 12, cfg.Browse.PageSize)
}

func TestLoadConfig_RejectsBadPageSize(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("browse:\n  page_size: 0\n"), 0600))

	_, err := loadConfig(viper.New(), dir)
	assert.Error(t, err)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Spotify.ClientID = "id"
	cfg.Spotify.ClientSecret = "secret"
	cfg.Browse.PageSize = 16

	require.NoError(t, saveConfig(viper.New(), dir, cfg))

	info, err := os.Stat(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := loadConfig(viper.New(), dir)
	require.NoError(t, err)
	assert.Equal(t, "id", loaded.Spotify.ClientID)
	assert.Equal(t, "secret", loaded.Spotify.ClientSecret)
	assert.Equal(t, 16, loaded.Browse.PageSize)
	assert.Equal(t, cfg.Cache.TTL, loaded.Cache.TTL)
}

func TestClearCache(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.Dir = filepath.Join(t.TempDir(), "cache")
	require.NoError(t, os.MkdirAll(cfg.Cache.Dir, 0755))

	require.NoError(t, ClearCache(cfg))

	_, err := os.Stat(cfg.Cache.Dir)
	assert.True(t, os.IsNotExist(err))
}
