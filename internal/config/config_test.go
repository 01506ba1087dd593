package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, "file", cfg.StorageDriver)
	assert.Equal(t, "portfolio", cfg.MongoDB)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 16*time.Millisecond, cfg.CarouselFrame)
	assert.Equal(t, uint(2), cfg.ImageProbeAttempts)
	assert.True(t, cfg.SessionSecretGenerated)
	assert.Len(t, cfg.SessionSecret, 64)
}

func TestLoadFilesAndEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("STORAGE_DRIVER=sqlite\nSERVER_ADDR=:9000\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("log_format = \"text\"\nserver_addr = \":9100\"\n"), 0o644))

	t.Setenv("SESSION_SECRET", "fixed")
	t.Setenv("MONGO_URI", "mongodb://db:27017/gallery?retryWrites=true")
	t.Setenv("CAROUSEL_FRAME_MS", "33")

	cfg, err := load(dir)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.StorageDriver)
	assert.Equal(t, ":9100", cfg.ServerAddr, "config.toml is merged after .env")
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "fixed", cfg.SessionSecret)
	assert.False(t, cfg.SessionSecretGenerated)
	assert.Equal(t, "gallery", cfg.MongoDB)
	assert.Equal(t, 33*time.Millisecond, cfg.CarouselFrame)
}

func TestLoadRejects(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	_, err := load(t.TempDir())
	assert.Error(t, err)

	t.Setenv("SESSION_SECRET", "x")
	t.Setenv("CAROUSEL_FRAME_MS", "0")
	_, err = load(t.TempDir())
	assert.Error(t, err)
}

func TestUploadRateLimit(t *testing.T) {
	cfg, err := load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.RateLimitUploads)

	t.Setenv("RATE_LIMIT_UPLOADS", "0")
	cfg, err = load(t.TempDir())
	require.NoError(t, err)
	assert.Zero(t, cfg.RateLimitUploads, "zero turns the limit off")

	t.Setenv("RATE_LIMIT_UPLOADS", "-1")
	_, err = load(t.TempDir())
	assert.Error(t, err)
}
