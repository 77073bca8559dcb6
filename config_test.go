package urbandash

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "Dashboard de Datos Urbanos", cfg.Name)
	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, "images", cfg.AssetRoot)
	assert.Equal(t, 10*time.Minute, cfg.ThumbCacheTTL)
	assert.Equal(t, 365, cfg.StatsRetentionDays)
	assert.False(t, cfg.StatsEnabled)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("URBANDASH_ADDR", ":8080")
	t.Setenv("URBANDASH_ASSET_ROOT", "/srv/charts")
	t.Setenv("URBANDASH_STATS_ENABLED", "true")
	t.Setenv("URBANDASH_SHUTDOWN_TIMEOUT", "3s")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "/srv/charts", cfg.AssetRoot)
	assert.True(t, cfg.StatsEnabled)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urbandash.yaml")
	body := "url: https://dash.example.org/\nasset_root: charts\nthumb_cache_ttl: 5m\nlog_format: console\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("URBANDASH_ASSET_ROOT", "from-env")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://dash.example.org", cfg.URL)
	assert.Equal(t, "from-env", cfg.AssetRoot)
	assert.Equal(t, 5*time.Minute, cfg.ThumbCacheTTL)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)

	t.Setenv("URBANDASH_LOG_FORMAT", "xml")
	_, err = LoadConfig("")
	assert.ErrorContains(t, err, "log_format")
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		logger, err := NewLogger("debug", format)
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(-1), "debug enabled for %s", format)
	}
	logger, err := NewLogger("nonsense", "json")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(-1), "unknown level falls back to info")
}
