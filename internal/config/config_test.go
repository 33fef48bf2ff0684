package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ShopAPI/internal/config"
)

// chdirTemp runs the test from an empty directory with the port variables
// blanked, so neither a stray ./config.yaml nor the caller's env leaks in.
func chdirTemp(t *testing.T) string {
	t.Helper()
	t.Setenv("PORT", "")
	t.Setenv("SHOP_SERVER_PORT", "")

	dir := t.TempDir()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := config.Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.False(t, cfg.Server.TrustProxy)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Store.Seed)
	assert.False(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.CORS.Enabled)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 0, cfg.RateLimit.Requests)
	assert.Equal(t, 60, cfg.RateLimit.WindowSeconds)
}

func TestLoad_PortEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PORT", "8081")

	cfg, err := config.Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Server.Port)

	t.Setenv("SHOP_SERVER_PORT", "9090")
	cfg, err = config.Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoad_PrefixedEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("SHOP_LOG_LEVEL", "debug")
	t.Setenv("SHOP_STORE_SEED", "false")
	t.Setenv("SHOP_METRICS_ENABLED", "true")
	t.Setenv("SHOP_METRICS_TOKEN", "scrape-me")
	t.Setenv("SHOP_RATELIMIT_REQUESTS", "100")
	t.Setenv("SHOP_SERVER_TRUST_PROXY", "true")

	cfg, err := config.Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Store.Seed)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "scrape-me", cfg.Metrics.Token)
	assert.Equal(t, 100, cfg.RateLimit.Requests)
	assert.True(t, cfg.Server.TrustProxy)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "shop.yaml")
	content := `
server:
  port: 4000
log:
  level: warn
cors:
  enabled: true
  allowed_origins:
    - https://shop.example.com
ratelimit:
  requests: 10
  window_seconds: 30
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.CORS.Enabled)
	assert.Equal(t, []string{"https://shop.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 10, cfg.RateLimit.Requests)
	assert.Equal(t, 30, cfg.RateLimit.WindowSeconds)
}

func TestLoad_DefaultConfigFileInWorkingDir(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server:\n  port: 5050\n"), 0o644))

	cfg, err := config.Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 5050, cfg.Server.Port)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := chdirTemp(t)

	_, err := config.Load(filepath.Join(dir, "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PORT", "8081")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", 3000, "")
	flags.String("log-level", "info", "")
	require.NoError(t, flags.Parse([]string{"--port", "7070", "--log-level", "error"}))

	cfg, err := config.Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoad_UnchangedFlagsDoNotOverride(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PORT", "8081")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", 3000, "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := config.Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Server.Port)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "port out of range", env: map[string]string{"PORT": "70000"}},
		{name: "unknown log level", env: map[string]string{"SHOP_LOG_LEVEL": "verbose"}},
		{name: "negative rate limit", env: map[string]string{"SHOP_RATELIMIT_REQUESTS": "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdirTemp(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.Load("", nil)
			assert.ErrorContains(t, err, "validate config")
		})
	}
}
