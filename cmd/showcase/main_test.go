package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ProductShowcase/internal/config"
)

func TestRootOptions_LoadFromEnvConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "showcase.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":9999\"\nlog_level: warn\n"), 0o600))
	t.Setenv(config.EnvConfigFile, path)
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := (&rootOptions{}).load()
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "warn", cfg.LogLevel)

	cfg, err = (&rootOptions{LogLevel: "debug"}).load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestRootOptions_LoadMissingFile(t *testing.T) {
	_, err := (&rootOptions{ConfigPath: filepath.Join(t.TempDir(), "nope.yaml")}).load()
	assert.Error(t, err)
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := newRootCommand()

	for _, name := range []string{"serve", "tui"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}

func TestOpenBackends_Redis(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := config.Default()
	cfg.Redis.Addr = mr.Addr()

	be, err := openBackends(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, be.sinks, 1)
	assert.Equal(t, "redis", be.sinks[0].Name())
	require.Contains(t, be.ready, "redis")
	assert.NoError(t, be.ready["redis"].Ping(context.Background()))

	assert.NoError(t, be.Close())
	assert.NoError(t, be.Close())
}

func TestOpenBackends_NoneConfigured(t *testing.T) {
	be, err := openBackends(context.Background(), config.Default(), zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, be.sinks)
	assert.Empty(t, be.ready)
	assert.NoError(t, be.Close())
}

func TestRandomSecret(t *testing.T) {
	a, err := randomSecret()
	require.NoError(t, err)
	b, err := randomSecret()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
