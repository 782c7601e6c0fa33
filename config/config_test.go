package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngcore/netgraph/config"
)

func TestDefault_BuiltInValues(t *testing.T) {
	cfg := config.Default()
	require.NotNil(t, cfg)
	assert.Equal(t, 0, cfg.Parallelism)
	assert.Equal(t, 1, cfg.Iterations)
	assert.Equal(t, 1e-9, cfg.Epsilon)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "netgraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte("parallelism: 8\nlog_level: debug\n"), 0o644))

	cfg, err := config.NewLoader(config.WithConfigPath(path)).Load()
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Parallelism)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 1, cfg.Iterations) // untouched default
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	cfg, err := config.NewLoader(config.WithConfigPath("/no/such/path.yaml")).Load()
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Parallelism)
}

func TestLoad_EnvOverridesFileAndDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "netgraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte("parallelism: 8\n"), 0o644))

	t.Setenv("NG_TEST_PARALLELISM", "32")
	cfg, err := config.NewLoader(
		config.WithConfigPath(path),
		config.WithEnvPrefix("NG_TEST_"),
	).Load()
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Parallelism)
}
