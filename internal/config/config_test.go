package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("sources:\n  remotive:\n    enabled: true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 38472, cfg.App.Port)
	assert.Equal(t, 120, cfg.Ingest.IntervalMinutes)
	assert.Equal(t, 120, cfg.Ingest.StalenessMinutes, "staleness defaults to the interval")
	assert.Equal(t, 2, cfg.Ingest.SourceDelaySeconds)
	assert.True(t, cfg.Sources.Remotive.Enabled)
}

func TestEnsureUserConfigFallback(t *testing.T) {
	dir := t.TempDir()

	path, err := EnsureUserConfig(dir, filepath.Join(dir, "does-not-exist.yml"))
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, Validate(cfg))
	assert.True(t, cfg.Sources.Adzuna.Enabled)
	assert.Equal(t, "in", cfg.Sources.Adzuna.Country)
}

func TestValidate(t *testing.T) {
	var cfg Config
	applyDefaults(&cfg)
	require.NoError(t, Validate(cfg))

	cfg.Ingest.IntervalMinutes = 1
	assert.Error(t, Validate(cfg))

	applyDefaults(&cfg)
	cfg.Ingest.IntervalMinutes = 120
	cfg.Sources.Jooble.Keywords = []string{"ok", "  "}
	assert.Error(t, Validate(cfg))
}
