package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/stride/pkg/types"
)

func resetFlags(t *testing.T) {
	t.Helper()
	saved := flags
	flags = rootFlags{}
	t.Cleanup(func() { flags = saved })
}

func TestLoadConfigWritesDefaultFile(t *testing.T) {
	resetFlags(t)
	configDir := t.TempDir()
	flags.configDir = configDir
	flags.dataDir = t.TempDir()

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, types.BackendSQLite, cfg.Backend)
	assert.Equal(t, ":8080", cfg.Listen)

	_, err = os.Stat(filepath.Join(configDir, configFileExt))
	assert.NoError(t, err, "expected default config.yaml to be created")
}

func TestLoadConfigReadsExistingFile(t *testing.T) {
	resetFlags(t)
	configDir := t.TempDir()
	flags.configDir = configDir
	flags.dataDir = t.TempDir()

	content := "backend: memory\nlisten: \":9999\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(configDir, configFileExt), []byte(content), 0o644))

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, types.BackendMemory, cfg.Backend)
	assert.Equal(t, ":9999", cfg.Listen)
}

func TestLoadConfigFlagsWin(t *testing.T) {
	resetFlags(t)
	configDir := t.TempDir()
	flags.configDir = configDir
	flags.dataDir = t.TempDir()
	flags.backend = types.BackendMemory
	flags.listen = ":7777"

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, types.BackendMemory, cfg.Backend)
	assert.Equal(t, ":7777", cfg.Listen)
}

func TestLoadConfigRejectsUnknownBackend(t *testing.T) {
	resetFlags(t)
	flags.configDir = t.TempDir()
	flags.dataDir = t.TempDir()
	flags.backend = "postgres"

	_, err := loadConfig()
	assert.ErrorIs(t, err, types.ErrBackendUnknown)
}

func TestOpenStore(t *testing.T) {
	store, err := openStore(types.Config{Backend: types.BackendMemory})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = openStore(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = openStore(types.Config{Backend: "nope"})
	assert.ErrorIs(t, err, types.ErrBackendUnknown)
}
