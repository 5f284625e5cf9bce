package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, uint8(5), c.BlockSizeID, "default is 32 KiB blocks")
	assert.False(t, c.Force)
	assert.False(t, c.Verbose)
	assert.NoError(t, c.Validate())
}

func TestValidate(t *testing.T) {
	c := DefaultConfig()
	c.BlockSizeID = 11
	assert.NoError(t, c.Validate())
	c.BlockSizeID = 12
	assert.Error(t, c.Validate())
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	c := &Config{BlockSizeID: 7, Force: true, Verbose: true}
	require.NoError(t, SaveConfig(c, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, c, loaded)
}

func TestLoadConfigDefaultsForOmittedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("force: true\n"), 0600))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, loaded.Force)
	assert.Equal(t, uint8(5), loaded.BlockSizeID, "omitted fields keep defaults")
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("block_size_id: 12\n"), 0600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestConfigExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.False(t, ConfigExists(path))
	require.NoError(t, SaveConfig(DefaultConfig(), path))
	assert.True(t, ConfigExists(path))
}
