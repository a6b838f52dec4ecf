// Test Type: Unit Test
// Description: Tests for the config package - settings persistence and session state

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/config"
	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/errors"
)

func TestOpenAt_MissingFileIsEmptyStore(t *testing.T) {
	cfg, err := config.OpenAt(filepath.Join(t.TempDir(), "fvtt.toml"))
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Get(config.KeyDataPath))
}

func TestSetGet_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fvtt.toml")

	cfg, err := config.OpenAt(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Set(config.KeyDataPath, "/srv/foundry"))

	reopened, err := config.OpenAt(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/foundry", reopened.Get(config.KeyDataPath))
}

func TestUnset_RemovesValueFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fvtt.toml")

	cfg, err := config.OpenAt(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Set(config.KeyDataPath, "/srv/foundry"))
	require.NoError(t, cfg.Unset(config.KeyDataPath))

	reopened, err := config.OpenAt(path)
	require.NoError(t, err)
	assert.Equal(t, "", reopened.Get(config.KeyDataPath))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dataPath")
}

func TestOpenAt_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fvtt.toml")
	require.NoError(t, os.WriteFile(path, []byte("not [valid toml"), 0644))

	_, err := config.OpenAt(path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestCurrentPackage_NotSet(t *testing.T) {
	cfg, err := config.OpenAt(filepath.Join(t.TempDir(), "fvtt.toml"))
	require.NoError(t, err)

	_, _, err = cfg.CurrentPackage()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPackageNotSet))
}

func TestCurrentPackage_SetAndClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fvtt.toml")

	cfg, err := config.OpenAt(path)
	require.NoError(t, err)
	require.NoError(t, cfg.SetCurrentPackage("dnd5e", "system"))

	reopened, err := config.OpenAt(path)
	require.NoError(t, err)
	id, packageType, err := reopened.CurrentPackage()
	require.NoError(t, err)
	assert.Equal(t, "dnd5e", id)
	assert.Equal(t, "system", packageType)

	require.NoError(t, reopened.ClearCurrentPackage())
	_, _, err = reopened.CurrentPackage()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPackageNotSet))
}
