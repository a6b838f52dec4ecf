// Test Type: Unit Test
// Description: Tests for the paths package - data directory layout and resolution

package paths_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/errors"
	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/paths"
)

func TestPackPath(t *testing.T) {
	got := paths.PackPath("/srv/foundry", "module", "compendium-tools", "spells")
	expected := filepath.Join("/srv/foundry", "Data", "modules", "compendium-tools", "packs", "spells")
	assert.Equal(t, expected, got)
}

func TestLockPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/p/spells", "LOCK"), paths.LockPath("/p/spells"))
}

func TestDataPath(t *testing.T) {
	t.Run("configured_value", func(t *testing.T) {
		t.Setenv(paths.EnvDataPath, "")
		got, err := paths.DataPath("/configured")
		require.NoError(t, err)
		assert.Equal(t, "/configured", got)
	})

	t.Run("env_override_wins", func(t *testing.T) {
		t.Setenv(paths.EnvDataPath, "/from-env")
		got, err := paths.DataPath("/configured")
		require.NoError(t, err)
		assert.Equal(t, "/from-env", got)
	})

	t.Run("unset_fails", func(t *testing.T) {
		t.Setenv(paths.EnvDataPath, "")
		_, err := paths.DataPath("")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNoDataPath))
	})
}
