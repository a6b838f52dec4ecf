// Test Type: Unit Test
// Description: Tests for the discovery package - installed package scanning and type resolution

package discovery_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/discovery"
	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/errors"
)

// writeManifest creates <dataPath>/Data/<type>s/<dir>/<type>.json with content.
func writeManifest(t *testing.T, dataPath, packageType, dir, content string) {
	t.Helper()

	pkgDir := filepath.Join(dataPath, "Data", packageType+"s", dir)
	require.NoError(t, os.MkdirAll(pkgDir, 0755))
	manifestPath := filepath.Join(pkgDir, packageType+".json")
	require.NoError(t, os.WriteFile(manifestPath, []byte(content), 0644))
}

func TestListPackages(t *testing.T) {
	dataPath := t.TempDir()
	writeManifest(t, dataPath, "module", "compendium-tools", `{"id":"compendium-tools","title":"Compendium Tools"}`)
	writeManifest(t, dataPath, "system", "dnd5e", `{"id":"dnd5e","title":"Dungeons & Dragons"}`)
	writeManifest(t, dataPath, "world", "my-campaign", `{"id":"my-campaign","title":"My Campaign"}`)

	packages := discovery.ListPackages(dataPath)
	require.Len(t, packages, 3)
	assert.Equal(t, discovery.Package{ID: "compendium-tools", Title: "Compendium Tools", Type: "module"}, packages[0])
	assert.Equal(t, discovery.Package{ID: "dnd5e", Title: "Dungeons & Dragons", Type: "system"}, packages[1])
	assert.Equal(t, discovery.Package{ID: "my-campaign", Title: "My Campaign", Type: "world"}, packages[2])
}

func TestListPackages_LegacyNameField(t *testing.T) {
	dataPath := t.TempDir()
	writeManifest(t, dataPath, "module", "oldmod", `{"name":"oldmod","title":"Legacy Module"}`)

	packages := discovery.ListPackages(dataPath)
	require.Len(t, packages, 1)
	assert.Equal(t, "oldmod", packages[0].ID)
}

func TestListPackages_BestEffort(t *testing.T) {
	dataPath := t.TempDir()
	writeManifest(t, dataPath, "module", "good", `{"id":"good"}`)
	writeManifest(t, dataPath, "module", "broken", `{broken json`)
	writeManifest(t, dataPath, "module", "anonymous", `{"title":"No Id"}`)

	// Directory without a manifest at all
	require.NoError(t, os.MkdirAll(filepath.Join(dataPath, "Data", "modules", "empty"), 0755))

	packages := discovery.ListPackages(dataPath)
	require.Len(t, packages, 1)
	assert.Equal(t, "good", packages[0].ID)
}

func TestListPackages_MissingDataDir(t *testing.T) {
	assert.Empty(t, discovery.ListPackages(filepath.Join(t.TempDir(), "nowhere")))
}

func TestResolveType(t *testing.T) {
	dataPath := t.TempDir()
	writeManifest(t, dataPath, "system", "dnd5e", `{"id":"dnd5e"}`)
	writeManifest(t, dataPath, "module", "shared-id", `{"id":"shared-id"}`)
	writeManifest(t, dataPath, "world", "shared-id", `{"id":"shared-id"}`)

	tests := []struct {
		name         string
		id           string
		expectedType string
		expectedCode errors.ErrorCode
	}{
		{name: "unique", id: "dnd5e", expectedType: "system"},
		{name: "not_installed", id: "missing", expectedCode: errors.ErrPackageNotFound},
		{name: "ambiguous", id: "shared-id", expectedCode: errors.ErrPackageAmbiguous},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packageType, err := discovery.ResolveType(dataPath, tt.id)
			if tt.expectedCode != "" {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, tt.expectedCode))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedType, packageType)
		})
	}
}
