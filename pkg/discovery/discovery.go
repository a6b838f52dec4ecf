// Package discovery lists installed Foundry packages by scanning manifest
// files under the data directory. Discovery is best-effort: unreadable or
// malformed manifests are skipped, visible only in verbose logs.
package discovery

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/errors"
	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/logging"
	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/paths"
)

// Package types as they appear in the data directory layout.
const (
	TypeModule = "module"
	TypeSystem = "system"
	TypeWorld  = "world"
)

// PackageTypes lists all package types in scan order.
var PackageTypes = []string{TypeModule, TypeSystem, TypeWorld}

// Package is one installed package found by a scan.
type Package struct {
	ID    string
	Title string
	Type  string
}

// manifest is the slice of a package manifest the scan needs. Older
// packages carry "name" instead of "id".
type manifest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title"`
}

// ListPackages scans the data directory for installed packages of every
// type. Missing type directories and broken manifests are skipped.
func ListPackages(dataPath string) []Package {
	var packages []Package
	for _, packageType := range PackageTypes {
		packages = append(packages, listType(dataPath, packageType)...)
	}
	sort.Slice(packages, func(i, j int) bool {
		if packages[i].Type != packages[j].Type {
			return packages[i].Type < packages[j].Type
		}
		return packages[i].ID < packages[j].ID
	})
	return packages
}

func listType(dataPath, packageType string) []Package {
	logger := logging.GetLogger("discovery")
	root := paths.PackageTypeRoot(dataPath, packageType)

	entries, err := os.ReadDir(root)
	if err != nil {
		logger.Debug().Err(err).Str("root", root).Msg("Skipping unreadable package root")
		return nil
	}

	var packages []Package
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		manifestPath := filepath.Join(root, entry.Name(), packageType+".json")
		data, err := os.ReadFile(manifestPath)
		if err != nil {
			logger.Debug().Err(err).Str("path", manifestPath).Msg("Skipping package without readable manifest")
			continue
		}

		var m manifest
		if err := json.Unmarshal(data, &m); err != nil {
			logger.Debug().Err(err).Str("path", manifestPath).Msg("Skipping malformed manifest")
			continue
		}

		id := m.ID
		if id == "" {
			id = m.Name
		}
		if id == "" {
			logger.Debug().Str("path", manifestPath).Msg("Skipping manifest without id")
			continue
		}

		packages = append(packages, Package{ID: id, Title: m.Title, Type: packageType})
		logger.Trace().Str("id", id).Str("type", packageType).Msg("Found package")
	}
	return packages
}

// ResolveType finds the unique package type for id by scanning all types.
// Fails with ErrPackageNotFound when the id is not installed and with
// ErrPackageAmbiguous when it exists under more than one type.
func ResolveType(dataPath, id string) (string, error) {
	var found []string
	for _, pkg := range ListPackages(dataPath) {
		if pkg.ID == id {
			found = append(found, pkg.Type)
		}
	}

	switch len(found) {
	case 0:
		return "", errors.Newf(errors.ErrPackageNotFound, "package %q is not installed", id).
			WithDetail("dataPath", dataPath)
	case 1:
		return found[0], nil
	default:
		return "", errors.Newf(errors.ErrPackageAmbiguous,
			"package %q exists as more than one type; pass --type", id).
			WithDetail("types", found)
	}
}
