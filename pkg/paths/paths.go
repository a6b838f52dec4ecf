// Package paths centralizes filesystem layout knowledge: the Foundry data
// directory structure, pack locations, the lock marker, and the tool's own
// XDG config and state paths.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/errors"
)

// Environment variable names
const (
	// EnvDataPath overrides the configured Foundry user data path
	EnvDataPath = "FVTT_DATA_PATH"
)

// Fixed names inside a Foundry data directory. These mirror the layout the
// platform itself writes and are not user-configurable.
const (
	// DataDirName is the directory under the data path holding packages
	DataDirName = "Data"

	// PacksDirName is the directory inside a package holding its compendia
	PacksDirName = "packs"

	// LockFileName is the lock marker inside an open pack database
	LockFileName = "LOCK"

	// ConfigFileName is the tool's own settings file under XDG config
	ConfigFileName = "fvtt/fvtt.toml"
)

// ConfigFilePath returns the settings file location under the XDG config
// directory, creating parent directories as needed.
func ConfigFilePath() (string, error) {
	path, err := xdg.ConfigFile(ConfigFileName)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrConfigLoad, "cannot resolve config file path")
	}
	return path, nil
}

// DataPath resolves the Foundry user data path: the environment override
// wins over the configured value. An empty result is an error, since every
// pack operation needs it.
func DataPath(configured string) (string, error) {
	if env := os.Getenv(EnvDataPath); env != "" {
		return env, nil
	}
	if configured != "" {
		return configured, nil
	}
	return "", errors.New(errors.ErrNoDataPath,
		"no data path configured; run 'fvtt configure set dataPath <path>' or set "+EnvDataPath)
}

// PackageTypeRoot returns the directory holding all installed packages of
// one type, e.g. <dataPath>/Data/modules.
func PackageTypeRoot(dataPath, packageType string) string {
	return filepath.Join(dataPath, DataDirName, packageType+"s")
}

// PackagePath returns the root directory of one installed package.
func PackagePath(dataPath, packageType, packageID string) string {
	return filepath.Join(PackageTypeRoot(dataPath, packageType), packageID)
}

// PackPath returns the database directory of one compendium pack inside a
// package.
func PackPath(dataPath, packageType, packageID, compendiumName string) string {
	return filepath.Join(PackagePath(dataPath, packageType, packageID), PacksDirName, compendiumName)
}

// LockPath returns the lock marker path for a pack database.
func LockPath(packPath string) string {
	return filepath.Join(packPath, LockFileName)
}

// DefaultOutputDir returns where unpack writes source files when the user
// gives no directory: a directory named after the compendium under the
// current working directory.
func DefaultOutputDir(compendiumName string) string {
	return compendiumName
}
