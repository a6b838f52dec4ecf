// Package config persists the tool's settings and the "current package"
// session state as a small TOML file under the XDG config directory. It is a
// flat key-value store consumed through Get/Set.
package config

import (
	"bytes"
	"os"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/natefinch/atomic"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/errors"
	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/logging"
	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/paths"
)

// Recognized settings keys.
const (
	KeyDataPath           = "dataPath"
	KeyCurrentPackageID   = "currentPackageId"
	KeyCurrentPackageType = "currentPackageType"
)

// defaults seed every store so known keys always resolve.
var defaults = map[string]interface{}{
	KeyDataPath:           "",
	KeyCurrentPackageID:   "",
	KeyCurrentPackageType: "",
}

// Store is the settings file loaded into a koanf instance.
type Store struct {
	path string
	k    *koanf.Koanf
}

// Open loads the settings store from its default XDG location. A missing
// file is not an error; the store then holds only defaults.
func Open() (*Store, error) {
	path, err := paths.ConfigFilePath()
	if err != nil {
		return nil, err
	}
	return OpenAt(path)
}

// OpenAt loads the settings store from an explicit path.
func OpenAt(path string) (*Store, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "cannot load default settings")
	}

	if _, statErr := os.Stat(path); statErr == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "cannot parse settings file").
				WithDetail("path", path)
		}
	}

	return &Store{path: path, k: k}, nil
}

// Path returns the settings file location backing the store.
func (s *Store) Path() string {
	return s.path
}

// Get returns the string value for key, "" when unset.
func (s *Store) Get(key string) string {
	return s.k.String(key)
}

// Set stores value under key and rewrites the settings file atomically.
func (s *Store) Set(key, value string) error {
	if err := s.k.Set(key, value); err != nil {
		return errors.Wrap(err, errors.ErrConfigWrite, "cannot set config value").
			WithDetail("key", key)
	}
	return s.flush()
}

// Unset clears the value under key and rewrites the settings file.
func (s *Store) Unset(key string) error {
	return s.Set(key, "")
}

func (s *Store) flush() error {
	out := make(map[string]interface{})
	for key, value := range s.k.All() {
		// Keep the file minimal: unset values are represented by absence.
		if str, ok := value.(string); ok && str == "" {
			continue
		}
		out[key] = value
	}

	data, err := gotoml.Marshal(out)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigWrite, "cannot encode settings")
	}
	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return errors.Wrap(err, errors.ErrConfigWrite, "cannot write settings file").
			WithDetail("path", s.path)
	}

	logger := logging.GetLogger("config")
	logger.Debug().Str("path", s.path).Msg("Wrote settings file")
	return nil
}
