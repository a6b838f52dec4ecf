package config

import (
	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/errors"
)

// CurrentPackage returns the session's current package id and type.
// Fails with ErrPackageNotSet when no package is being worked on.
func (s *Store) CurrentPackage() (id, packageType string, err error) {
	id = s.Get(KeyCurrentPackageID)
	if id == "" {
		return "", "", errors.New(errors.ErrPackageNotSet,
			"no package is currently set; run 'fvtt package workon <id>' first")
	}
	return id, s.Get(KeyCurrentPackageType), nil
}

// SetCurrentPackage records the package being worked on.
func (s *Store) SetCurrentPackage(id, packageType string) error {
	if err := s.k.Set(KeyCurrentPackageID, id); err != nil {
		return errors.Wrap(err, errors.ErrConfigWrite, "cannot set current package")
	}
	if err := s.k.Set(KeyCurrentPackageType, packageType); err != nil {
		return errors.Wrap(err, errors.ErrConfigWrite, "cannot set current package type")
	}
	return s.flush()
}

// ClearCurrentPackage forgets the session package.
func (s *Store) ClearCurrentPackage() error {
	return s.SetCurrentPackage("", "")
}
