// Package store adapts a compendium pack's LevelDB database to the rest of
// the tool. All mutation goes through a Batch committed in a single atomic
// write; iteration and lookups are read-only.
package store

import (
	"encoding/json"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/document"
	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/errors"
	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/logging"
)

// Store wraps an open compendium pack database.
type Store struct {
	path string
	db   *leveldb.DB
}

// Open opens the pack database at path. The database must already exist;
// a missing, corrupt, or exclusively-held database fails with
// ErrStoreUnavailable.
func Open(path string) (*Store, error) {
	logger := logging.GetLogger("store")

	db, err := leveldb.OpenFile(path, &opt.Options{ErrorIfMissing: true})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrStoreUnavailable, "cannot open pack database").
			WithDetail("path", path)
	}

	logger.Debug().Str("path", path).Msg("Opened pack database")
	return &Store{path: path, db: db}, nil
}

// Path returns the filesystem path the store was opened from.
func (s *Store) Path() string {
	return s.path
}

// Iterate calls fn for every (key, document) pair in key order. Each call
// uses a fresh iterator, so iteration is restartable. Returning an error
// from fn stops iteration and propagates the error.
func (s *Store) Iterate(fn func(key string, doc document.Document) error) error {
	iter := s.db.NewIterator(nil, nil)
	defer iter.Release()

	for iter.Next() {
		key := string(iter.Key())

		var doc document.Document
		if err := json.Unmarshal(iter.Value(), &doc); err != nil {
			return errors.Wrap(err, errors.ErrSerializeParse, "cannot decode pack entry").
				WithDetail("key", key)
		}

		if err := fn(key, doc); err != nil {
			return err
		}
	}

	if err := iter.Error(); err != nil {
		return errors.Wrap(err, errors.ErrStoreUnavailable, "pack iteration failed").
			WithDetail("path", s.path)
	}
	return nil
}

// Keys returns the set of all keys currently in the store.
func (s *Store) Keys() (map[string]struct{}, error) {
	keys := make(map[string]struct{})

	iter := s.db.NewIterator(nil, nil)
	defer iter.Release()
	for iter.Next() {
		keys[string(iter.Key())] = struct{}{}
	}
	if err := iter.Error(); err != nil {
		return nil, errors.Wrap(err, errors.ErrStoreUnavailable, "pack iteration failed").
			WithDetail("path", s.path)
	}
	return keys, nil
}

// Snapshot returns every document in the store keyed by its store key.
// Pack sizes are bounded by a single compendium, so loading the whole
// snapshot for reconciliation is fine.
func (s *Store) Snapshot() (map[string]document.Document, error) {
	docs := make(map[string]document.Document)
	err := s.Iterate(func(key string, doc document.Document) error {
		docs[key] = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// Get returns the document stored under key, or ErrNotFound.
func (s *Store) Get(key string) (document.Document, error) {
	data, err := s.db.Get([]byte(key), nil)
	if err == leveldb.ErrNotFound {
		return nil, errors.Newf(errors.ErrNotFound, "no entry for key %q", key)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrStoreUnavailable, "pack read failed").
			WithDetail("key", key)
	}

	var doc document.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrSerializeParse, "cannot decode pack entry").
			WithDetail("key", key)
	}
	return doc, nil
}

// Batch stages puts and deletes to be applied atomically by Commit.
type Batch struct {
	batch *leveldb.Batch
	ops   int
}

// NewBatch returns an empty staging batch.
func (s *Store) NewBatch() *Batch {
	return &Batch{batch: new(leveldb.Batch)}
}

// Put stages doc to be written under key. The document is JSON-encoded at
// staging time so encoding failures surface before anything is committed.
func (b *Batch) Put(key string, doc document.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, errors.ErrSerializeEncode, "cannot encode document").
			WithDetail("key", key)
	}
	b.batch.Put([]byte(key), data)
	b.ops++
	return nil
}

// Delete stages key for removal.
func (b *Batch) Delete(key string) {
	b.batch.Delete([]byte(key))
	b.ops++
}

// Len returns the number of staged operations.
func (b *Batch) Len() int {
	return b.ops
}

// Commit applies all staged operations in one atomic write. On failure
// nothing is applied.
func (s *Store) Commit(b *Batch) error {
	if b.Len() == 0 {
		return nil
	}
	if err := s.db.Write(b.batch, nil); err != nil {
		return errors.Wrap(err, errors.ErrStoreCommit, "batch commit failed").
			WithDetail("path", s.path).
			WithDetail("operations", b.Len())
	}
	logger := logging.GetLogger("store")
	logger.Debug().
		Int("operations", b.Len()).
		Str("path", s.path).
		Msg("Committed batch")
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return errors.Wrap(err, errors.ErrStoreUnavailable, "cannot close pack database").
			WithDetail("path", s.path)
	}
	return nil
}
