// Package reconcile computes the put/delete set that makes a pack's contents
// exactly match a source directory.
package reconcile

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/document"
	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/errors"
	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/logging"
	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/serializer"
	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/store"
)

// Put is one staged write of a document under its store key.
type Put struct {
	Key string
	Doc document.Document
}

// SyncPlan is the computed operation set for one pack run. Applying the plan
// leaves the store's key set exactly equal to the source entries' keys.
type SyncPlan struct {
	Puts    []Put
	Deletes []string
}

// Empty reports whether the plan stages no operations.
func (p *SyncPlan) Empty() bool {
	return len(p.Puts) == 0 && len(p.Deletes) == 0
}

// Plan computes the SyncPlan for the given store snapshot and source entries.
// A source entry whose document already matches the stored one stages
// nothing, so an unchanged directory reconciles to an empty plan. Every
// store key with no source entry becomes a delete.
//
// Two source files embedding the same key is an error: directory enumeration
// order is not a stable tie-break, so the collision is rejected rather than
// silently resolved.
func Plan(current map[string]document.Document, entries []serializer.Entry) (*SyncPlan, error) {
	plan := &SyncPlan{}
	seen := make(map[string]string, len(entries)) // key -> file that embedded it

	for _, entry := range entries {
		if prev, dup := seen[entry.Key]; dup {
			return nil, errors.Newf(errors.ErrDuplicateKey,
				"files %q and %q both embed key %q", prev, entry.File, entry.Key).
				WithDetail("key", entry.Key)
		}
		seen[entry.Key] = entry.File

		if stored, ok := current[entry.Key]; ok && sameDocument(stored, entry.Doc) {
			continue
		}
		plan.Puts = append(plan.Puts, Put{Key: entry.Key, Doc: entry.Doc})
	}

	for key := range current {
		if _, ok := seen[key]; !ok {
			plan.Deletes = append(plan.Deletes, key)
		}
	}
	sort.Strings(plan.Deletes)

	logger := logging.GetLogger("reconcile")
	logger.Debug().
		Int("puts", len(plan.Puts)).
		Int("deletes", len(plan.Deletes)).
		Msg("Computed sync plan")
	return plan, nil
}

// Apply stages the whole plan into one batch and commits it atomically.
// Nothing is visible to other readers until the commit succeeds.
func (p *SyncPlan) Apply(s *store.Store) error {
	batch := s.NewBatch()
	for _, put := range p.Puts {
		if err := batch.Put(put.Key, put.Doc); err != nil {
			return err
		}
	}
	for _, key := range p.Deletes {
		batch.Delete(key)
	}
	return s.Commit(batch)
}

// sameDocument compares two documents by canonical JSON. Marshaling sorts
// map keys at every level, so field order never matters; it also erases the
// int/float distinction between YAML and JSON decoding of the same number.
func sameDocument(a, b document.Document) bool {
	aj, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bj, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(aj, bj)
}
