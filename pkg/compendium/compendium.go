// Package compendium drives the two top-level pack operations: unpack
// (store to source files) and pack (source files reconciled back into the
// store). Both refuse to start while the pack is held open elsewhere, and
// both abort outright on the first failure; only the store commit itself is
// atomic, written files are never rolled back.
package compendium

import (
	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/document"
	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/errors"
	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/logging"
	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/paths"
	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/reconcile"
	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/serializer"
	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/store"
)

// UnpackOptions configures one unpack run.
type UnpackOptions struct {
	// PackPath is the pack database directory.
	PackPath string
	// OutputDir receives one source file per pack entry.
	OutputDir string
	// Format selects JSON or YAML source files.
	Format serializer.Format
}

// Unpack extracts every entry of the pack into one source file per entry
// and returns the number of files written.
func Unpack(opts UnpackOptions) (int, error) {
	logger := logging.GetLogger("compendium.unpack")
	done := logging.LogOperationStart(logger, "unpack")
	defer done()

	if err := checkLock(opts.PackPath); err != nil {
		return 0, err
	}

	s, err := store.Open(opts.PackPath)
	if err != nil {
		return 0, err
	}
	defer func() { _ = s.Close() }()

	writer, err := serializer.NewWriter(opts.OutputDir, opts.Format)
	if err != nil {
		return 0, err
	}

	count := 0
	err = s.Iterate(func(key string, doc document.Document) error {
		file, writeErr := writer.Write(key, doc)
		if writeErr != nil {
			return writeErr
		}
		count++
		logger.Trace().Str("key", key).Str("file", file).Msg("Unpacked entry")
		return nil
	})
	if err != nil {
		return count, err
	}

	logger.Info().
		Int("entries", count).
		Str("pack", opts.PackPath).
		Str("dir", opts.OutputDir).
		Msg("Unpacked compendium")
	return count, nil
}

// PackOptions configures one pack run.
type PackOptions struct {
	// PackPath is the pack database directory.
	PackPath string
	// SourceDir holds the source files to reconcile into the pack.
	SourceDir string
}

// Pack reconciles the source directory into the pack: after a successful
// run the store's key set equals the set of keys embedded in the source
// files. All puts and deletes are committed as one atomic batch; on any
// failure before the commit the store is untouched.
func Pack(opts PackOptions) (*reconcile.SyncPlan, error) {
	logger := logging.GetLogger("compendium.pack")
	done := logging.LogOperationStart(logger, "pack")
	defer done()

	if err := checkLock(opts.PackPath); err != nil {
		return nil, err
	}

	entries, err := serializer.ReadAll(opts.SourceDir)
	if err != nil {
		return nil, err
	}

	s, err := store.Open(opts.PackPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.Close() }()

	current, err := s.Snapshot()
	if err != nil {
		return nil, err
	}

	plan, err := reconcile.Plan(current, entries)
	if err != nil {
		return nil, err
	}
	if err := plan.Apply(s); err != nil {
		return nil, err
	}

	logger.Info().
		Int("puts", len(plan.Puts)).
		Int("deletes", len(plan.Deletes)).
		Str("pack", opts.PackPath).
		Msg("Packed compendium")
	return plan, nil
}

// checkLock aborts the operation before the store is opened when the pack
// is held by another process. The probe races the mutation that follows;
// that window is a documented limitation of the lock marker protocol.
func checkLock(packPath string) error {
	locked, err := store.IsLocked(paths.LockPath(packPath))
	if err != nil {
		return err
	}
	if locked {
		return errors.Newf(errors.ErrResourceLocked,
			"pack %q is open in another process", packPath)
	}
	return nil
}
