package store

import (
	"os"
	"syscall"

	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/errors"
	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/logging"
)

// IsLocked probes whether the pack's LOCK marker file is exclusively held by
// another process. It attempts a non-blocking exclusive lock and releases it
// immediately on success. A missing marker means the pack is not locked.
//
// This is a best-effort probe, not a mutual-exclusion primitive: another
// process may acquire the lock between the probe and a subsequent mutation.
func IsLocked(lockPath string) (bool, error) {
	logger := logging.GetLogger("store.lock")

	file, err := os.OpenFile(lockPath, os.O_RDWR, 0644)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Trace().Str("path", lockPath).Msg("No lock marker present")
			return false, nil
		}
		return false, errors.Wrap(err, errors.ErrFileAccess, "cannot open lock marker").
			WithDetail("path", lockPath)
	}
	defer func() { _ = file.Close() }()

	flockErr := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
	if flockErr == nil {
		_ = syscall.Flock(int(file.Fd()), syscall.LOCK_UN)
		return false, nil
	}
	if flockErr == syscall.EWOULDBLOCK || flockErr == syscall.EAGAIN {
		logger.Debug().Str("path", lockPath).Msg("Lock marker is held by another process")
		return true, nil
	}
	return false, errors.Wrap(flockErr, errors.ErrFileAccess, "lock probe failed").
		WithDetail("path", lockPath)
}
