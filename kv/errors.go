package kv

import "github.com/pkg/errors"

// Sentinel errors for two of the three error kinds (KeyNotFound and
// Corruption). StorageIO failures have no sentinel of their own: they
// are the underlying I/O error wrapped by storageIOf. Wrap with
// github.com/pkg/errors so that %+v on a returned error carries the
// stack frame where it originated, while errors.Is still matches the
// sentinel.
var (
	// ErrKeyNotFound is returned by Remove when the key does not exist
	// in the index. Get reports an absent key with ok == false instead.
	ErrKeyNotFound = errors.New("key not found")

	// ErrCorruption is returned when a record decodes into an invalid
	// shape, or when an index pointer's target fails to decode to the
	// expected key.
	ErrCorruption = errors.New("log corruption")
)

// storageIOf wraps an I/O failure (open, read, write, seek, unlink,
// mkdir) with context, preserving the stack trace at the call site.
func storageIOf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// corruptionf wraps ErrCorruption with context so errors.Is(err,
// ErrCorruption) still matches after wrapping.
func corruptionf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrCorruption, format, args...)
}
