// Package kv implements a persistent, embedded key-value store backed
// by an append-only, log-structured on-disk format with an in-memory
// key index (see LogPointer and index). Engine is the façade: Open,
// Get, Set, Remove, Close.
package kv

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Engine is a log-structured, embedded key-value store. It is not safe
// for concurrent use: a single goroutine must own an Engine for its
// lifetime (spec §5). Engine satisfies the Backend (kv.Backend)
// interface in engine.go.
type Engine struct {
	logDir string

	activePath string
	activeFile *os.File
	activeSize int64

	ix *index

	uncompacted         int
	compactionThreshold int

	logger *zap.Logger
}

// logFilesDir is the fixed subdirectory name the engine owns beneath
// the caller's base path (spec §6).
const logFilesDir = "log-files"

// Open creates or opens an engine rooted at basePath. It ensures
// basePath/log-files exists, replays every existing log file into a
// fresh index (hydration, §4.5), and designates a brand-new file as
// the active log for subsequent writes — never the most recent
// pre-existing file, so that compaction can always unlink old files
// without touching the active one (§4.5 step 4).
func Open(basePath string, opts ...Option) (*Engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	dir := filepath.Join(basePath, logFilesDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, storageIOf(err, "create %s", dir)
	}

	ix, err := hydrate(dir, o.logger)
	if err != nil {
		return nil, err
	}

	activeName := newLogFileName()
	activePath := filepath.Join(dir, activeName)
	activeFile, err := openForAppend(activePath)
	if err != nil {
		return nil, err
	}

	o.logger.Info("engine opened",
		zap.String("dir", dir),
		zap.String("active_log", activeName),
		zap.Int("index_size", ix.len()))

	return &Engine{
		logDir:              dir,
		activePath:          activePath,
		activeFile:          activeFile,
		ix:                  ix,
		compactionThreshold: o.compactionThreshold,
		logger:              o.logger,
	}, nil
}

// Get looks up key and returns its current value. ok is false if key
// is absent; that is not an error. err is non-nil only for a genuine
// storage or corruption failure while resolving an index hit.
func (e *Engine) Get(key string) (value string, ok bool, err error) {
	ptr, found := e.ix.get(key)
	if !found {
		return "", false, nil
	}

	entry, err := readRecordAt(ptr.File, ptr.Offset, ptr.Length)
	if err != nil {
		return "", false, err
	}
	if entry.Type != entrySet || entry.Key != key {
		return "", false, corruptionf("index pointer for %q resolved to %v", key, entry)
	}
	return entry.Value, true, nil
}

// Set asserts that key's current value is value, appending a Set
// record to the active log and updating the index. It triggers
// compaction when the mutation count since the last compaction
// crosses the configured threshold.
func (e *Engine) Set(key, value string) error {
	return e.append(setEntry(key, value))
}

// Remove asserts that key no longer exists. It fails with
// ErrKeyNotFound if key is already absent from the index; it does not
// touch the log in that case.
func (e *Engine) Remove(key string) error {
	if _, found := e.ix.get(key); !found {
		return ErrKeyNotFound
	}
	// The written remove record's own pointer is never indexed — once
	// the index no longer has key, nothing needs to point at it.
	if _, _, err := e.appendEntry(removeEntry(key)); err != nil {
		return err
	}
	e.ix.remove(key)
	return e.afterMutation()
}

// append writes a Set record, updates the index, and runs the
// post-mutation bookkeeping (uncompacted counter, compaction trigger).
func (e *Engine) append(entry logEntry) error {
	offset, length, err := e.appendEntry(entry)
	if err != nil {
		return err
	}
	e.ix.set(entry.Key, LogPointer{File: e.activePath, Offset: offset, Length: length})
	return e.afterMutation()
}

// appendEntry writes entry to the active log, tracking activeSize so
// subsequent appends don't need a stat/seek round trip.
func (e *Engine) appendEntry(entry logEntry) (offset, length int64, err error) {
	offset, length, err = appendRecord(e.activeFile, e.activeSize, entry)
	if err != nil {
		return 0, 0, err
	}
	e.activeSize += length
	return offset, length, nil
}

// afterMutation increments the uncompacted counter and runs
// compaction if the configured threshold is crossed. A
// compactionThreshold <= 0 disables automatic compaction.
func (e *Engine) afterMutation() error {
	e.uncompacted++
	if e.compactionThreshold > 0 && e.uncompacted >= e.compactionThreshold {
		return e.compact()
	}
	return nil
}

// Close releases the active log file handle. It does not run
// compaction.
func (e *Engine) Close() error {
	if err := e.activeFile.Close(); err != nil {
		return storageIOf(err, "close %s", e.activePath)
	}
	return nil
}
