package kv

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
)

// entryType discriminates the two LogEntry shapes on the wire.
type entryType string

const (
	entrySet    entryType = "Set"
	entryRemove entryType = "Remove"
)

// logEntry is the JSON shape of one on-disk record. Value is omitted
// for Remove entries, matching the original serde-tagged enum this
// format is modeled on (one line, "type" discriminator, short field
// names for key/value).
type logEntry struct {
	Type  entryType `json:"type"`
	Key   string    `json:"k"`
	Value string    `json:"v,omitempty"`
}

func setEntry(key, value string) logEntry {
	return logEntry{Type: entrySet, Key: key, Value: value}
}

func removeEntry(key string) logEntry {
	return logEntry{Type: entryRemove, Key: key}
}

// encode serializes entry to its on-disk form, including the trailing
// newline record terminator. It never fails for in-memory-representable
// strings.
func encode(entry logEntry) []byte {
	// encoding/json cannot fail on a struct of plain strings.
	payload, _ := json.Marshal(entry)
	payload = append(payload, '\n')
	return payload
}

// decode parses a single line (without its terminator) back into a
// logEntry. Failure means the record is corrupt.
func decode(line []byte) (logEntry, error) {
	var entry logEntry
	if err := json.Unmarshal(line, &entry); err != nil {
		return logEntry{}, corruptionf("decode record: %v", err)
	}
	switch entry.Type {
	case entrySet, entryRemove:
		return entry, nil
	default:
		return logEntry{}, corruptionf("unknown record type %q", entry.Type)
	}
}

// openForAppend opens path in create-if-absent, append-only mode. All
// writes through the returned handle land at end-of-file atomically
// with respect to this handle.
func openForAppend(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, storageIOf(err, "open %s for append", path)
	}
	return f, nil
}

// openForRead opens path read-only.
func openForRead(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, storageIOf(err, "open %s for read", path)
	}
	return f, nil
}

// appendRecord writes entry's encoded bytes to f and returns the byte
// offset the record starts at and its on-disk length (payload +
// terminator), per the §4.1 length convention. priorSize is the
// caller's tracked end-of-file offset before the write, avoiding a
// stat/seek round trip on every append.
func appendRecord(f *os.File, priorSize int64, entry logEntry) (offset, length int64, err error) {
	payload := encode(entry)
	n, err := f.Write(payload)
	if err != nil {
		return 0, 0, storageIOf(err, "append record to %s", f.Name())
	}
	return priorSize, int64(n), nil
}

// readRawAt reads exactly length raw bytes at offset in the file at
// path, terminator included, without decoding them. Used by compaction
// to copy records verbatim.
func readRawAt(path string, offset, length int64) ([]byte, error) {
	f, err := openForRead(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, length)
	if _, err := f.ReadAt(buf, offset); err != nil {
		return nil, storageIOf(err, "read %d bytes at offset %d in %s", length, offset, path)
	}
	return buf, nil
}

// readRecordAt seeks to offset in the file at path, reads exactly
// length bytes, and decodes the resulting record.
func readRecordAt(path string, offset, length int64) (logEntry, error) {
	f, err := openForRead(path)
	if err != nil {
		return logEntry{}, err
	}
	defer f.Close()

	buf := make([]byte, length)
	if _, err := f.ReadAt(buf, offset); err != nil {
		return logEntry{}, storageIOf(err, "read %d bytes at offset %d in %s", length, offset, path)
	}
	return decode(trimTerminator(buf))
}

// trimTerminator strips the single trailing newline record terminator.
func trimTerminator(record []byte) []byte {
	if n := len(record); n > 0 && record[n-1] == '\n' {
		return record[:n-1]
	}
	return record
}

// scanLines walks f line by line from the start, invoking fn with the
// byte offset of each line's start, the line's encoded length
// (including its terminator), and the raw line bytes (without
// terminator). A final partial line with no trailing newline is
// silently dropped instead of passed to fn, per the §4.5
// truncate-recovery edge case.
func scanLines(f *os.File, fn func(offset, length int64, line []byte) error) error {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return storageIOf(err, "seek %s to start", f.Name())
	}

	r := bufio.NewReader(f)
	var offset int64
	for {
		line, err := r.ReadBytes('\n')
		switch {
		case err == io.EOF:
			// Partial tail line with no trailing newline: ignore per
			// the truncate-recovery edge case.
			return nil
		case err != nil:
			return storageIOf(err, "scan %s", f.Name())
		}
		length := int64(len(line))
		if ferr := fn(offset, length, trimTerminator(line)); ferr != nil {
			return ferr
		}
		offset += length
	}
}
