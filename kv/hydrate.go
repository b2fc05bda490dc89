package kv

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// hydrate rebuilds an index by replaying every log file in dir, in
// creation order, as if every entry had just been applied in sequence.
// It never sees the active log's own file, since Open names and creates
// the fresh active log only after hydration returns (spec §4.5 step 4).
func hydrate(dir string, logger *zap.Logger) (*index, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, storageIOf(err, "list %s", dir)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	names = listLogFiles(names)

	ix := newIndex()
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := hydrateFile(ix, path, name, logger); err != nil {
			return nil, err
		}
	}
	return ix, nil
}

func hydrateFile(ix *index, path, name string, logger *zap.Logger) error {
	f, err := openForRead(path)
	if err != nil {
		return err
	}
	defer f.Close()

	err = scanLines(f, func(offset, length int64, line []byte) error {
		entry, derr := decode(line)
		if derr != nil {
			return derr
		}
		switch entry.Type {
		case entrySet:
			ix.set(entry.Key, LogPointer{File: path, Offset: offset, Length: length})
		case entryRemove:
			ix.remove(entry.Key)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Debug("hydrated log file", zap.String("file", name), zap.Int("index_size", ix.len()))
	return nil
}
