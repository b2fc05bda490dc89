package kv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHydrateEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	ix, err := hydrate(dir, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 0, ix.len())
}

func TestHydrateFatalOnCorruptRecord(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "00000000000000000001.json")
	require.NoError(t, os.WriteFile(path, []byte("not a json record\n"), 0o644))

	_, err := hydrate(dir, zap.NewNop())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorruption)
}

func TestHydrateReplaysSetThenOverwriteThenRemove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "00000000000000000001.json")
	f, err := openForAppend(path)
	require.NoError(t, err)

	var off int64
	for _, e := range []logEntry{
		setEntry("k", "v1"),
		setEntry("k", "v2"),
		removeEntry("k"),
		setEntry("other", "x"),
	} {
		_, _, err := appendRecord(f, off, e)
		require.NoError(t, err)
		off += int64(len(encode(e)))
	}
	require.NoError(t, f.Close())

	ix, err := hydrate(dir, zap.NewNop())
	require.NoError(t, err)

	_, ok := ix.get("k")
	assert.False(t, ok)

	ptr, ok := ix.get("other")
	require.True(t, ok)
	entry, err := readRecordAt(ptr.File, ptr.Offset, ptr.Length)
	require.NoError(t, err)
	assert.Equal(t, "x", entry.Value)
}
