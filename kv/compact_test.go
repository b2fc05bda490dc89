package kv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompactLeavesExactlyOneFile(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(dir, WithCompactionThreshold(-1))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Set("a", "1"))
	require.NoError(t, db.Set("b", "2"))
	require.NoError(t, db.Set("a", "3"))
	require.NoError(t, db.Remove("b"))

	require.NoError(t, db.compact())

	entries, err := os.ReadDir(db.logDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(db.activePath), entries[0].Name())

	v, ok, err := db.Get("a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "3", v)

	_, ok, err = db.Get("b")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCompactSumOfLengthsMatchesFileSize(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(dir, WithCompactionThreshold(-1))
	require.NoError(t, err)
	defer db.Close()

	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, db.Set(k, "value-"+k))
	}
	require.NoError(t, db.compact())

	var sum int64
	for _, key := range db.ix.keys() {
		ptr, ok := db.ix.get(key)
		require.True(t, ok)
		sum += ptr.Length
		assert.Equal(t, db.activePath, ptr.File)
	}

	info, err := os.Stat(db.activePath)
	require.NoError(t, err)
	assert.Equal(t, info.Size(), sum)
}

func TestCompactTriggersAutomaticallyAtThreshold(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(dir, WithCompactionThreshold(5))
	require.NoError(t, err)
	defer db.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, db.Set("k", "v"))
	}

	assert.Equal(t, 0, db.uncompacted, "compaction should have fired and reset the counter")

	entries, err := os.ReadDir(db.logDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
