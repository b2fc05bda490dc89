package memengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amanlalwani007/logkv/kv"
)

func TestMemEngineBasicOperations(t *testing.T) {
	var e kv.Backend = New()

	_, ok, err := e.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, e.Set("k", "v1"))
	v, ok, err := e.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v1", v)

	require.NoError(t, e.Set("k", "v2"))
	v, ok, err = e.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v2", v)

	require.NoError(t, e.Remove("k"))
	_, ok, err = e.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)

	err = e.Remove("k")
	assert.ErrorIs(t, err, kv.ErrKeyNotFound)

	require.NoError(t, e.Close())
}
