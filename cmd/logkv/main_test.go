package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, path string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root := newRootCmd()
	var outBuf, errBuf bytes.Buffer
	root.SetOut(&outBuf)
	root.SetErr(&errBuf)
	root.SetArgs(append([]string{"--path", path}, args...))
	err = root.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestCLISetGetRm(t *testing.T) {
	dir := t.TempDir()

	_, _, err := run(t, dir, "set", "k", "v")
	require.NoError(t, err)

	out, _, err := run(t, dir, "get", "k")
	require.NoError(t, err)
	assert.Equal(t, "v\n", out)

	_, _, err = run(t, dir, "rm", "k")
	require.NoError(t, err)

	out, _, err = run(t, dir, "get", "k")
	require.NoError(t, err)
	assert.Equal(t, "Key not found\n", out)
}

func TestCLIGetMissingKeyExitsZero(t *testing.T) {
	dir := t.TempDir()
	out, _, err := run(t, dir, "get", "missing")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "Key not found"))
}

func TestCLIRemoveMissingKeyFails(t *testing.T) {
	dir := t.TempDir()
	out, _, err := run(t, dir, "rm", "missing")
	require.Error(t, err)
	assert.Contains(t, out, "Key not found")
}

func TestCLINoSubcommandFails(t *testing.T) {
	dir := t.TempDir()
	_, errOut, err := run(t, dir)
	require.Error(t, err)
	assert.Contains(t, errOut, "subcommand")
}
