// Package memengine provides a trivial, non-persistent Engine
// implementation used only to exercise the kv.Backend interface in
// tests. It keeps every value in a plain map and never touches disk.
package memengine

import "github.com/amanlalwani007/logkv/kv"

// MemEngine is an in-memory kv.Backend. It is not safe for concurrent
// use, matching the log-structured engine's own single-threaded
// contract.
type MemEngine struct {
	data map[string]string
}

// New returns an empty MemEngine. There is no on-disk state to
// hydrate, so unlike kv.Open this never fails.
func New() *MemEngine {
	return &MemEngine{data: make(map[string]string)}
}

var _ kv.Backend = (*MemEngine)(nil)

// Get returns the value for key and true, or "", false if absent.
func (m *MemEngine) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

// Set asserts that key's current value is value.
func (m *MemEngine) Set(key, value string) error {
	m.data[key] = value
	return nil
}

// Remove asserts that key no longer exists, failing with
// kv.ErrKeyNotFound if it was already absent.
func (m *MemEngine) Remove(key string) error {
	if _, ok := m.data[key]; !ok {
		return kv.ErrKeyNotFound
	}
	delete(m.data, key)
	return nil
}

// Close is a no-op; MemEngine holds no resources.
func (m *MemEngine) Close() error {
	return nil
}
