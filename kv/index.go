package kv

// LogPointer locates one record on disk: the log file it lives in, the
// byte offset of the record's first byte, and the exact number of
// bytes the record occupies on disk, terminator included.
type LogPointer struct {
	File   string
	Offset int64
	Length int64
}

// index is an insertion-order-independent key -> LogPointer mapping.
// A key's absence from the index means the key does not exist.
type index struct {
	entries map[string]LogPointer
}

func newIndex() *index {
	return &index{entries: make(map[string]LogPointer)}
}

func (ix *index) get(key string) (LogPointer, bool) {
	p, ok := ix.entries[key]
	return p, ok
}

func (ix *index) set(key string, p LogPointer) {
	ix.entries[key] = p
}

func (ix *index) remove(key string) {
	delete(ix.entries, key)
}

func (ix *index) len() int {
	return len(ix.entries)
}

// keys returns the indexed keys in unspecified order.
func (ix *index) keys() []string {
	ks := make([]string, 0, len(ix.entries))
	for k := range ix.entries {
		ks = append(ks, k)
	}
	return ks
}
