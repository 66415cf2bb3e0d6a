package cmdline

// Buffer is a fixed-capacity byte accumulator for one command line.
//
// The backing array is allocated once. Appends beyond the capacity are
// dropped, so a line that overflows is kept as its leading prefix and the
// caller can keep feeding characters until the terminator arrives.
type Buffer struct {
	data []byte
}

// NewBuffer allocates a buffer holding at most capacity bytes. A
// non-positive capacity falls back to DefaultBufferSize.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultBufferSize
	}
	return &Buffer{data: make([]byte, 0, capacity)}
}

// Append stores c at the write position. It returns false, leaving the
// buffer untouched, when the buffer is already full.
func (b *Buffer) Append(c byte) bool {
	if len(b.data) == cap(b.data) {
		return false
	}
	b.data = append(b.data, c)
	return true
}

// Reset empties the buffer without releasing its storage.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
}

// Len returns the write position.
func (b *Buffer) Len() int { return len(b.data) }

// Cap returns the fixed capacity.
func (b *Buffer) Cap() int { return cap(b.data) }

// Full reports whether further appends will be dropped.
func (b *Buffer) Full() bool { return len(b.data) == cap(b.data) }

// String returns a copy of the buffered line.
func (b *Buffer) String() string { return string(b.data) }
