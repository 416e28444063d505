package pool

import "sync"

// Default sizes for the pooled buffers used by the streaming scanner.
const (
	// ScanBufferDefaultSize is the initial size of a streaming scan buffer.
	ScanBufferDefaultSize = 1024 * 1024 // 1MiB
	// ScanBufferMaxThreshold caps the size of scan buffers kept in the pool.
	ScanBufferMaxThreshold = 1024 * 1024 * 8 // 8MiB
	// RowBufferDefaultSize is the initial size of a last-row scratch buffer.
	RowBufferDefaultSize = 1024 * 4 // 4KiB
	// RowBufferMaxThreshold caps the size of row buffers kept in the pool.
	RowBufferMaxThreshold = 1024 * 1024 // 1MiB
)

// ByteBuffer is a reusable byte slice with explicit length control. The
// streaming scanner fills it in place and manages consumed/filled offsets
// itself, so the buffer exposes resizing rather than append helpers.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a ByteBuffer with the specified capacity.
func NewByteBuffer(capacity int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, capacity),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the current length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Reset empties the buffer while retaining the allocated memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// SetLength sets the length of the buffer to n within the current capacity.
// Panics if n is negative or greater than the capacity.
func (bb *ByteBuffer) SetLength(n int) {
	if n < 0 || n > cap(bb.B) {
		panic("SetLength: invalid length")
	}
	bb.B = bb.B[:n]
}

// Resize sets the length of the buffer to n, reallocating when the capacity
// is insufficient. Existing content up to min(len, n) is preserved.
func (bb *ByteBuffer) Resize(n int) {
	if n <= cap(bb.B) {
		bb.B = bb.B[:n]
		return
	}

	newBuf := make([]byte, n)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// It uses sync.Pool internally. A maximum size threshold avoids retaining
// overly large buffers after a scan that grew its buffer for a long row.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool handing out buffers of the specified
// default capacity, discarding returned buffers larger than maxThreshold.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		// Discard overly large buffers to prevent memory bloat
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	scanDefaultPool = NewByteBufferPool(ScanBufferDefaultSize, ScanBufferMaxThreshold)
	rowDefaultPool  = NewByteBufferPool(RowBufferDefaultSize, RowBufferMaxThreshold)
)

// GetScanBuffer retrieves a ByteBuffer from the default scan buffer pool.
func GetScanBuffer() *ByteBuffer {
	return scanDefaultPool.Get()
}

// PutScanBuffer returns a ByteBuffer to the default scan buffer pool.
func PutScanBuffer(bb *ByteBuffer) {
	scanDefaultPool.Put(bb)
}

// GetRowBuffer retrieves a ByteBuffer from the default row scratch pool.
func GetRowBuffer() *ByteBuffer {
	return rowDefaultPool.Get()
}

// PutRowBuffer returns a ByteBuffer to the default row scratch pool.
func PutRowBuffer(bb *ByteBuffer) {
	rowDefaultPool.Put(bb)
}
