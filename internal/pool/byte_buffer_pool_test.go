package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ByteBuffer Tests
// =============================================================================

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len(), "new buffer should have zero length")
	assert.Equal(t, 1024, bb.Cap(), "new buffer should have requested capacity")
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(64)
	bb.B = append(bb.B, []byte("some data")...)

	bb.Reset()

	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, 64, bb.Cap(), "reset should keep the allocation")
}

func TestByteBuffer_SetLength(t *testing.T) {
	bb := NewByteBuffer(32)

	bb.SetLength(16)
	assert.Equal(t, 16, bb.Len())

	assert.Panics(t, func() { bb.SetLength(-1) })
	assert.Panics(t, func() { bb.SetLength(33) })
}

func TestByteBuffer_Resize(t *testing.T) {
	t.Run("WithinCapacity", func(t *testing.T) {
		bb := NewByteBuffer(32)
		bb.B = append(bb.B, []byte("abc")...)

		bb.Resize(10)

		assert.Equal(t, 10, bb.Len())
		assert.Equal(t, 32, bb.Cap())
		assert.Equal(t, []byte("abc"), bb.B[:3], "content preserved")
	})

	t.Run("Reallocates", func(t *testing.T) {
		bb := NewByteBuffer(4)
		bb.B = append(bb.B, []byte("abcd")...)

		bb.Resize(100)

		assert.Equal(t, 100, bb.Len())
		assert.GreaterOrEqual(t, bb.Cap(), 100)
		assert.Equal(t, []byte("abcd"), bb.B[:4], "content preserved across reallocation")
	})

	t.Run("Shrinks", func(t *testing.T) {
		bb := NewByteBuffer(16)
		bb.SetLength(16)

		bb.Resize(4)

		assert.Equal(t, 4, bb.Len())
		assert.Equal(t, 16, bb.Cap())
	})
}

// =============================================================================
// ByteBufferPool Tests
// =============================================================================

func TestByteBufferPool_GetPut(t *testing.T) {
	p := NewByteBufferPool(128, 1024)

	bb := p.Get()
	require.NotNil(t, bb)
	assert.Equal(t, 128, bb.Cap())

	bb.B = append(bb.B, []byte("payload")...)
	p.Put(bb)

	reused := p.Get()
	require.NotNil(t, reused)
	assert.Equal(t, 0, reused.Len(), "pooled buffers come back reset")
}

func TestByteBufferPool_DiscardsOversized(t *testing.T) {
	p := NewByteBufferPool(128, 256)

	bb := p.Get()
	bb.Resize(512)
	p.Put(bb)

	next := p.Get()
	assert.LessOrEqual(t, next.Cap(), 256, "oversized buffers are not retained")
}

func TestByteBufferPool_PutNil(t *testing.T) {
	p := NewByteBufferPool(128, 256)
	assert.NotPanics(t, func() { p.Put(nil) })
}

func TestDefaultPools(t *testing.T) {
	sb := GetScanBuffer()
	require.NotNil(t, sb)
	assert.Equal(t, ScanBufferDefaultSize, sb.Cap())
	PutScanBuffer(sb)

	rb := GetRowBuffer()
	require.NotNil(t, rb)
	assert.Equal(t, RowBufferDefaultSize, rb.Cap())
	PutRowBuffer(rb)
}
