package pool

import "sync"

// BufferPool implements a pool of byte slices for efficient memory reuse.
type BufferPool struct {
	pool sync.Pool
	size int
}

// NewBufferPool creates a new buffer pool with buffers of the specified
// initial capacity.
func NewBufferPool(size int) *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				buffer := make([]byte, 0, size)
				return &buffer
			},
		},
		size: size,
	}
}

// Get retrieves a buffer from the pool or creates a new one if none are
// available.
func (bp *BufferPool) Get() *[]byte {
	return bp.pool.Get().(*[]byte)
}

// Put returns a buffer to the pool for reuse. The length is reset while
// the capacity is kept.
func (bp *BufferPool) Put(buffer *[]byte) {
	*buffer = (*buffer)[:0]
	bp.pool.Put(buffer)
}
