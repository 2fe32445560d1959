package ioutil

import "sync"

// BufferPool hands out MemBufs sized for reuse across transactions: the
// allocator behind the client's memory-backed sources and sinks.
type BufferPool struct {
	pool sync.Pool
}

// NewBufferPool returns a pool of zero-value, pre-sized MemBufs.
func NewBufferPool() *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} { return NewMemBuf() },
		},
	}
}

// Get returns a reset, ready-to-use MemBuf.
func (p *BufferPool) Get() *MemBuf {
	buf := p.pool.Get().(*MemBuf)
	buf.Reset()
	return buf
}

// Put returns buf to the pool. Callers must not touch buf afterwards.
func (p *BufferPool) Put(buf *MemBuf) {
	if buf == nil {
		return
	}
	p.pool.Put(buf)
}
