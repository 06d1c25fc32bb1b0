package image

import "sync"

// Pool recycles buffers of identical dimensions.
//
// Full-quality faces are built at three times the source height, so a single
// working buffer can be hundreds of megabytes. Building six faces through a
// pool keeps only one of them alive.
//
// Thread safety: All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[poolKey][]*Buffer
	maxSize int // max buffers per bucket
}

type poolKey struct {
	width  int
	height int
}

// NewPool creates a pool keeping at most maxPerBucket buffers of each size.
// A maxPerBucket of 0 means unlimited.
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[poolKey][]*Buffer),
		maxSize: maxPerBucket,
	}
}

// Get returns a width x height buffer, reusing a pooled one when available.
// Reused buffers are not cleared; callers are expected to overwrite every
// pixel.
func (p *Pool) Get(width, height int) (*Buffer, error) {
	key := poolKey{width: width, height: height}

	p.mu.Lock()
	if bucket := p.buckets[key]; len(bucket) > 0 {
		buf := bucket[len(bucket)-1]
		p.buckets[key] = bucket[:len(bucket)-1]
		p.mu.Unlock()
		return buf, nil
	}
	p.mu.Unlock()

	return NewBuffer(width, height)
}

// Put returns buf to the pool. The caller must not use buf afterwards.
// Nil buffers and buffers beyond the bucket limit are dropped.
func (p *Pool) Put(buf *Buffer) {
	if buf.IsEmpty() {
		return
	}
	key := poolKey{width: buf.width, height: buf.height}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, buf)
}

// Len returns the number of pooled buffers.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, b := range p.buckets {
		n += len(b)
	}
	return n
}
