package allocator

import (
	"fmt"
	"unsafe"

	"github.com/orizon-lang/b6container/internal/container"
)

// chunk is one fixed-size arena carved out of the backing allocator. tref
// keys it into the pool's address-range tree (first field, so
// container.ElementOf recovers the chunk from a *container.TRef); dref
// threads it onto the pool's list of live chunks, and since it is not the
// first field, recovering the chunk from a *container.DRef goes through
// container.ElementOfOffset instead.
type chunk struct {
	tref     container.TRef
	dref     container.DRef
	buf      []byte
	slotSize uintptr
	capacity int
	used     int
	// stale mirrors pool.c's chunk->flag: it is true whenever used==0.
	// Put retires a stale chunk at once unless it is the current one;
	// Get does not consult it.
	stale bool
}

var chunkDRefOffset = unsafe.Offsetof(chunk{}.dref)

func chunkOf(ref *container.TRef) *chunk {
	return container.ElementOf[chunk](unsafe.Pointer(ref))
}

func chunkOfDRef(ref *container.DRef) *chunk {
	return container.ElementOfOffset[chunk](unsafe.Pointer(ref), chunkDRefOffset)
}

func (c *chunk) start() uintptr { return uintptr(unsafe.Pointer(&c.buf[0])) }
func (c *chunk) end() uintptr   { return c.start() + uintptr(len(c.buf)) }

// slot returns the i'th slot's address within the chunk's buffer.
func (c *chunk) slot(i int) unsafe.Pointer {
	return unsafe.Pointer(&c.buf[uintptr(i)*c.slotSize])
}

// Pool is a chunked fixed-size object allocator. It hands out slotSize-byte
// objects carved from chunkSize backing allocations, tracking chunks in a
// container.Tree keyed by address range (O(log C) pointer-to-chunk lookup,
// C the chunk count) and recycling freed slots through a container.Deque of
// reinterpreted container.SRef nodes overlaid directly on the freed memory,
// exactly as original_source/src/pool.c's free-list-via-freed-memory trick
// does. A single spare chunk header is cached across Get/Put cycles so the
// common case of releasing one chunk and immediately needing another avoids
// a round trip through the backing allocator.
type Pool struct {
	slotSize  uintptr
	chunkSize uintptr
	backing   Allocator

	tree   *container.Tree
	chunks container.List
	queue  container.Deque

	curr *chunk
	next int // index of curr's next never-yet-used slot

	free *chunk // cached spare chunk header, reusable without reallocating
}

// PoolOption configures a Pool at construction time.
type PoolOption func(*poolConfig)

type poolConfig struct {
	chunkSize uintptr
	backing   Allocator
}

// WithChunkSize overrides the number of bytes carved from the backing
// allocator per chunk. The default doubles the system page size, rounded
// up to hold at least one slot, mirroring b6_pool_initialize's sizing.
func WithChunkSize(n uintptr) PoolOption {
	return func(c *poolConfig) { c.chunkSize = n }
}

// WithUpstream overrides the allocator chunks are carved from. The default
// is a SystemAllocator, but any Allocator works. Pool itself does not
// implement Allocator, so one Pool cannot back another.
func WithUpstream(a Allocator) PoolOption {
	return func(c *poolConfig) { c.backing = a }
}

// NewPool creates a pool handing out size-byte objects.
func NewPool(size uintptr, opts ...PoolOption) (*Pool, error) {
	if size == 0 {
		return nil, fmt.Errorf("%w: slot size must be greater than 0", ErrInvalidSize)
	}

	cfg := &poolConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	slotSize := alignUp(size, unsafe.Sizeof(uintptr(0)))

	if cfg.chunkSize == 0 {
		page := uintptr(pageSize())
		cfg.chunkSize = page * 2
		for cfg.chunkSize < slotSize {
			cfg.chunkSize *= 2
		}
	} else if cfg.chunkSize < slotSize {
		return nil, fmt.Errorf("%w: chunk size %d cannot hold even one %d-byte slot", ErrInvalidSize, cfg.chunkSize, slotSize)
	}
	if cfg.backing == nil {
		cfg.backing = NewSystemAllocator()
	}

	p := &Pool{
		slotSize:  slotSize,
		chunkSize: cfg.chunkSize,
		backing:   cfg.backing,
		tree:      container.NewTree(container.AVL, compareChunks),
	}
	p.chunks.Init()
	p.queue.Init()
	return p, nil
}

func compareChunks(a, b *container.TRef) int {
	ca, cb := chunkOf(a), chunkOf(b)
	switch {
	case ca.start() < cb.start():
		return -1
	case ca.start() > cb.start():
		return 1
	default:
		return 0
	}
}

// examineAddr ranks a tree node's chunk against addr: 0 if addr falls
// within it, a sign pointing toward the half of the tree that might
// contain it otherwise. Shared by chunk insertion (addr = the new chunk's
// start) and pointer-to-chunk lookup in Get/Put; chunk removal goes
// through Tree.Del directly.
func examineAddr(addr uintptr) container.ExamineFunc {
	return func(ref *container.TRef, _ any) int {
		c := chunkOf(ref)
		switch {
		case addr < c.start():
			return 1
		case addr >= c.end():
			return -1
		default:
			return 0
		}
	}
}

func (p *Pool) findChunk(addr uintptr) *chunk {
	found, _, _ := p.tree.Search(examineAddr(addr), nil)
	if found == nil {
		return nil
	}
	return chunkOf(found)
}

// allocateChunk produces a chunk ready to serve slots, reusing the cached
// spare header if one is available (matching allocate_chunk's single-item
// cache), otherwise carving a fresh buffer from the backing allocator.
func (p *Pool) allocateChunk() (*chunk, error) {
	if p.free != nil {
		c := p.free
		p.free = nil
		return c, nil
	}

	ptr, err := p.backing.Allocate(p.chunkSize)
	if err != nil {
		return nil, err
	}
	buf := unsafe.Slice((*byte)(ptr), p.chunkSize)

	c := &chunk{
		buf:      buf,
		slotSize: p.slotSize,
		capacity: int(p.chunkSize / p.slotSize),
		stale:    true,
	}
	return c, nil
}

func (p *Pool) insertionPoint(c *chunk) (*container.TRef, container.Direction, *container.TRef) {
	_, top, dir := p.tree.Search(examineAddr(c.start()), nil)
	return top, dir, &c.tref
}

func (p *Pool) initializeChunk(c *chunk) {
	c.used = 0
	c.stale = true
	p.chunks.AddFirst(&c.dref)
	p.tree.Insert(p.insertionPoint(c))
}

// purgeQueue drops every free-queue entry still pointing into c. Without
// this, a chunk's buffer cached as the spare header and reinitialized in
// place would make those dangling entries look valid again, double-booking
// their slots against whatever the bump allocator hands out next.
func (p *Pool) purgeQueue(c *chunk) {
	prev := p.queue.Head()
	cur := p.queue.Walk(prev, container.Next)
	for cur != p.queue.Tail() {
		next := p.queue.Walk(cur, container.Next)
		addr := uintptr(unsafe.Pointer(cur))
		if addr >= c.start() && addr < c.end() {
			p.queue.DelAfter(prev)
		} else {
			prev = cur
		}
		cur = next
	}
}

// finalizeChunk retires c, caching its header as the one spare (matching
// release_chunk) or, if a spare is already cached, returning its buffer to
// the backing allocator.
func (p *Pool) finalizeChunk(c *chunk) {
	p.chunks.Del(&c.dref)
	p.tree.Del(&c.tref)
	p.purgeQueue(c)

	if p.free == nil {
		p.free = c
		return
	}
	p.backing.Deallocate(unsafe.Pointer(&c.buf[0]))
}

// Get returns a slotSize-byte object, most-recently-freed slot first: it
// pops the free queue's front (LIFO with Put's AddFirst), discarding
// entries whose chunk is no longer in the tree; failing that it falls
// back to bump-allocating from the current chunk, growing a new one once
// it is exhausted. Get reclaims no chunks itself: Put retires a chunk as
// soon as it goes fully idle, unless it is the current chunk.
func (p *Pool) Get() (unsafe.Pointer, error) {
	for !p.queue.Empty() {
		sref := p.queue.DelFirst()
		ptr := unsafe.Pointer(sref)
		c := p.findChunk(uintptr(ptr))
		if c == nil {
			// Belonged to a chunk reclaimed while still in the queue; discard.
			continue
		}
		c.used++
		c.stale = c.used == 0
		return ptr, nil
	}

	if p.curr == nil || p.next >= p.curr.capacity {
		c, err := p.allocateChunk()
		if err != nil {
			return nil, err
		}
		p.initializeChunk(c)
		p.curr = c
		p.next = 0
	}

	ptr := p.curr.slot(p.next)
	p.next++
	p.curr.used++
	p.curr.stale = false
	return ptr, nil
}

// Put returns ptr to the pool. The freed bytes are reinterpreted as a
// container.SRef and pushed onto the front of the free queue — LIFO, so
// the next Get returns this same slot first — exactly as
// original_source/src/pool.c's b6_deque_add_first/b6_deque_del_first pair
// overlays struct b6_sref on freed memory rather than allocating a
// separate free-list node.
func (p *Pool) Put(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}

	c := p.findChunk(uintptr(ptr))
	if c == nil {
		return
	}
	c.used--
	c.stale = c.used == 0

	sref := (*container.SRef)(ptr)
	*sref = container.SRef{}
	p.queue.AddFirst(sref)

	if c.stale && c != p.curr {
		p.finalizeChunk(c)
	}
}

// Close releases every chunk still held by the pool, including the cached
// spare header, back to the backing allocator.
func (p *Pool) Close() {
	for !p.chunks.Empty() {
		c := chunkOfDRef(p.chunks.First())
		p.chunks.Del(&c.dref)
		p.tree.Del(&c.tref)
		p.backing.Deallocate(unsafe.Pointer(&c.buf[0]))
	}
	p.curr = nil
	p.next = 0

	if p.free != nil {
		p.backing.Deallocate(unsafe.Pointer(&p.free.buf[0]))
		p.free = nil
	}
}

// Stats is a snapshot of a pool's current chunk and free-queue occupancy.
type Stats struct {
	SlotSize  uintptr
	ChunkSize uintptr
	Chunks    int
	FreeQueue int
}

func (p *Pool) Stats() Stats {
	chunks := 0
	for ref := p.chunks.First(); ref != p.chunks.Head(); ref = p.chunks.Walk(ref, container.Next) {
		chunks++
	}
	free := 0
	for ref := p.queue.First(); ref != p.queue.Tail(); ref = p.queue.Walk(ref, container.Next) {
		free++
	}
	return Stats{SlotSize: p.slotSize, ChunkSize: p.chunkSize, Chunks: chunks, FreeQueue: free}
}
