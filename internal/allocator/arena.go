package allocator

import (
	"fmt"
	"unsafe"
)

// ArenaAllocator is a bump allocator: Allocate advances a cursor through a
// fixed backing buffer and Deallocate is a no-op, freeing only in bulk via
// Reset. It never returns memory to Reallocate's old pointer, matching the
// arena contract that individual allocations are never reclaimed.
type ArenaAllocator struct {
	cfg     *Config
	buffer  []byte
	current uintptr
	sizes   map[unsafe.Pointer]uintptr
}

// NewArenaAllocator creates an arena of the given size.
func NewArenaAllocator(size uintptr, opts ...Option) (*ArenaAllocator, error) {
	if size == 0 {
		return nil, fmt.Errorf("%w: arena size must be greater than 0", ErrInvalidSize)
	}
	cfg := &Config{alignment: unsafe.Sizeof(uintptr(0))}
	for _, opt := range opts {
		opt(cfg)
	}
	return &ArenaAllocator{cfg: cfg, buffer: make([]byte, size), sizes: make(map[unsafe.Pointer]uintptr)}, nil
}

func (a *ArenaAllocator) Allocate(size uintptr) (unsafe.Pointer, error) {
	if size == 0 {
		return nil, ErrInvalidSize
	}
	aligned := alignUp(a.current, a.cfg.alignment)
	n := alignUp(size, a.cfg.alignment)
	if aligned+n > uintptr(len(a.buffer)) {
		return nil, fmt.Errorf("%w: arena exhausted, %d of %d bytes used", ErrOutOfMemory, aligned, len(a.buffer))
	}
	ptr := unsafe.Pointer(&a.buffer[aligned])
	a.current = aligned + n
	a.sizes[ptr] = size
	return ptr, nil
}

// Reallocate always grows into fresh arena space; only the bytes the old
// allocation actually held are copied, never the new (larger) size, since
// copying the new size would read past the old allocation into whatever
// arena bytes happen to follow it.
func (a *ArenaAllocator) Reallocate(ptr unsafe.Pointer, size uintptr) (unsafe.Pointer, error) {
	if ptr == nil {
		return a.Allocate(size)
	}
	if size == 0 {
		return nil, nil
	}
	old := a.sizes[ptr]
	next, err := a.Allocate(size)
	if err != nil {
		return nil, err
	}
	if old > size {
		old = size
	}
	copyMemory(next, ptr, old)
	return next, nil
}

// Deallocate is a no-op: an arena only frees in bulk, via Reset.
func (a *ArenaAllocator) Deallocate(ptr unsafe.Pointer) {}

// Reset rewinds the arena, making its whole backing buffer available
// again. Every previously returned pointer becomes invalid.
func (a *ArenaAllocator) Reset() { a.current = 0 }

// Used reports how many bytes of the arena are currently spoken for.
func (a *ArenaAllocator) Used() uintptr { return a.current }

// Capacity reports the arena's total size.
func (a *ArenaAllocator) Capacity() uintptr { return uintptr(len(a.buffer)) }
