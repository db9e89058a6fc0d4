// Package allocator provides an allocator capability interface, a
// system and an arena implementation of it, and a pool allocator for
// callers wanting fixed-size object recycling. It is single-threaded,
// matching package container: a caller needing concurrent access must
// serialize it themselves.
package allocator

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Allocator is the capability surface every allocator in this package
// presents. Allocate and Reallocate return an error rather than a nil
// pointer so a caller can distinguish "out of memory" from "zero-size
// request" without inspecting the pointer.
type Allocator interface {
	Allocate(size uintptr) (unsafe.Pointer, error)
	Reallocate(ptr unsafe.Pointer, size uintptr) (unsafe.Pointer, error)
	Deallocate(ptr unsafe.Pointer)
}

// ErrOutOfMemory wraps a resource failure from the underlying system
// allocator.
var ErrOutOfMemory = errors.New("allocator: out of memory")

// ErrInvalidSize wraps a zero-size allocation request.
var ErrInvalidSize = errors.New("allocator: invalid size")

// Config configures a SystemAllocator. Constructors start from a
// non-zero default alignment; options override individual fields.
type Config struct {
	alignment uintptr
}

// Option configures a SystemAllocator at construction time.
type Option func(*Config)

func defaultConfig() *Config {
	return &Config{alignment: uintptr(pageSize())}
}

// WithAlignment overrides the allocator's alignment granularity,
// rounded up internally to the next power of two.
func WithAlignment(alignment uintptr) Option {
	return func(c *Config) {
		if alignment == 0 {
			return
		}
		a := uintptr(1)
		for a < alignment {
			a <<= 1
		}
		c.alignment = a
	}
}

func pageSize() int {
	n := unix.Getpagesize()
	if n <= 0 {
		return 4096
	}
	return n
}

// SystemAllocator is the allocator of last resort: every request is
// rounded up to the configured alignment and served from a fresh Go
// slice, tracked by size so Reallocate/Deallocate know how much to
// copy or simply forget.
type SystemAllocator struct {
	cfg   *Config
	sizes map[unsafe.Pointer]uintptr
}

// NewSystemAllocator creates a SystemAllocator.
func NewSystemAllocator(opts ...Option) *SystemAllocator {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &SystemAllocator{cfg: cfg, sizes: make(map[unsafe.Pointer]uintptr)}
}

func (a *SystemAllocator) Allocate(size uintptr) (unsafe.Pointer, error) {
	if size == 0 {
		return nil, ErrInvalidSize
	}
	n := alignUp(size, a.cfg.alignment)
	ptr := systemAlloc(n)
	if ptr == nil {
		return nil, fmt.Errorf("%w: requested %d bytes", ErrOutOfMemory, n)
	}
	a.sizes[ptr] = n
	return ptr, nil
}

func (a *SystemAllocator) Reallocate(ptr unsafe.Pointer, size uintptr) (unsafe.Pointer, error) {
	if ptr == nil {
		return a.Allocate(size)
	}
	if size == 0 {
		a.Deallocate(ptr)
		return nil, nil
	}

	old, tracked := a.sizes[ptr]
	n := alignUp(size, a.cfg.alignment)
	if tracked && n <= old {
		return ptr, nil
	}

	next, err := a.Allocate(size)
	if err != nil {
		return nil, err
	}
	if tracked {
		copyMemory(next, ptr, old)
	}
	a.Deallocate(ptr)
	return next, nil
}

func (a *SystemAllocator) Deallocate(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	delete(a.sizes, ptr)
	systemFree(ptr)
}

// systemAlloc allocates size bytes from Go's own allocator. size is
// already rounded to alignment by the caller.
func systemAlloc(size uintptr) unsafe.Pointer {
	if size == 0 {
		return nil
	}
	slice := make([]byte, size)
	runtime.KeepAlive(slice)
	return unsafe.Pointer(&slice[0])
}

// systemFree is a no-op: Go's GC reclaims the backing array once
// nothing (including any pool chunk built on top of it) still
// references it.
func systemFree(ptr unsafe.Pointer) {}

func alignUp(size, alignment uintptr) uintptr {
	return (size + alignment - 1) &^ (alignment - 1)
}

func copyMemory(dst, src unsafe.Pointer, size uintptr) {
	dstSlice := unsafe.Slice((*byte)(dst), size)
	srcSlice := unsafe.Slice((*byte)(src), size)
	copy(dstSlice, srcSlice)
}
