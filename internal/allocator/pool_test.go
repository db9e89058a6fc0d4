package allocator

import (
	"testing"
	"unsafe"
)

func TestPoolRecycleScenario(t *testing.T) {
	p, err := NewPool(8, WithChunkSize(64))
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	defer p.Close()

	const n = 8
	ptrs := make([]unsafe.Pointer, n)
	for i := range ptrs {
		ptr, err := p.Get()
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		ptrs[i] = ptr
	}

	for _, ptr := range ptrs {
		p.Put(ptr)
	}

	seen := map[unsafe.Pointer]bool{}
	for i := 0; i < n; i++ {
		ptr, err := p.Get()
		if err != nil {
			t.Fatalf("Get after recycle: %v", err)
		}
		seen[ptr] = true
	}
	if len(seen) != n {
		t.Fatalf("got %d distinct recycled slots, want %d", len(seen), n)
	}
	for _, ptr := range ptrs {
		if !seen[ptr] {
			t.Fatalf("pointer %p never recycled", ptr)
		}
	}
}

func TestPoolRecycleIsLIFO(t *testing.T) {
	p, err := NewPool(8, WithChunkSize(64))
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	defer p.Close()

	a, err := p.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	b, err := p.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	p.Put(a)
	p.Put(b)

	// b was freed most recently, so it must come back first.
	got, err := p.Get()
	if err != nil {
		t.Fatalf("Get after recycle: %v", err)
	}
	if got != b {
		t.Fatalf("Get() = %p, want %p (most-recently-freed slot)", got, b)
	}
	got, err = p.Get()
	if err != nil {
		t.Fatalf("Get after recycle: %v", err)
	}
	if got != a {
		t.Fatalf("Get() = %p, want %p", got, a)
	}
}

func TestPoolChunkSizeTooSmallRejected(t *testing.T) {
	if _, err := NewPool(64, WithChunkSize(32)); err == nil {
		t.Fatalf("expected an error when chunk size cannot hold one slot")
	}
}

func TestPoolChunkReclamationScenario(t *testing.T) {
	p, err := NewPool(8, WithChunkSize(64))
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	defer p.Close()

	const perChunk = 8 // chunkSize/slotSize with an 8-byte aligned slot
	first := make([]unsafe.Pointer, perChunk)
	for i := range first {
		ptr, err := p.Get()
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		first[i] = ptr
	}
	if got := p.Stats().Chunks; got != 1 {
		t.Fatalf("Chunks after filling the first chunk = %d, want 1", got)
	}

	// Force a second chunk to be allocated so the first is no longer current.
	second, err := p.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got := p.Stats().Chunks; got != 2 {
		t.Fatalf("Chunks after spilling into a second chunk = %d, want 2", got)
	}

	for _, ptr := range first {
		p.Put(ptr)
	}
	if got := p.Stats().Chunks; got != 1 {
		t.Fatalf("Chunks after the first chunk went fully idle = %d, want 1 (it should have been reclaimed)", got)
	}

	p.Put(second)
}
