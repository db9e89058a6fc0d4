package container

// SetIndexFunc is notified whenever an item's backing slot changes
// during a heap mutation, so elements that need to know their own
// position (to support Touch/Extract by identity) can be kept current.
type SetIndexFunc[T any] func(item T, index int)

// Heap is a binary heap over a Vector. CompareFunc returns a value
// whose sign follows the usual three-way comparison convention;
// smaller results sort toward the root (so a min-heap uses a plain
// ascending comparator, and a max-heap reverses it).
type Heap[T any] struct {
	data     *Vector[T]
	compare  func(a, b T) int
	setIndex SetIndexFunc[T]
}

// NewHeap creates an empty heap ordered by compare. setIndex may be nil
// if the caller never needs Touch/Extract by tracked index.
func NewHeap[T any](compare func(a, b T) int, setIndex SetIndexFunc[T]) *Heap[T] {
	return &Heap[T]{data: NewVector[T](0), compare: compare, setIndex: setIndex}
}

// Len returns the number of items.
func (h *Heap[T]) Len() int { return h.data.Len() }

// IsEmpty reports whether the heap holds no items.
func (h *Heap[T]) IsEmpty() bool { return h.data.Len() == 0 }

// Top returns the most prioritary item without removing it.
func (h *Heap[T]) Top() (T, bool) { return h.data.Get(0) }

func (h *Heap[T]) set(i int, x T) {
	h.data.Set(i, x)
	if h.setIndex != nil {
		h.setIndex(x, i)
	}
}

// Push inserts x, notifies its index, and sifts up.
func (h *Heap[T]) Push(x T) {
	h.data.Append(x)
	i := h.data.Len() - 1
	if h.setIndex != nil {
		h.setIndex(x, i)
	}
	h.up(i)
}

// Pop removes and returns the top item, swapping the last item into the
// root and sifting down.
func (h *Heap[T]) Pop() (T, bool) {
	var zero T
	n := h.data.Len()
	if n == 0 {
		return zero, false
	}
	top, _ := h.data.Get(0)
	last, _ := h.data.Get(n - 1)
	h.data.Del(n-1, 1)
	if n > 1 {
		h.set(0, last)
		h.down(0)
	}
	return top, true
}

// Touch sifts the item at i up, for callers whose comparator value at i
// has decreased relative to its ancestors (gained priority).
func (h *Heap[T]) Touch(i int) { h.up(i) }

// Extract bubbles the item at i to the root and pops it, for removal of
// an arbitrary tracked item.
func (h *Heap[T]) Extract(i int) (T, bool) {
	for i > 0 {
		p := (i - 1) / 2
		h.swap(i, p)
		i = p
	}
	return h.Pop()
}

func (h *Heap[T]) swap(i, j int) {
	a, _ := h.data.Get(i)
	b, _ := h.data.Get(j)
	h.set(i, b)
	h.set(j, a)
}

func (h *Heap[T]) up(i int) {
	for i > 0 {
		p := (i - 1) / 2
		pv, _ := h.data.Get(p)
		iv, _ := h.data.Get(i)
		if h.compare(iv, pv) >= 0 {
			break
		}
		h.swap(i, p)
		i = p
	}
}

func (h *Heap[T]) down(i int) {
	n := h.data.Len()
	for {
		l, r := 2*i+1, 2*i+2
		smallest := i
		sv, _ := h.data.Get(smallest)
		if l < n {
			lv, _ := h.data.Get(l)
			if h.compare(lv, sv) < 0 {
				smallest, sv = l, lv
			}
		}
		if r < n {
			rv, _ := h.data.Get(r)
			if h.compare(rv, sv) < 0 {
				smallest = r
			}
		}
		if smallest == i {
			return
		}
		h.swap(i, smallest)
		i = smallest
	}
}
