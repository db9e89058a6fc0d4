package container

import "sort"

// MoveFunc relocates n elements of dst starting at dstIndex from src
// starting at srcIndex. The default mover is a plain copy(); callers
// whose element type needs non-trivial relocation (for example an
// element embedding a link elsewhere that must be re-pointed) can
// override it via WithMover.
type MoveFunc[T any] func(dst []T, dstIndex int, src []T, srcIndex int, n int)

func defaultMove[T any](dst []T, dstIndex int, src []T, srcIndex int, n int) {
	copy(dst[dstIndex:dstIndex+n], src[srcIndex:srcIndex+n])
}

// Vector is a dynamic array with power-of-two growth. Zero value is
// ready to use with the default mover; use NewVector or WithMover for a
// custom one.
type Vector[T any] struct {
	buf  []T
	move MoveFunc[T]
}

// VectorOption configures a Vector at construction time.
type VectorOption[T any] func(*Vector[T])

// WithMover overrides the element relocation callback.
func WithMover[T any](fn MoveFunc[T]) VectorOption[T] {
	return func(v *Vector[T]) { v.move = fn }
}

// NewVector creates a vector with an optional initial capacity hint.
func NewVector[T any](capHint int, opts ...VectorOption[T]) *Vector[T] {
	if capHint < 0 {
		capHint = 0
	}
	v := &Vector[T]{buf: make([]T, 0, capHint), move: defaultMove[T]}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Of constructs a vector from values.
func Of[T any](xs ...T) *Vector[T] {
	v := NewVector[T](len(xs))
	v.Append(xs...)
	return v
}

// NewFromSlice builds a vector from slice; if copySlice is true, the data is copied.
func NewFromSlice[T any](s []T, copySlice bool) *Vector[T] {
	if !copySlice {
		if s == nil {
			s = make([]T, 0)
		}
		return &Vector[T]{buf: s, move: defaultMove[T]}
	}
	v := NewVector[T](len(s))
	v.Append(s...)
	return v
}

func (v *Vector[T]) mover() MoveFunc[T] {
	if v.move == nil {
		return defaultMove[T]
	}
	return v.move
}

// Len returns the number of elements.
func (v *Vector[T]) Len() int { return len(v.buf) }

// Cap returns the underlying capacity.
func (v *Vector[T]) Cap() int { return cap(v.buf) }

// IsEmpty reports whether the vector has no elements.
func (v *Vector[T]) IsEmpty() bool { return len(v.buf) == 0 }

// growTo grows capacity to the smallest power of two >= n, starting at
// 2, detecting capacity overflow instead of wrapping silently.
func (v *Vector[T]) growTo(n int) error {
	if n <= cap(v.buf) {
		return nil
	}
	newCap := 2
	for newCap < n {
		next := newCap * 2
		if next <= newCap {
			return overflowf("vector capacity overflow growing past %d", newCap)
		}
		newCap = next
	}
	nb := make([]T, len(v.buf), newCap)
	v.mover()(nb, 0, v.buf, 0, len(v.buf))
	v.buf = nb
	return nil
}

// EnsureCapacity grows capacity to at least n, panicking only on
// arithmetic overflow (a resource failure, not a precondition: callers
// wanting the error should use growTo via Add).
func (v *Vector[T]) EnsureCapacity(n int) {
	if err := v.growTo(n); err != nil {
		panic(err)
	}
}

// Reserve ensures room for at least additional elements without reallocation.
func (v *Vector[T]) Reserve(additional int) {
	if additional <= 0 {
		return
	}
	v.EnsureCapacity(len(v.buf) + additional)
}

// ShrinkToFit trims capacity to current length. Shrinking is never
// automatic elsewhere.
func (v *Vector[T]) ShrinkToFit() {
	if len(v.buf) == cap(v.buf) {
		return
	}
	nb := make([]T, len(v.buf))
	v.mover()(nb, 0, v.buf, 0, len(v.buf))
	v.buf = nb
}

// Add grows the vector by n elements starting at index, clamping index
// to Len() if it is out of range, and returns the raw slot so the
// caller can fill it. Returns an error if the required capacity cannot
// be computed without overflow.
func (v *Vector[T]) Add(index, n int) ([]T, error) {
	if index > len(v.buf) {
		index = len(v.buf)
	}
	if n == 0 {
		return v.buf[index:index], nil
	}
	newLen := len(v.buf) + n
	if newLen < len(v.buf) {
		return nil, overflowf("vector length overflow adding %d elements", n)
	}
	if newLen > cap(v.buf) {
		if err := v.growTo(newLen); err != nil {
			return nil, err
		}
	}
	tail := len(v.buf) - index
	v.buf = v.buf[:newLen]
	if tail > 0 {
		v.mover()(v.buf, index+n, v.buf, index, tail)
	}
	return v.buf[index : index+n], nil
}

// Del removes n elements starting at index, returning the number
// actually removed. A no-op if index is past the end. Truncates in
// place without moving when n covers the rest of the vector.
func (v *Vector[T]) Del(index, n int) int {
	if n == 0 || index >= len(v.buf) {
		return 0
	}
	m := len(v.buf) - index
	if n >= m {
		n = m
	} else {
		v.mover()(v.buf, index, v.buf, index+n, m-n)
	}
	end := len(v.buf)
	var zero T
	for i := end - n; i < end; i++ {
		v.buf[i] = zero
	}
	v.buf = v.buf[:end-n]
	return n
}

// Append adds elements to the end.
func (v *Vector[T]) Append(xs ...T) {
	if len(xs) == 0 {
		return
	}
	slot, err := v.Add(len(v.buf), len(xs))
	if err != nil {
		panic(err)
	}
	copy(slot, xs)
}

// Push is an alias of Append for a single element.
func (v *Vector[T]) Push(x T) { v.Append(x) }

// Pop removes and returns the last element. Returns false if empty.
func (v *Vector[T]) Pop() (T, bool) {
	var zero T
	n := len(v.buf)
	if n == 0 {
		return zero, false
	}
	x := v.buf[n-1]
	v.Del(n-1, 1)
	return x, true
}

// Get returns the element at index i. Returns false if out of range.
func (v *Vector[T]) Get(i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(v.buf) {
		return zero, false
	}
	return v.buf[i], true
}

// Set sets the element at index i. Returns false if out of range.
func (v *Vector[T]) Set(i int, x T) bool {
	if i < 0 || i >= len(v.buf) {
		return false
	}
	v.buf[i] = x
	return true
}

// At panics if out of range. Prefer Get for safe reads.
func (v *Vector[T]) At(i int) T { return v.buf[i] }

// ToSlice returns a copy of the underlying slice to prevent external mutation.
func (v *Vector[T]) ToSlice() []T {
	out := make([]T, len(v.buf))
	copy(out, v.buf)
	return out
}

// UnsafeSlice exposes the underlying slice for performance-sensitive paths.
func (v *Vector[T]) UnsafeSlice() []T { return v.buf }

// Clear removes all elements, keeping capacity.
func (v *Vector[T]) Clear() { v.Del(0, len(v.buf)) }

// Insert inserts x at position i. Returns false if i is out of range.
func (v *Vector[T]) Insert(i int, x T) bool {
	if i < 0 || i > len(v.buf) {
		return false
	}
	slot, err := v.Add(i, 1)
	if err != nil {
		panic(err)
	}
	slot[0] = x
	return true
}

// InsertAll inserts xs starting at i.
func (v *Vector[T]) InsertAll(i int, xs ...T) bool {
	if i < 0 || i > len(v.buf) || len(xs) == 0 {
		return i >= 0 && i <= len(v.buf)
	}
	slot, err := v.Add(i, len(xs))
	if err != nil {
		panic(err)
	}
	copy(slot, xs)
	return true
}

// RemoveAt removes element at index i, returning it and true, or zero,false if out of range.
func (v *Vector[T]) RemoveAt(i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(v.buf) {
		return zero, false
	}
	x := v.buf[i]
	v.Del(i, 1)
	return x, true
}

// RemoveRange removes [from,to). Returns false if indices invalid.
func (v *Vector[T]) RemoveRange(from, to int) bool {
	if from < 0 || to < from || to > len(v.buf) {
		return false
	}
	v.Del(from, to-from)
	return true
}

// RemoveIf removes elements satisfying pred, returns number removed.
func (v *Vector[T]) RemoveIf(pred func(T) bool) int {
	out := v.buf[:0]
	removed := 0
	for _, x := range v.buf {
		if pred(x) {
			removed++
			continue
		}
		out = append(out, x)
	}
	var zero T
	for i := len(out); i < len(v.buf); i++ {
		v.buf[i] = zero
	}
	v.buf = out
	return removed
}

// Swap swaps elements at i and j. Returns false if out of range.
func (v *Vector[T]) Swap(i, j int) bool {
	if i < 0 || j < 0 || i >= len(v.buf) || j >= len(v.buf) {
		return false
	}
	v.buf[i], v.buf[j] = v.buf[j], v.buf[i]
	return true
}

// Reverse reverses elements in place.
func (v *Vector[T]) Reverse() {
	for i, j := 0, len(v.buf)-1; i < j; i, j = i+1, j-1 {
		v.buf[i], v.buf[j] = v.buf[j], v.buf[i]
	}
}

// Sort sorts elements in-place using the provided less(a,b) comparator.
func (v *Vector[T]) Sort(less func(a, b T) bool) {
	sort.Slice(v.buf, func(i, j int) bool { return less(v.buf[i], v.buf[j]) })
}

// IndexOf returns the first index i where pred(v[i]) is true, or -1.
func (v *Vector[T]) IndexOf(pred func(T) bool) int {
	for i, x := range v.buf {
		if pred(x) {
			return i
		}
	}
	return -1
}

// Clone returns a copy of the vector.
func (v *Vector[T]) Clone() *Vector[T] { return NewFromSlice(v.ToSlice(), false) }
