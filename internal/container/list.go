package container

// DRef is a two-way link indexed by Direction, the node type used by
// List and, with its low bit repurposed as a thread tag, by Splay.
type DRef struct {
	ref [2]*DRef
}

// List is a doubly-linked circular list with a single sentinel. An
// empty list has its sentinel pointing to itself in both directions.
type List struct {
	sentinel DRef
}

// Init prepares an empty list.
func (l *List) Init() {
	l.sentinel.ref[Prev] = &l.sentinel
	l.sentinel.ref[Next] = &l.sentinel
}

// Empty reports whether the list holds no elements.
func (l *List) Empty() bool { return l.sentinel.ref[Next] == &l.sentinel }

// Head and Tail both return the sentinel; walks that reach it stop
// there rather than returning an absent value.
func (l *List) Head() *DRef { return &l.sentinel }
func (l *List) Tail() *DRef { return &l.sentinel }

// First returns the first element, or the sentinel when empty.
func (l *List) First() *DRef { return l.sentinel.ref[Next] }

// Last returns the last element, or the sentinel when empty.
func (l *List) Last() *DRef { return l.sentinel.ref[Prev] }

// Walk steps from ref in direction dir.
func (l *List) Walk(ref *DRef, dir Direction) *DRef {
	Precond(ref != nil, "walk from nil ref")
	return ref.ref[dir]
}

// Add inserts ref immediately before next.
func (l *List) Add(next, ref *DRef) {
	Precond(next != nil && ref != nil, "nil argument to Add")
	prev := next.ref[Prev]
	ref.ref[Prev] = prev
	ref.ref[Next] = next
	prev.ref[Next] = ref
	next.ref[Prev] = ref
}

// Del unlinks ref. Rejects the sentinel.
func (l *List) Del(ref *DRef) {
	Precond(ref != nil && ref != &l.sentinel, "cannot remove the sentinel")
	prev, next := ref.ref[Prev], ref.ref[Next]
	prev.ref[Next] = next
	next.ref[Prev] = prev
	ref.ref[Prev] = nil
	ref.ref[Next] = nil
}

// AddFirst inserts ref at the front.
func (l *List) AddFirst(ref *DRef) { l.Add(l.First(), ref) }

// AddLast inserts ref at the back.
func (l *List) AddLast(ref *DRef) { l.Add(&l.sentinel, ref) }

// DelFirst removes and returns the first element.
func (l *List) DelFirst() *DRef {
	ref := l.First()
	l.Del(ref)
	return ref
}

// DelLast removes and returns the last element.
func (l *List) DelLast() *DRef {
	ref := l.Last()
	l.Del(ref)
	return ref
}
