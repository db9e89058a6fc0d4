package container

// SRef is a single forward link, the node type used by Deque.
type SRef struct {
	next *SRef
}

// Deque is a singly-linked list with a head and tail sentinel and a
// cached pointer to the reference whose forward link is the tail, so
// that appends remain O(1) without a backward link.
type Deque struct {
	head, tail SRef
	last       *SRef
}

// Init prepares an empty deque. A zero-value Deque must be initialized
// before use.
func (q *Deque) Init() {
	q.head.next = &q.tail
	q.tail.next = nil
	q.last = &q.head
}

// Empty reports whether the deque holds no elements.
func (q *Deque) Empty() bool { return q.head.next == &q.tail }

// Head returns the head sentinel; it is never a user element.
func (q *Deque) Head() *SRef { return &q.head }

// Tail returns the tail sentinel; it is never a user element.
func (q *Deque) Tail() *SRef { return &q.tail }

// First returns the first element, or the tail sentinel when empty.
func (q *Deque) First() *SRef { return q.head.next }

// Last returns the element preceding the tail, or the head sentinel when
// empty.
func (q *Deque) Last() *SRef {
	if q.Empty() {
		return &q.head
	}
	return q.last
}

// Walk steps from ref. Next follows the forward link in O(1); Prev
// scans from the head for ref's predecessor in O(n), by design —
// callers needing fast backward walk should use List instead.
func (q *Deque) Walk(ref *SRef, dir Direction) *SRef {
	Precond(ref != nil, "walk from nil ref")
	if dir == Next {
		return ref.next
	}
	return q.findBefore(ref)
}

func (q *Deque) findBefore(ref *SRef) *SRef {
	cur := &q.head
	for cur.next != ref {
		Precond(cur.next != nil, "ref not reachable in deque")
		cur = cur.next
	}
	return cur
}

// AddAfter inserts ref immediately after prev. Rejects inserting after
// the tail sentinel.
func (q *Deque) AddAfter(prev, ref *SRef) {
	Precond(prev != nil && ref != nil, "nil argument to AddAfter")
	Precond(prev != &q.tail, "cannot add after the tail sentinel")
	ref.next = prev.next
	prev.next = ref
	if prev == q.last {
		q.last = ref
	}
}

// DelAfter removes and returns the element following prev. Rejects
// removing the tail sentinel or removing past the end.
func (q *Deque) DelAfter(prev *SRef) *SRef {
	Precond(prev != nil, "nil argument to DelAfter")
	curr := prev.next
	Precond(curr != nil && curr != &q.tail, "cannot remove the tail sentinel")
	prev.next = curr.next
	if curr == q.last {
		q.last = prev
	}
	curr.next = nil
	return curr
}

// Add inserts ref before cur using an O(n) backward walk to find cur's
// predecessor.
func (q *Deque) Add(cur, ref *SRef) {
	q.AddAfter(q.findBefore(cur), ref)
}

// Del removes cur using an O(n) backward walk.
func (q *Deque) Del(cur *SRef) *SRef {
	return q.DelAfter(q.findBefore(cur))
}

// AddFirst inserts ref at the front.
func (q *Deque) AddFirst(ref *SRef) { q.AddAfter(&q.head, ref) }

// AddLast inserts ref at the back in O(1), using the last cache.
func (q *Deque) AddLast(ref *SRef) { q.AddAfter(q.last, ref) }

// DelFirst removes and returns the front element.
func (q *Deque) DelFirst() *SRef { return q.DelAfter(&q.head) }

// DelLast removes and returns the back element in O(n) (no backward
// link exists to avoid the walk).
func (q *Deque) DelLast() *SRef { return q.Del(q.last) }
