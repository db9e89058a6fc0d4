package container

import "unsafe"

// SplayExamineFunc ranks ref against an opaque key carried in arg,
// following the usual three-way comparison sign convention.
type SplayExamineFunc func(ref *DRef, arg any) int

// SplayCompareFunc is a total order over two references.
type SplayCompareFunc func(a, b *DRef) int

// Splay is a threaded top-down splay tree. It reuses DRef but tags
// nil-in-spirit child slots with a thread: the low bit of the pointer
// marks it as a direct link to the in-order neighbor rather than a
// real child, so Walk stays O(log n) without a parent link. DRef's
// two-word alignment guarantees that bit is never part of a live
// address, but the tagged value is not a dereferenceable Go pointer
// until untagged; every use here untags before touching the pointee,
// and the node it tags always stays reachable through some other
// untagged link for the duration of the tag's existence.
type Splay struct {
	sentinel DRef
	compare  SplayCompareFunc
}

// NewSplay creates an empty splay tree using compare as the default
// comparator for Add/Remove.
func NewSplay(compare SplayCompareFunc) *Splay {
	s := &Splay{compare: compare}
	s.Init()
	return s
}

func isThread(ref *DRef) bool {
	return uintptr(unsafe.Pointer(ref))&1 != 0
}

func toThread(ref *DRef) *DRef {
	return (*DRef)(unsafe.Pointer(uintptr(unsafe.Pointer(ref)) | 1))
}

func fromThread(ref *DRef) *DRef {
	return (*DRef)(unsafe.Pointer(uintptr(unsafe.Pointer(ref)) &^ 1))
}

// Init prepares an empty splay tree.
func (s *Splay) Init() {
	s.sentinel.ref[0] = toThread(&s.sentinel)
}

// Head and Tail both return the sentinel; it cannot be dereferenced as
// an element.
func (s *Splay) Head() *DRef { return &s.sentinel }
func (s *Splay) Tail() *DRef { return &s.sentinel }

// Root returns the most recently accessed reference. Splay trees have
// no stable root: every Search or Add changes it.
func (s *Splay) Root() *DRef { return s.sentinel.ref[0] }

// Empty reports whether the tree holds no elements.
func (s *Splay) Empty() bool { return isThread(s.Root()) }

func dive(ref *DRef, dir Direction) *DRef {
	for {
		tmp := ref.ref[dir]
		if isThread(tmp) {
			return ref
		}
		ref = tmp
	}
}

// Walk steps from ref in direction dir without moving any element,
// hence O(log n) rather than the O(1) amortized cost of List.Walk.
func (s *Splay) Walk(ref *DRef, dir Direction) *DRef {
	Precond(ref != nil, "walk from nil ref")

	if ref == &s.sentinel {
		root := s.Root()
		if isThread(root) {
			return ref
		}
		return dive(root, dir.Opposite())
	}
	if isThread(ref.ref[dir]) {
		return fromThread(ref.ref[dir])
	}
	return dive(ref.ref[dir], dir.Opposite())
}

// First returns the smallest element, or the sentinel if empty.
func (s *Splay) First() *DRef { return s.Walk(&s.sentinel, Next) }

// Last returns the greatest element, or the sentinel if empty.
func (s *Splay) Last() *DRef { return s.Walk(&s.sentinel, Prev) }

// Search walks from the root comparing with examine, restructuring
// every node on the path so the match (or, on a miss, the last node
// compared) becomes the new root. dir reports the direction a missing
// key would have been inserted at the returned node, for a follow-up
// Attach.
func (s *Splay) Search(examine SplayExamineFunc, arg any) (found *DRef, dir Direction) {
	top := s.Root()
	if isThread(top) {
		return nil, Next
	}

	var bak DRef
	lnk := [2]*DRef{&bak, &bak}
	opp := Prev
	dir = Next
	res := 1

	for {
		res = examine(top, arg)
		if res == 0 {
			break
		}
		if res < 0 {
			res = -1
		} else {
			res = 1
		}
		opp = Direction((res >> 1) & 1)
		dir = opp.Opposite()

		if isThread(top.ref[dir]) {
			break
		}

		if next := examine(top.ref[dir], arg); next != 0 && (next < 0) == (res < 0) {
			swp := top.ref[dir]
			if isThread(swp.ref[opp]) {
				top.ref[dir] = toThread(swp)
			} else {
				top.ref[dir] = swp.ref[opp]
			}
			swp.ref[opp] = top
			top = swp
			if isThread(top.ref[dir]) {
				break
			}
		}

		lnk[opp].ref[dir] = top
		lnk[opp] = top
		top = top.ref[dir]
	}

	if toThread(lnk[opp]) != top.ref[opp] {
		lnk[opp].ref[dir] = top.ref[opp]
	} else {
		lnk[opp].ref[dir] = toThread(top)
	}
	if toThread(lnk[dir]) != top.ref[dir] {
		lnk[dir].ref[opp] = top.ref[dir]
	} else {
		lnk[dir].ref[opp] = toThread(top)
	}
	top.ref[Prev] = bak.ref[Next]
	top.ref[Next] = bak.ref[Prev]

	s.sentinel.ref[0] = top

	if res != 0 {
		return nil, dir
	}
	return top, dir
}

func (s *Splay) examineDefault(ref *DRef, arg any) int {
	return s.compare(ref, arg.(*DRef))
}

// Attach inserts ref as the dir child of the current root and makes
// ref the new root. Callers locate where ref belongs with Search
// first; dir is the value Search returned when it found no match.
func (s *Splay) Attach(dir Direction, ref *DRef) *DRef {
	top := s.Root()

	if !isThread(top) {
		opp := dir.Opposite()
		tmp := top.ref[dir]
		ref.ref[opp] = top
		ref.ref[dir] = tmp
		top.ref[dir] = toThread(ref)
		if !isThread(tmp) {
			tmp = dive(tmp, opp)
			tmp.ref[opp] = toThread(ref)
		}
	} else {
		ref.ref[Next] = toThread(top)
		ref.ref[Prev] = toThread(top)
	}

	s.sentinel.ref[0] = ref
	return ref
}

// Add inserts ref using the tree's default comparator, or returns the
// pre-existing duplicate (now splayed to the root) unchanged.
func (s *Splay) Add(ref *DRef) *DRef {
	found, dir := s.Search(s.examineDefault, ref)
	if found != nil {
		return found
	}
	return s.Attach(dir, ref)
}

// Del removes the current root, splaying its in-order successor (the
// leftmost node of its right subtree) into its place, or promoting its
// sole child if it has fewer than two, and returns the removed
// reference.
func (s *Splay) Del() *DRef {
	Precond(!s.Empty(), "delete from an empty splay tree")

	var bak DRef
	lnk := [2]*DRef{&bak, &bak}
	top := s.Root()
	var ref, tmp *DRef

	switch {
	case isThread(top.ref[Prev]):
		ref = top.ref[Next]
		if !isThread(ref) {
			tmp = dive(ref, Prev)
			tmp.ref[Prev] = top.ref[Prev]
		}

	case isThread(top.ref[Next]):
		ref = top.ref[Prev]
		tmp = dive(ref, Next)
		tmp.ref[Next] = top.ref[Next]

	default:
		for ref = top.ref[Next]; !isThread(ref.ref[Prev]); ref = ref.ref[Prev] {
			tmp = ref.ref[Prev]
			if isThread(tmp.ref[Next]) {
				ref.ref[Prev] = toThread(tmp)
			} else {
				ref.ref[Prev] = tmp.ref[Next]
			}
			tmp.ref[Next] = ref
			ref = tmp
			if isThread(ref.ref[Prev]) {
				break
			}
			lnk[Next].ref[Prev] = ref
			lnk[Next] = ref
		}

		if toThread(lnk[Next]) != ref.ref[Next] {
			lnk[Next].ref[Prev] = ref.ref[Next]
		} else {
			lnk[Next].ref[Prev] = toThread(ref)
		}
		lnk[Prev].ref[Next] = ref.ref[Prev]
		ref.ref[Prev] = bak.ref[Next]
		ref.ref[Next] = bak.ref[Prev]

		ref.ref[Prev] = top.ref[Prev]
		tmp = dive(ref.ref[Prev], Next)
		tmp.ref[Next] = toThread(ref)
	}

	s.sentinel.ref[0] = ref
	return top
}

// Remove searches with examine and deletes the match, if any.
func (s *Splay) Remove(examine SplayExamineFunc, arg any) *DRef {
	found, _ := s.Search(examine, arg)
	if found != nil {
		s.Del()
	}
	return found
}
