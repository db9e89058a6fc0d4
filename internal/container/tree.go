package container

import "fmt"

// TRef is a tree reference: two child links indexed by Direction, a
// parent link, the direction under the parent, and a balance byte
// reused across disciplines (AVL: height delta in {-2,-1,0,1,2}; RB:
// color, RED=0/BLACK=1).
type TRef struct {
	top     *TRef
	ref     [2]*TRef
	dir     Direction
	balance int8
}

const (
	red   int8 = 0
	black int8 = 1
)

func hasChild(ref *TRef, dir Direction) bool { return ref.ref[dir] != nil }

// rotate is the single primitive shared by both balancing disciplines.
// It rotates r in direction dir, pivoting on its opp child, preserving
// the parent link, the direction-under-parent, and every balance field
// except the two the caller has already adjusted.
func rotate(r *TRef, dir, opp Direction) {
	p := r.ref[opp]
	q := p.ref[dir]

	if q != nil {
		q.top = r
		q.dir = opp
	}
	r.ref[opp] = q
	p.top = r.top
	r.top.ref[r.dir] = p
	r.top = p
	p.ref[dir] = r
	p.dir = r.dir
	r.dir = dir
}

// Discipline selects which balancing rules a Tree enforces.
type Discipline int

const (
	AVL Discipline = iota
	RedBlack
)

// CompareFunc is a total order over two references, following the
// usual three-way sign convention.
type CompareFunc func(a, b *TRef) int

// ExamineFunc ranks ref against an opaque key carried in arg. The tree
// guarantees it is never called with the head or tail sentinel.
type ExamineFunc func(ref *TRef, arg any) int

type treeOps interface {
	fixupInsert(t *Tree, ref *TRef)
	fixupRemove(t *Tree, top *TRef, dir Direction, old *TRef)
	check(t *Tree, ref *TRef, subtreeOut **TRef) int
}

// Tree is a self-balancing binary search tree supporting AVL and
// red-black disciplines behind one interface. head and tail bracket
// every real node in in-order order; root exists purely to give the
// topmost real node's ancestor chain a stable, discipline-neutral stop
// point for fix-up walks.
type Tree struct {
	head, tail, root TRef
	compare          CompareFunc
	ops              treeOps
}

// NewTree creates an empty tree under the given discipline, using
// compare as the default comparator for Add.
func NewTree(discipline Discipline, compare CompareFunc) *Tree {
	t := &Tree{compare: compare}
	switch discipline {
	case RedBlack:
		t.ops = rbOps{}
	default:
		t.ops = avlOps{}
	}
	t.init()
	return t
}

func (t *Tree) init() {
	t.head.top = &t.root
	t.head.ref[Prev] = nil
	t.head.ref[Next] = &t.tail
	t.head.dir = Prev
	t.head.balance = weightOf(Next)

	t.tail.top = &t.head
	t.tail.ref[Prev] = nil
	t.tail.ref[Next] = nil
	t.tail.dir = Next
	t.tail.balance = 0

	t.root.top = nil
	t.root.ref[Prev] = &t.head
	t.root.ref[Next] = nil
	t.root.dir = Next
	t.root.balance = 0
}

// Head returns the head sentinel; it cannot be dereferenced as an
// element.
func (t *Tree) Head() *TRef { return &t.head }

// Tail returns the tail sentinel; it cannot be dereferenced as an
// element.
func (t *Tree) Tail() *TRef { return &t.tail }

// Empty reports whether the tree holds no real nodes: the sentinels take
// part in rotations like any node, so the tree is empty exactly when one
// sentinel is the other's only child.
func (t *Tree) Empty() bool { return t.head.ref[Next] == &t.tail || t.tail.ref[Prev] == &t.head }

// Top returns the attachment point (top, dir) for an as-yet-unsearched
// key on an empty tree, matching the seed step of a from-scratch
// insertion sequence.
func (t *Tree) Top() (*TRef, Direction) {
	_, top, dir := t.search(func(*TRef, any) int { return 0 }, nil)
	return top, dir
}

// search walks from the root comparing with examine, redirecting
// direction at the sentinels so ordered walks terminate cleanly at the
// extremes (head forces Next, tail forces Prev). It returns the match
// if found, and otherwise the attachment point (top, dir) at which a
// missing key would be inserted.
func (t *Tree) search(examine ExamineFunc, arg any) (found, top *TRef, dir Direction) {
	top = &t.root
	dir = Prev
	for {
		ref := top.ref[dir]
		switch ref {
		case &t.head:
			dir = Next
		case &t.tail:
			dir = Prev
		default:
			result := examine(ref, arg)
			if result == 0 {
				return ref, top, dir
			}
			if result > 0 {
				dir = Prev
			} else {
				dir = Next
			}
		}
		top = ref
		if !hasChild(top, dir) {
			break
		}
	}
	return nil, top, dir
}

// Search finds a match and also returns the insertion point a missing
// key would occupy.
func (t *Tree) Search(examine ExamineFunc, arg any) (found, top *TRef, dir Direction) {
	return t.search(examine, arg)
}

func (t *Tree) examineDefault(ref *TRef, arg any) int {
	return t.compare(ref, arg.(*TRef))
}

// Insert attaches ref as the dir child of top and runs the discipline's
// post-add fix-up. Precondition: top has no child in dir.
func (t *Tree) Insert(top *TRef, dir Direction, ref *TRef) *TRef {
	Precond(top != nil && ref != nil, "nil argument to Insert")
	Precond(!hasChild(top, dir), "insertion point already occupied")

	opp := dir.Opposite()
	ref.top = top
	ref.ref[dir] = nil
	ref.ref[opp] = nil
	ref.dir = dir

	top.ref[dir] = ref

	t.ops.fixupInsert(t, ref)

	return ref
}

// Add inserts ref using the tree's default comparator, or returns the
// pre-existing duplicate unchanged.
func (t *Tree) Add(ref *TRef) *TRef {
	found, top, dir := t.search(t.examineDefault, ref)
	if found != nil {
		return found
	}
	return t.Insert(top, dir, ref)
}

// Remove searches with examine and deletes the match, if any.
func (t *Tree) Remove(examine ExamineFunc, arg any) *TRef {
	found, _, _ := t.search(examine, arg)
	if found != nil {
		t.Del(found)
	}
	return found
}

// Del performs standard BST removal, swapping in a successor or
// predecessor when ref has two children, and runs the discipline's
// post-remove fix-up.
func (t *Tree) Del(ref *TRef) *TRef {
	Precond(ref != nil, "nil argument to Del")

	dir := ref.dir
	top := ref.top

	switch {
	case !hasChild(ref, Prev):
		if hasChild(ref, Next) {
			tmp := ref.ref[Next]
			tmp.dir = dir
			tmp.top = top
			top.ref[dir] = tmp
		} else {
			top.ref[dir] = nil
		}
		t.ops.fixupRemove(t, top, dir, ref)
	case !hasChild(ref, Next):
		tmp := ref.ref[Prev]
		tmp.dir = dir
		tmp.top = top
		top.ref[dir] = tmp
		t.ops.fixupRemove(t, top, dir, ref)
	default:
		direction := Direction((int(ref.balance) + 1) >> 1)
		opposite := direction.Opposite()

		aux := ref.ref[opposite]
		if hasChild(aux, direction) {
			for hasChild(aux, direction) {
				aux = aux.ref[direction]
			}
			tmp := aux.top

			tmp.ref[direction] = aux.ref[opposite]
			if hasChild(tmp, direction) {
				tmp.ref[direction].top = tmp
				tmp.ref[direction].dir = direction
			}

			top.ref[dir] = aux
			aux.top = top
			aux.ref[opposite] = ref.ref[opposite]
			aux.ref[direction] = ref.ref[direction]
			aux.ref[opposite].top = aux
			aux.ref[direction].top = aux
			aux.dir = dir
			aux.balance, ref.balance = ref.balance, aux.balance

			t.ops.fixupRemove(t, tmp, direction, ref)
		} else {
			top.ref[dir] = aux
			aux.top = top
			aux.dir = dir
			aux.ref[direction] = ref.ref[direction]
			aux.ref[direction].top = aux
			aux.balance, ref.balance = ref.balance, aux.balance

			t.ops.fixupRemove(t, aux, opposite, ref)
		}
	}

	return ref
}

// Walk steps from ref in direction dir: descend to the extreme of the
// opposite direction under ref's dir-child if one exists, otherwise
// ascend through parents while parent_dir == dir, then hop once more.
// O(log n) worst case, O(1) amortized.
func (t *Tree) Walk(ref *TRef, dir Direction) *TRef {
	Precond(ref != nil, "walk from nil ref")

	if hasChild(ref, dir) {
		opp := dir.Opposite()
		ref = ref.ref[dir]
		for hasChild(ref, opp) {
			ref = ref.ref[opp]
		}
		return ref
	}

	for ref.dir == dir && ref != &t.root {
		ref = ref.top
	}
	return ref.top
}

// First returns the in-order minimum, or the tail sentinel when empty.
func (t *Tree) First() *TRef { return t.Walk(&t.head, Next) }

// Last returns the in-order maximum, or the head sentinel when empty.
func (t *Tree) Last() *TRef { return t.Walk(&t.tail, Prev) }

// Check audits the tree's integrity under its discipline, returning
// the offending subtree root (if any) wrapped in an error.
func (t *Tree) Check() (*TRef, error) {
	var bad *TRef
	if h := t.ops.check(t, t.root.ref[Prev], &bad); h < 0 {
		return bad, fmt.Errorf("tree: integrity violated at subtree rooted %p", bad)
	}
	return nil, nil
}
