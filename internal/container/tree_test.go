package container

import (
	"testing"
	"unsafe"
)

type treeItem struct {
	ref TRef
	key int
}

func treeItemOf(ref *TRef) *treeItem { return ElementOf[treeItem](unsafe.Pointer(ref)) }

func compareTreeItems(a, b *TRef) int { return treeItemOf(a).key - treeItemOf(b).key }

func examineTreeKey(key int) ExamineFunc {
	return func(ref *TRef, _ any) int { return treeItemOf(ref).key - key }
}

func inOrderKeys(t *Tree) []int {
	var out []int
	for ref := t.First(); ref != t.Tail(); ref = t.Walk(ref, Next) {
		out = append(out, treeItemOf(ref).key)
	}
	return out
}

func testTreeInsertsSorted(t *testing.T, discipline Discipline, keys []int) *Tree {
	tr := NewTree(discipline, compareTreeItems)
	for _, k := range keys {
		it := &treeItem{key: k}
		if existing := tr.Add(&it.ref); existing != &it.ref {
			t.Fatalf("unexpected duplicate for key %d", k)
		}
		if bad, err := tr.Check(); err != nil {
			t.Fatalf("integrity violated after inserting %d at %p: %v", k, bad, err)
		}
	}
	got := inOrderKeys(tr)
	for i := 1; i < len(got); i++ {
		if got[i-1] >= got[i] {
			t.Fatalf("not sorted: %v", got)
		}
	}
	if len(got) != len(keys) {
		t.Fatalf("got %d keys, want %d", len(got), len(keys))
	}
	return tr
}

func TestAVLRebalanceScenario(t *testing.T) {
	// Ascending insertion forces a worst-case rotation cascade under AVL.
	testTreeInsertsSorted(t, AVL, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
}

func TestRBRecolorScenario(t *testing.T) {
	// Ascending insertion exercises red-uncle recoloring and rotations.
	testTreeInsertsSorted(t, RedBlack, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
}

func testTreeRemoval(t *testing.T, discipline Discipline) {
	tr := NewTree(discipline, compareTreeItems)
	items := map[int]*treeItem{}
	for _, k := range []int{5, 3, 8, 1, 4, 7, 9, 2, 6, 0} {
		it := &treeItem{key: k}
		items[k] = it
		tr.Add(&it.ref)
	}

	for _, k := range []int{1, 8, 5, 0, 9} {
		found := tr.Remove(examineTreeKey(k), nil)
		if found == nil {
			t.Fatalf("key %d not found for removal", k)
		}
		if bad, err := tr.Check(); err != nil {
			t.Fatalf("integrity violated after removing %d at %p: %v", k, bad, err)
		}
	}

	got := inOrderKeys(tr)
	want := []int{2, 3, 4, 6, 7}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestAVLRemoval(t *testing.T) { testTreeRemoval(t, AVL) }
func TestRBRemoval(t *testing.T)  { testTreeRemoval(t, RedBlack) }

func TestTreeEmptyAndAddDuplicate(t *testing.T) {
	tr := NewTree(AVL, compareTreeItems)
	if !tr.Empty() {
		t.Fatalf("fresh tree should be empty")
	}
	a := &treeItem{key: 1}
	b := &treeItem{key: 1}
	tr.Add(&a.ref)
	if tr.Empty() {
		t.Fatalf("tree with one node should not be empty")
	}
	if got := tr.Add(&b.ref); got != &a.ref {
		t.Fatalf("Add of duplicate key should return the existing node")
	}
}
