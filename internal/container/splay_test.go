package container

import (
	"testing"
	"unsafe"
)

type splayItem struct {
	ref DRef
	key int
}

func splayItemOf(ref *DRef) *splayItem { return ElementOf[splayItem](unsafe.Pointer(ref)) }

func compareSplayItems(a, b *DRef) int { return splayItemOf(a).key - splayItemOf(b).key }

func examineSplayKey(key int) SplayExamineFunc {
	return func(ref *DRef, _ any) int { return splayItemOf(ref).key - key }
}

func splayInOrderKeys(s *Splay) []int {
	var out []int
	for ref := s.First(); ref != s.Tail(); ref = s.Walk(ref, Next) {
		out = append(out, splayItemOf(ref).key)
	}
	return out
}

func TestSplayRoundTripScenario(t *testing.T) {
	s := NewSplay(compareSplayItems)
	keys := []int{5, 3, 8, 1, 4, 7, 9, 2, 6, 0}
	items := map[int]*splayItem{}
	for _, k := range keys {
		it := &splayItem{key: k}
		items[k] = it
		if got := s.Add(&it.ref); got != &it.ref {
			t.Fatalf("unexpected duplicate for key %d", k)
		}
	}

	got := splayInOrderKeys(s)
	if len(got) != len(keys) {
		t.Fatalf("got %d keys, want %d", len(got), len(keys))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1] >= got[i] {
			t.Fatalf("not sorted: %v", got)
		}
	}

	found, _ := s.Search(examineSplayKey(7), nil)
	if found == nil || splayItemOf(found).key != 7 {
		t.Fatalf("Search(7) failed")
	}
	if s.Root() != found {
		t.Fatalf("Search should splay the match to the root")
	}

	for _, k := range []int{0, 9, 5, 4} {
		removed := s.Remove(examineSplayKey(k), nil)
		if removed == nil {
			t.Fatalf("key %d not found for removal", k)
		}
	}

	remaining := splayInOrderKeys(s)
	want := []int{1, 2, 3, 6, 7, 8}
	if len(remaining) != len(want) {
		t.Fatalf("got %v, want %v", remaining, want)
	}
	for i := range want {
		if remaining[i] != want[i] {
			t.Fatalf("got %v, want %v", remaining, want)
		}
	}
}

func TestSplayEmpty(t *testing.T) {
	s := NewSplay(compareSplayItems)
	if !s.Empty() {
		t.Fatalf("fresh splay tree should be empty")
	}
	if found, _ := s.Search(examineSplayKey(1), nil); found != nil {
		t.Fatalf("Search on empty tree should find nothing")
	}
}
