package container

import "testing"

func TestHeapMinOrdering(t *testing.T) {
	h := NewHeap[int](func(a, b int) int { return a - b }, nil)
	for _, x := range []int{5, 3, 8, 1, 9, 2} {
		h.Push(x)
	}
	want := []int{1, 2, 3, 5, 8, 9}
	for _, w := range want {
		got, ok := h.Pop()
		if !ok || got != w {
			t.Fatalf("Pop() = %d, %v, want %d", got, ok, w)
		}
	}
	if _, ok := h.Pop(); ok {
		t.Fatalf("Pop() on empty heap should report false")
	}
}

func TestHeapExtractByIndex(t *testing.T) {
	type tracked struct {
		val   int
		index int
	}
	items := make([]*tracked, 0, 5)
	h := NewHeap[*tracked](
		func(a, b *tracked) int { return a.val - b.val },
		func(item *tracked, index int) { item.index = index },
	)
	for _, v := range []int{10, 20, 5, 7, 30} {
		it := &tracked{val: v}
		items = append(items, it)
		h.Push(it)
	}

	target := items[4] // val 30
	if _, ok := h.Extract(target.index); !ok {
		t.Fatalf("Extract failed")
	}

	var got []int
	for h.Len() > 0 {
		x, _ := h.Pop()
		got = append(got, x.val)
	}
	want := []int{5, 7, 10, 20}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
