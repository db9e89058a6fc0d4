package container

import "testing"

func TestVectorAppendGrowAndDel(t *testing.T) {
	v := NewVector[int](0)
	for i := 0; i < 10; i++ {
		v.Append(i)
	}
	if v.Len() != 10 {
		t.Fatalf("Len() = %d, want 10", v.Len())
	}
	if v.Cap()&(v.Cap()-1) != 0 {
		t.Fatalf("Cap() = %d, want a power of two", v.Cap())
	}

	n := v.Del(2, 3)
	if n != 3 {
		t.Fatalf("Del() removed %d, want 3", n)
	}
	want := []int{0, 1, 5, 6, 7, 8, 9}
	got := v.ToSlice()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestVectorInsertAndRemoveAt(t *testing.T) {
	v := Of(1, 2, 4, 5)
	if !v.Insert(2, 3) {
		t.Fatalf("Insert failed")
	}
	if got := v.ToSlice(); got[2] != 3 {
		t.Fatalf("Insert placed wrong value: %v", got)
	}
	x, ok := v.RemoveAt(0)
	if !ok || x != 1 {
		t.Fatalf("RemoveAt(0) = %v, %v, want 1, true", x, ok)
	}
}

func TestVectorPopEmpty(t *testing.T) {
	v := NewVector[int](0)
	if _, ok := v.Pop(); ok {
		t.Fatalf("Pop on empty vector should report false")
	}
}

func TestVectorReverseAndSort(t *testing.T) {
	v := Of(3, 1, 2)
	v.Sort(func(a, b int) bool { return a < b })
	if got := v.ToSlice(); got[0] != 1 || got[2] != 3 {
		t.Fatalf("Sort: got %v", got)
	}
	v.Reverse()
	if got := v.ToSlice(); got[0] != 3 || got[2] != 1 {
		t.Fatalf("Reverse: got %v", got)
	}
}
