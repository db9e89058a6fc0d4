package container

import "unsafe"

// ElementOf recovers the element embedding ref as the first field of its
// struct. It mirrors the address-equals-first-field trick every
// container here relies on to stay intrusive rather than allocating
// node wrappers. Besides this file, only splay.go's thread tagging
// converts through unsafe.Pointer in this package.
//
// The caller is responsible for ensuring ref really was obtained from a
// container storing *T elements; there is no runtime tag to check.
func ElementOf[T any](ref unsafe.Pointer) *T {
	return (*T)(ref)
}

// RefOf returns the address of elem's embedded link, assuming the link
// type L is the first field of T. It is the inverse of ElementOf.
func RefOf[L any, T any](elem *T) *L {
	return (*L)(unsafe.Pointer(elem))
}

// ElementOfOffset recovers the element embedding ref at the given byte
// offset from the element's address, for elements that embed more
// than one link — one container's link can be the first field and use
// ElementOf, but any others need their offset named explicitly, the
// same way b6_cast_of takes a field name instead of assuming it is
// first.
func ElementOfOffset[T any](ref unsafe.Pointer, offset uintptr) *T {
	return (*T)(unsafe.Pointer(uintptr(ref) - offset))
}
