package containers

import (
	"reflect"
	"unsafe"
)

// noescape hides a pointer from escape analysis. It is the identity function,
// but escape analysis does not think the output depends on the input.
// Noescape is inlined and currently compiles down to zero instructions.
// USE CAREFULLY!
// This was copied from the runtime; see issues 23382 and 7921 (github.com/golang/go).
//
//go:nosplit
//go:nocheckptr
func noescape(p unsafe.Pointer) unsafe.Pointer {
	x := uintptr(p)
	return unsafe.Pointer(x ^ 0) //nolint:govet,staticcheck,gosec // copied from the standard library
}

// copyCheck records self as the address of a container on first use, and panics
// if the container was since copied by value. Only mutations check: copies made
// to compare or hash a container are harmless.
func copyCheck[T any](addr **T, self *T) {
	if *addr == nil {
		// This hack works around a failing of Go's escape analysis
		// that was causing self to escape and be heap-allocated.
		// See issue 23382 (github.com/golang/go).
		*addr = (*T)(noescape(unsafe.Pointer(self)))
	} else if *addr != self {
		panic("containers: illegal use of non-zero " + reflect.TypeFor[T]().String() + " copied by value")
	}
}
