package dynobject

import (
	"fmt"
	"reflect"

	"github.com/go-digitaltwin/go-dynobject/dispatch"
)

// A TypedHandle is a Handle known to refer to a W wrapping a T. It is the only
// way back from an erased Handle to the static payload type: every access to the
// payload goes through a checked downcast, so a TypedHandle built from a Handle
// of another type fails on first use (with a *TypeMismatchError) rather than at
// construction.
//
// TypedHandle embeds Handle, so it compares, hashes and prints like one, and its
// Handle field (or AsHandle) is the erased view.
type TypedHandle[T any, W Wrapper[T]] struct {
	Handle
}

// AtomHandle is a TypedHandle to an Atom.
type AtomHandle[T Atomic] = TypedHandle[T, *Atom[T]]

// CompoundHandle is a TypedHandle to a Compound.
type CompoundHandle[T any] = TypedHandle[T, *Compound[T]]

// Typed returns a typed view of h. The type is not checked until the payload is
// accessed.
func Typed[T any, W Wrapper[T]](h Handle) TypedHandle[T, W] {
	return TypedHandle[T, W]{Handle: h}
}

// NewAtom wraps v in a new Atom.
func NewAtom[T Atomic](v T) AtomHandle[T] {
	return AtomHandle[T]{Handle: NewHandle(&Atom[T]{v: v})}
}

// NewCompound wraps v in a new Compound. The payload is copied into the wrapper,
// so payloads that must not be copied after use (such as the containers package
// types) should be built in place with MakeCompound instead.
func NewCompound[T any](v T) CompoundHandle[T] {
	return CompoundHandle[T]{Handle: NewHandle(&Compound[T]{payload: v})}
}

// MakeCompound wraps the zero value of T in a new Compound. If T is a map, it is
// made, so the payload is ready for use.
func MakeCompound[T any]() CompoundHandle[T] {
	c := &Compound[T]{}
	if v := reflect.ValueOf(&c.payload).Elem(); v.Kind() == reflect.Map {
		v.Set(reflect.MakeMap(v.Type()))
	}
	return CompoundHandle[T]{Handle: NewHandle(c)}
}

// Wrapper returns the wrapper the handle refers to. It fails with
// ErrUnsetHandle or a *TypeMismatchError.
func (h TypedHandle[T, W]) Wrapper() (W, error) {
	var zero W
	if h.v == nil {
		return zero, ErrUnsetHandle
	}
	w, ok := h.v.(W)
	if !ok {
		return zero, &TypeMismatchError{
			Want: fmt.Sprintf("%T", zero),
			Got:  fmt.Sprintf("%T", h.v),
		}
	}
	return w, nil
}

// Deref returns a reference to the payload. It fails with ErrUnsetHandle or a
// *TypeMismatchError.
func (h TypedHandle[T, W]) Deref() (*T, error) {
	w, err := h.Wrapper()
	if err != nil {
		return nil, err
	}
	return w.Payload(), nil
}

// MustDeref is like Deref but panics if the handle cannot be dereferenced.
func (h TypedHandle[T, W]) MustDeref() *T {
	p, err := h.Deref()
	if err != nil {
		panic(err)
	}
	return p
}

// Get returns a copy of the payload.
func (h TypedHandle[T, W]) Get() (T, error) {
	p, err := h.Deref()
	if err != nil {
		var zero T
		return zero, err
	}
	return *p, nil
}

// Set replaces the payload. Every handle sharing the value observes the change.
func (h TypedHandle[T, W]) Set(v T) error {
	p, err := h.Deref()
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// EqualTo reports whether the payload equals v.
func (h TypedHandle[T, W]) EqualTo(v T) (bool, error) {
	p, err := h.Deref()
	if err != nil {
		return false, err
	}
	return dispatch.Equal(*p, v)
}

// String returns the payload formatted with fmt, or "(none)" if unset. A handle
// of the wrong type falls back to Handle.String.
func (h TypedHandle[T, W]) String() string {
	p, err := h.Deref()
	if err != nil {
		return h.Handle.String()
	}
	return fmt.Sprint(*p)
}
