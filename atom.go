package dynobject

import (
	"cmp"
	"fmt"
	"reflect"
	"unsafe"

	"golang.org/x/exp/constraints"

	"github.com/go-digitaltwin/go-dynobject/dispatch"
)

// Atomic is the set of payload types an Atom may hold.
type Atomic interface {
	constraints.Integer | constraints.Float | ~string | ~bool
}

// An Atom is a Value holding a primitive payload, compared natively: numbers and
// strings by value, bools with false before true. The zero Atom holds the zero
// value of P.
type Atom[P Atomic] struct {
	v P
}

// Get returns the payload.
func (a *Atom[P]) Get() P { return a.v }

// Set replaces the payload.
func (a *Atom[P]) Set(v P) { a.v = v }

// Payload returns a reference to the payload.
func (a *Atom[P]) Payload() *P { return &a.v }

func (a *Atom[P]) compare(op dispatch.Operator, other Value) (bool, error) {
	o, ok := other.(*Atom[P])
	if !ok || o == nil {
		return mismatch(op, a, other), nil
	}
	return compareAtomic(op, a.v, o.v), nil
}

// compareAtomic compares primitives natively; they support every operator.
func compareAtomic[P Atomic](op dispatch.Operator, x, y P) bool {
	switch op {
	case dispatch.OpEqual:
		return x == y
	case dispatch.OpNotEqual:
		return x != y
	case dispatch.OpLess:
		return lessAtomic(x, y)
	case dispatch.OpGreater:
		return lessAtomic(y, x)
	case dispatch.OpLessEqual:
		return x == y || lessAtomic(x, y)
	default:
		return x == y || lessAtomic(y, x)
	}
}

// lessAtomic orders x and y by their underlying type. P may be a named type
// (even one with its own methods), so the operands are viewed as the unnamed
// type of their kind.
func lessAtomic[P Atomic](x, y P) bool {
	switch reflect.TypeFor[P]().Kind() {
	case reflect.Bool:
		return !as[bool](x) && as[bool](y)
	case reflect.String:
		return cmp.Less(as[string](x), as[string](y))
	case reflect.Int:
		return cmp.Less(as[int](x), as[int](y))
	case reflect.Int8:
		return cmp.Less(as[int8](x), as[int8](y))
	case reflect.Int16:
		return cmp.Less(as[int16](x), as[int16](y))
	case reflect.Int32:
		return cmp.Less(as[int32](x), as[int32](y))
	case reflect.Int64:
		return cmp.Less(as[int64](x), as[int64](y))
	case reflect.Uint:
		return cmp.Less(as[uint](x), as[uint](y))
	case reflect.Uint8:
		return cmp.Less(as[uint8](x), as[uint8](y))
	case reflect.Uint16:
		return cmp.Less(as[uint16](x), as[uint16](y))
	case reflect.Uint32:
		return cmp.Less(as[uint32](x), as[uint32](y))
	case reflect.Uint64:
		return cmp.Less(as[uint64](x), as[uint64](y))
	case reflect.Uintptr:
		return cmp.Less(as[uintptr](x), as[uintptr](y))
	// Floats use < rather than cmp.Less: NaN is unordered, not the least value.
	case reflect.Float32:
		return as[float32](x) < as[float32](y)
	default:
		return as[float64](x) < as[float64](y)
	}
}

// as views v as a U, which must be the underlying type of P.
func as[U, P any](v P) U {
	return *(*U)(unsafe.Pointer(&v))
}

func (a *Atom[P]) Equal(other Value) (bool, error)    { return a.compare(dispatch.OpEqual, other) }
func (a *Atom[P]) NotEqual(other Value) (bool, error) { return a.compare(dispatch.OpNotEqual, other) }
func (a *Atom[P]) Less(other Value) (bool, error)     { return a.compare(dispatch.OpLess, other) }
func (a *Atom[P]) Greater(other Value) (bool, error)  { return a.compare(dispatch.OpGreater, other) }
func (a *Atom[P]) LessEqual(other Value) (bool, error) {
	return a.compare(dispatch.OpLessEqual, other)
}
func (a *Atom[P]) GreaterEqual(other Value) (bool, error) {
	return a.compare(dispatch.OpGreaterEqual, other)
}

// Hash hashes the payload by its kind, consistently with the native equality:
// methods of a named payload type are ignored.
func (a *Atom[P]) Hash() (uint64, error) { return dispatch.HashKind(a.v) }

func (a *Atom[P]) TypeName() string { return TypeNameOf[P]() }

// String returns the payload with its type, e.g. "[int](42)".
func (a *Atom[P]) String() string {
	return fmt.Sprintf("[%s](%v)", a.TypeName(), a.v)
}
