package dispatch

import (
	"fmt"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// Detect returns the capabilities of the payload type P.
func Detect[P any]() Capabilities {
	return DetectType(reflect.TypeFor[P]())
}

// DetectType returns the capabilities of t.
func DetectType(t reflect.Type) Capabilities {
	return tableOf(t).capabilities()
}

// Supports reports whether the payload type P supports op.
func Supports[P any](op Operator) bool {
	return Detect[P]().Has(op)
}

// Compare applies the comparison op to a and b, using the implementation chosen
// for P. It returns a *CapabilityError if P does not support op, and any error
// returned by P's own implementation.
func Compare[P any](op Operator, a, b P) (bool, error) {
	if !op.IsComparison() {
		return false, fmt.Errorf("dispatch: %v is not a comparison", op)
	}
	if ok, handled, err := fastCompare(op, a, b); handled {
		return ok, err
	}
	tab := tableOf(reflect.TypeFor[P]())
	return tab.compare(op, reflect.ValueOf(&a).Elem(), reflect.ValueOf(&b).Elem())
}

// Equal reports whether a == b.
func Equal[P any](a, b P) (bool, error) { return Compare(OpEqual, a, b) }

// NotEqual reports whether a != b.
func NotEqual[P any](a, b P) (bool, error) { return Compare(OpNotEqual, a, b) }

// Less reports whether a < b.
func Less[P any](a, b P) (bool, error) { return Compare(OpLess, a, b) }

// Greater reports whether a > b.
func Greater[P any](a, b P) (bool, error) { return Compare(OpGreater, a, b) }

// LessEqual reports whether a <= b.
func LessEqual[P any](a, b P) (bool, error) { return Compare(OpLessEqual, a, b) }

// GreaterEqual reports whether a >= b.
func GreaterEqual[P any](a, b P) (bool, error) { return Compare(OpGreaterEqual, a, b) }

// Hash returns the hash of a. Equal values of the same type hash alike.
func Hash[P any](a P) (uint64, error) {
	d := xxhash.New()
	if err := tableOf(reflect.TypeFor[P]()).digest(d, reflect.ValueOf(&a).Elem()); err != nil {
		return 0, err
	}
	return d.Sum64(), nil
}

// HashKind hashes a by its kind alone (as an integer, a string, ...), ignoring
// any method of its type. The digest is the one Hash computes for the unnamed
// type of that kind. It fails with a *CapabilityError for non-scalar kinds.
func HashKind[P any](a P) (uint64, error) {
	t := reflect.TypeFor[P]()
	h := scalarHash(t.Kind())
	if h == nil {
		return 0, (&table{typ: t}).deny(OpHash)
	}
	d := xxhash.New()
	if err := h(d, reflect.ValueOf(&a).Elem()); err != nil {
		return 0, err
	}
	return d.Sum64(), nil
}

type (
	equaler[P any]         interface{ Equal(P) bool }
	fallibleEqualer[P any] interface{ Equal(P) (bool, error) }
	lesser[P any]          interface{ Less(P) bool }
	fallibleLesser[P any]  interface{ Less(P) (bool, error) }
)

// fastCompare calls the most common comparison methods without reflection. It
// only handles concrete payload types: for interfaces, the table compares
// operands of different dynamic types by policy rather than by method.
func fastCompare[P any](op Operator, a, b P) (ok, handled bool, err error) {
	if reflect.TypeFor[P]().Kind() == reflect.Interface {
		return false, false, nil
	}
	switch op {
	case OpEqual:
		switch x := any(a).(type) {
		case fallibleEqualer[P]:
			ok, err = x.Equal(b)
			return ok, true, err
		case equaler[P]:
			return x.Equal(b), true, nil
		}
	case OpLess:
		switch x := any(a).(type) {
		case fallibleLesser[P]:
			ok, err = x.Less(b)
			return ok, true, err
		case lesser[P]:
			return x.Less(b), true, nil
		}
	}
	return false, false, nil
}
