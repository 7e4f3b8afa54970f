package dynobject

import (
	"fmt"

	"github.com/go-digitaltwin/go-dynobject/dispatch"
)

// Value is the capability interface of every dynamic value. Although the
// package could work with any type, a Value is what a Handle stores: a wrapper
// that knows how to compare, hash and print its payload.
//
// Each comparison first attempts to downcast other to the implementation's own
// concrete type; if that fails, the comparison is answered by the type-name
// order (see package documentation) and never returns an error. An error is
// returned when the payload itself lacks the operator (a *CapabilityError) or
// when the payload's own implementation fails.
type Value interface {
	Equal(other Value) (bool, error)
	NotEqual(other Value) (bool, error)
	Less(other Value) (bool, error)
	Greater(other Value) (bool, error)
	LessEqual(other Value) (bool, error)
	GreaterEqual(other Value) (bool, error)

	// TypeName returns the readable name of the payload type, e.g. "[]string".
	TypeName() string
	// String returns a human-readable representation of the value, by default
	// "[TypeName](address)".
	String() string
	// Hash returns a hash of the payload. Equal values hash alike.
	Hash() (uint64, error)
}

// Wrapper is a Value that holds a payload of type T.
type Wrapper[T any] interface {
	Value
	// Payload returns a reference to the wrapped payload. Modifications through
	// the reference are visible to every Handle sharing the wrapper.
	Payload() *T
}

// compareValues applies op to the two values.
func compareValues(op dispatch.Operator, a, b Value) (bool, error) {
	switch op {
	case dispatch.OpEqual:
		return a.Equal(b)
	case dispatch.OpNotEqual:
		return a.NotEqual(b)
	case dispatch.OpLess:
		return a.Less(b)
	case dispatch.OpGreater:
		return a.Greater(b)
	case dispatch.OpLessEqual:
		return a.LessEqual(b)
	case dispatch.OpGreaterEqual:
		return a.GreaterEqual(b)
	default:
		return false, fmt.Errorf("dynobject: %v is not a comparison", op)
	}
}

// defaultString is the String form of values without a better representation.
func defaultString(v Value) string {
	return fmt.Sprintf("[%s](%p)", v.TypeName(), v)
}
