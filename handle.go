package dynobject

import (
	"reflect"

	"github.com/go-digitaltwin/go-dynobject/dispatch"
)

// A Handle is a shared reference to a Value. Copies of a Handle refer to the
// same Value, which lives as long as any of them does. The zero Handle is unset:
// it refers to nothing.
//
// Handles compare and hash by the values they refer to, so they can be used as
// keys and elements of the containers package.
type Handle struct {
	v Value
}

// NewHandle returns a Handle referring to v. A nil v yields an unset Handle.
func NewHandle(v Value) Handle {
	return Handle{v: v}
}

// IsSet reports whether the handle refers to a value.
func (h Handle) IsSet() bool {
	return h.v != nil
}

// Value returns the value the handle refers to, or ErrUnsetHandle.
func (h Handle) Value() (Value, error) {
	if h.v == nil {
		return nil, ErrUnsetHandle
	}
	return h.v, nil
}

// AsHandle returns h. It allows TypedHandles, which embed a Handle, to be passed
// where a plain Handle is required.
func (h Handle) AsHandle() Handle {
	return h
}

// Same reports whether h and other refer to the very same value (as opposed to
// equal values). Two unset handles are the same.
func (h Handle) Same(other Handle) bool {
	if h.v == nil || other.v == nil {
		return h.v == nil && other.v == nil
	}
	if !reflect.TypeOf(h.v).Comparable() {
		return false
	}
	return h.v == other.v
}

func (h Handle) compare(op dispatch.Operator, other Handle) (bool, error) {
	switch {
	case h.v == nil && other.v == nil:
		return op == dispatch.OpEqual || op == dispatch.OpLessEqual || op == dispatch.OpGreaterEqual, nil
	case h.v == nil:
		return op == dispatch.OpNotEqual || op == dispatch.OpLess || op == dispatch.OpLessEqual, nil
	case other.v == nil:
		return op == dispatch.OpNotEqual || op == dispatch.OpGreater || op == dispatch.OpGreaterEqual, nil
	}
	return compareValues(op, h.v, other.v)
}

// Equal reports whether both handles refer to equal values. Two unset handles
// are equal; an unset handle orders before any set one.
func (h Handle) Equal(other Handle) (bool, error) { return h.compare(dispatch.OpEqual, other) }

func (h Handle) NotEqual(other Handle) (bool, error) { return h.compare(dispatch.OpNotEqual, other) }

func (h Handle) Less(other Handle) (bool, error) { return h.compare(dispatch.OpLess, other) }

func (h Handle) Greater(other Handle) (bool, error) { return h.compare(dispatch.OpGreater, other) }

func (h Handle) LessEqual(other Handle) (bool, error) {
	return h.compare(dispatch.OpLessEqual, other)
}

func (h Handle) GreaterEqual(other Handle) (bool, error) {
	return h.compare(dispatch.OpGreaterEqual, other)
}

// Hash returns the hash of the referenced value; 0 if unset.
func (h Handle) Hash() (uint64, error) {
	if h.v == nil {
		return 0, nil
	}
	return h.v.Hash()
}

// TypeName returns the type name of the handle, e.g. "Ptr<int>".
func (h Handle) TypeName() string {
	if h.v == nil {
		return "Ptr<nil>"
	}
	return "Ptr<" + h.v.TypeName() + ">"
}

// String returns the String form of the referenced value, or "(none)".
func (h Handle) String() string {
	if h.v == nil {
		return "(none)"
	}
	return h.v.String()
}
