package valuetest

import (
	"errors"
	"fmt"

	"github.com/google/go-cmp/cmp"

	"github.com/go-digitaltwin/go-dynobject"
)

// A check is any function that returns unexpected problems with the given pair
// of values. Checks are given every ordered pair of samples, including a value
// paired with itself (then self is true).
type check func(a, b dynobject.Value, self bool) (problem string)

// results holds the outcome of every comparison of a pair.
type results struct {
	Equal, NotEqual, Less, Greater, LessEqual, GreaterEqual outcome
}

type outcome struct {
	OK bool
	// Err is the error's text, or one of the unsupported/none markers.
	Err string
}

const unsupported = "unsupported"

func outcomeOf(ok bool, err error) outcome {
	switch {
	case err == nil:
		return outcome{OK: ok}
	case errors.Is(err, errors.ErrUnsupported):
		return outcome{Err: unsupported}
	default:
		return outcome{Err: err.Error()}
	}
}

func compareAll(a, b dynobject.Value) results {
	return results{
		Equal:        outcomeOf(a.Equal(b)),
		NotEqual:     outcomeOf(a.NotEqual(b)),
		Less:         outcomeOf(a.Less(b)),
		Greater:      outcomeOf(a.Greater(b)),
		LessEqual:    outcomeOf(a.LessEqual(b)),
		GreaterEqual: outcomeOf(a.GreaterEqual(b)),
	}
}

func sameType(a, b dynobject.Value) bool {
	return fmt.Sprintf("%T", a) == fmt.Sprintf("%T", b)
}

// Checks that equality is reflexive, unless unsupported by the payload.
func reflexive(a, b dynobject.Value, self bool) string {
	if !self {
		return ""
	}
	got := outcomeOf(a.Equal(a))
	if got.Err == unsupported {
		return ""
	}
	if diff := cmp.Diff(outcome{OK: true}, got); diff != "" {
		return fmt.Sprintf("Equal(self) mismatch (-want +got):\n%v", diff)
	}
	return ""
}

// Checks that != is the negation of ==.
func negation(a, b dynobject.Value, self bool) string {
	r := compareAll(a, b)
	if r.Equal.Err != r.NotEqual.Err {
		return fmt.Sprintf("Equal error %q, NotEqual error %q: want the same", r.Equal.Err, r.NotEqual.Err)
	}
	if r.Equal.Err == "" && r.Equal.OK == r.NotEqual.OK {
		return fmt.Sprintf("Equal = NotEqual = %v: want negation", r.Equal.OK)
	}
	return ""
}

// Checks the operators derived from < and ==, where supported.
func ordering(a, b dynobject.Value, self bool) string {
	r := compareAll(a, b)
	if r.Less.Err != "" || r.Equal.Err != "" {
		return ""
	}
	want := results{
		Equal:    r.Equal,
		NotEqual: outcome{OK: !r.Equal.OK},
		Less:     r.Less,
		Greater:  outcomeOf(b.Less(a)),
	}
	want.LessEqual = outcome{OK: want.Less.OK || want.Equal.OK}
	want.GreaterEqual = outcome{OK: want.Greater.OK || want.Equal.OK}
	if diff := cmp.Diff(want, r); diff != "" {
		return fmt.Sprintf("derived operators mismatch (-want +got):\n%v", diff)
	}
	if r.Less.OK && want.Greater.OK {
		return "Less(a, b) and Less(b, a) are both true: want antisymmetry"
	}
	return ""
}

// Checks that values of different types are never equal, are ordered without
// errors, and are ordered consistently in both directions.
func mismatchPolicy(a, b dynobject.Value, self bool) string {
	if sameType(a, b) {
		return ""
	}
	r := compareAll(a, b)
	want := results{
		Equal:        outcome{OK: false},
		NotEqual:     outcome{OK: true},
		Less:         r.Less,
		Greater:      outcomeOf(b.Less(a)),
		LessEqual:    r.Less,
		GreaterEqual: outcomeOf(b.Less(a)),
	}
	if diff := cmp.Diff(want, r); diff != "" {
		return fmt.Sprintf("comparison of %T and %T mismatch (-want +got):\n%v", a, b, diff)
	}
	if r.Less.Err != "" {
		return fmt.Sprintf("Less of %T and %T failed: %v", a, b, r.Less.Err)
	}
	return ""
}

// Checks that equal values hash alike, where hashing is supported.
func hashConsistency(a, b dynobject.Value, self bool) string {
	eq, err := a.Equal(b)
	if err != nil || !eq {
		return ""
	}
	ha, err := a.Hash()
	if errors.Is(err, errors.ErrUnsupported) {
		return ""
	}
	if err != nil {
		return fmt.Sprintf("Hash() failed: %v", err)
	}
	hb, err := b.Hash()
	if err != nil {
		return fmt.Sprintf("Hash() failed: %v", err)
	}
	if ha != hb {
		return fmt.Sprintf("Hash() = %x and %x for equal values: want the same", ha, hb)
	}
	return ""
}

// Checks that values are named and printable.
func naming(a, b dynobject.Value, self bool) string {
	if !self {
		return ""
	}
	if a.TypeName() == "" {
		return "TypeName() is empty"
	}
	if a.String() == "" {
		return "String() is empty"
	}
	return ""
}
