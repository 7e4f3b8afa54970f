package dispatch

import (
	"reflect"
	"unsafe"

	"github.com/cespare/xxhash/v2"

	"github.com/go-digitaltwin/go-dynobject/internal/telemetry"
)

type (
	compareFunc func(a, b reflect.Value) (bool, error)
	hashFunc    func(d *xxhash.Digest, v reflect.Value) error
)

// A table holds the compiled operators of a single payload type. Tables are
// immutable once published to the registry; composite tables reference the
// tables of their parts and look up the parts' functions at call time, which is
// what allows recursive types to be compiled at all.
type table struct {
	typ  reflect.Type
	ops  [numComparisons]compareFunc
	hash hashFunc

	// done is set when the table is fully compiled. A table seen by the builder
	// while not done belongs to a type currently being compiled (a recursive
	// type), and is assumed to support everything.
	done bool
	// requires lists, per operator, the operators of parts (or of the table
	// itself, for derived operators) it was compiled on. The builder withdraws
	// an operator whose requirements turn out unsupported, see prune.
	requires [numOperators][]requirement
}

// A requirement is an operator of a table that another operator relies on.
type requirement struct {
	tab *table
	op  Operator
}

func (t *table) compare(op Operator, a, b reflect.Value) (bool, error) {
	f := t.ops[op]
	if f == nil {
		return false, t.deny(op)
	}
	return f(a, b)
}

func (t *table) digest(d *xxhash.Digest, v reflect.Value) error {
	if t.hash == nil {
		return t.deny(OpHash)
	}
	return t.hash(d, v)
}

func (t *table) deny(op Operator) error {
	telemetry.CapabilityFailure(t.typ.String(), op.String())
	return &CapabilityError{Type: t.typ, Op: op}
}

// has reports whether the table supports op, assuming it does while the table
// is being compiled.
func (t *table) has(op Operator) bool {
	return !t.done || t.supports(op)
}

func (t *table) supports(op Operator) bool {
	if op == OpHash {
		return t.hash != nil
	}
	return t.ops[op] != nil
}

func (t *table) withdraw(op Operator) {
	if op == OpHash {
		t.hash = nil
	} else {
		t.ops[op] = nil
	}
	t.requires[op] = nil
}

func (t *table) capabilities() Capabilities {
	var c Capabilities
	for op := range Operator(numOperators) {
		if t.supports(op) {
			c = c.with(op)
		}
	}
	return c
}

// derive fills in the operators that follow from the ones the type supports.
func (t *table) derive() {
	if t.ops[OpEqual] == nil && t.ops[OpNotEqual] != nil {
		t.set(OpEqual, t.negate(OpNotEqual), requirement{t, OpNotEqual})
	}
	if t.ops[OpNotEqual] == nil && t.ops[OpEqual] != nil {
		t.set(OpNotEqual, t.negate(OpEqual), requirement{t, OpEqual})
	}
	if t.ops[OpLess] == nil && t.ops[OpGreater] != nil {
		t.set(OpLess, t.swap(OpGreater), requirement{t, OpGreater})
	}
	if t.ops[OpGreater] == nil && t.ops[OpLess] != nil {
		t.set(OpGreater, t.swap(OpLess), requirement{t, OpLess})
	}
	if t.ops[OpLessEqual] == nil && t.ops[OpLess] != nil && t.ops[OpEqual] != nil {
		t.set(OpLessEqual, t.either(OpLess, OpEqual), requirement{t, OpLess}, requirement{t, OpEqual})
	}
	if t.ops[OpGreaterEqual] == nil && t.ops[OpGreater] != nil && t.ops[OpEqual] != nil {
		t.set(OpGreaterEqual, t.either(OpGreater, OpEqual), requirement{t, OpGreater}, requirement{t, OpEqual})
	}
}

// set installs f as the comparison op, unless the type already has one.
func (t *table) set(op Operator, f compareFunc, requires ...requirement) {
	if t.ops[op] == nil && f != nil {
		t.ops[op] = f
		t.requires[op] = requires
	}
}

// setHash installs f as the hash of the type, compiled on the given parts.
func (t *table) setHash(f hashFunc, requires ...requirement) {
	t.hash = f
	t.requires[OpHash] = requires
}

func (t *table) negate(op Operator) compareFunc {
	return func(a, b reflect.Value) (bool, error) {
		ok, err := t.compare(op, a, b)
		return !ok && err == nil, err
	}
}

func (t *table) swap(op Operator) compareFunc {
	return func(a, b reflect.Value) (bool, error) {
		return t.compare(op, b, a)
	}
}

func (t *table) either(x, y Operator) compareFunc {
	return func(a, b reflect.Value) (bool, error) {
		ok, err := t.compare(x, a, b)
		if ok || err != nil {
			return ok, err
		}
		return t.compare(y, a, b)
	}
}

// addressable returns v if it is addressable, or an addressable copy otherwise.
func addressable(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v
	}
	c := reflect.New(v.Type()).Elem()
	c.Set(v)
	return c
}

// field returns the i-th field of the addressable struct v, stripped of the
// read-only flag reflect puts on unexported fields. Without it, methods of an
// unexported field could not be called, and its parts could not be copied.
func field(v reflect.Value, i int) reflect.Value {
	f := v.Field(i)
	if f.CanInterface() {
		return f
	}
	return reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem()
}
