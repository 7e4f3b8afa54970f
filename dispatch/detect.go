package dispatch

import (
	"fmt"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

var errorType = reflect.TypeFor[error]()

// comparisonMethods maps each comparison to the name of the method implementing it.
var comparisonMethods = [numComparisons]string{
	OpEqual:        "Equal",
	OpNotEqual:     "NotEqual",
	OpLess:         "Less",
	OpGreater:      "Greater",
	OpLessEqual:    "LessEqual",
	OpGreaterEqual: "GreaterEqual",
}

// A builder compiles the tables of a type and of every type it is composed of.
// Tables under construction are kept in building until the whole graph is
// compiled, then published together.
type builder struct {
	building map[reflect.Type]*table
	order    []*table
}

func (b *builder) build(t reflect.Type) *table {
	if tab, ok := registry.Load(t); ok {
		return tab
	}
	if tab, ok := b.building[t]; ok {
		return tab
	}

	tab := &table{typ: t}
	b.building[t] = tab
	b.order = append(b.order, tab)

	custom := b.probeMethods(tab)
	hashMethod := tab.hash
	b.probeKind(tab)
	switch {
	case hashMethod != nil:
		tab.setHash(hashMethod)
	case custom:
		// a custom equality with a structural hash would break the contract
		// that equal values hash alike
		tab.setHash(nil)
	}
	tab.derive()
	tab.done = true
	return tab
}

// prune withdraws the operators compiled on the assumption that a type still
// being built supports them, when that type turned out not to. Withdrawing one
// may invalidate others, so it runs until nothing changes.
func (b *builder) prune() {
	for changed := true; changed; {
		changed = false
		for _, tab := range b.order {
			for op, reqs := range tab.requires {
				for _, r := range reqs {
					if !r.tab.supports(r.op) {
						tab.withdraw(Operator(op))
						changed = true
						break
					}
				}
			}
		}
	}
}

// A method found on a type, ready to be called with reflection.
type method struct {
	fn      reflect.Value
	recvPtr bool // the method has a pointer receiver
	withErr bool // the method returns an error as its last result
	argPtr  bool // the method takes a pointer to the type (comparisons only)
	// argField is the index of the embedded field the method takes instead of
	// the type, for methods promoted from that field; -1 otherwise.
	argField int
}

func (m method) call(a reflect.Value, args ...reflect.Value) (reflect.Value, error) {
	recv := a
	if m.recvPtr {
		recv = addressable(a).Addr()
	}
	out := m.fn.Call(append([]reflect.Value{recv}, args...))
	if m.withErr {
		if err, _ := out[1].Interface().(error); err != nil {
			return out[0], err
		}
	}
	return out[0], nil
}

func (m method) arg(b reflect.Value) reflect.Value {
	if m.argField >= 0 {
		return field(addressable(b), m.argField)
	}
	if m.argPtr {
		return addressable(b).Addr()
	}
	return b
}

// lookupMethod finds the exported method called name in the method set of t, or
// of *t. The method must take numIn arguments (besides its receiver) and return
// a result whose kind is one of kinds, optionally followed by an error.
func lookupMethod(t reflect.Type, name string, numIn int, kinds ...reflect.Kind) (method, bool) {
	m := method{argField: -1}
	found, ok := t.MethodByName(name)
	if !ok && t.Kind() != reflect.Pointer {
		found, ok = reflect.PointerTo(t).MethodByName(name)
		m.recvPtr = true
	}
	if !ok {
		return method{}, false
	}

	mt := found.Type
	if mt.NumIn() != numIn+1 || mt.IsVariadic() {
		return method{}, false
	}
	if numIn == 1 {
		switch in := mt.In(1); {
		case t.AssignableTo(in):
		case reflect.PointerTo(t).AssignableTo(in):
			m.argPtr = true
		default:
			// a method promoted from an embedded field compares that field
			m.argField = embeddedField(t, in)
			if m.argField < 0 {
				return method{}, false
			}
		}
	}

	switch mt.NumOut() {
	case 1:
	case 2:
		if mt.Out(1) != errorType {
			return method{}, false
		}
		m.withErr = true
	default:
		return method{}, false
	}
	for _, k := range kinds {
		if mt.Out(0).Kind() == k {
			m.fn = found.Func
			return m, true
		}
	}
	return method{}, false
}

// embeddedField returns the index of the field of t embedding in, or -1.
func embeddedField(t, in reflect.Type) int {
	if t.Kind() != reflect.Struct {
		return -1
	}
	for i := range t.NumField() {
		if f := t.Field(i); f.Anonymous && f.Type == in {
			return i
		}
	}
	return -1
}

// probeMethods fills in the operators the type implements as methods, and
// reports whether the type defines its own notion of equality or order.
func (b *builder) probeMethods(tab *table) bool {
	t := tab.typ
	if t.Kind() == reflect.Interface {
		// deferred to the dynamic type, see probeKind
		return false
	}

	custom := false
	for op, name := range comparisonMethods {
		m, ok := lookupMethod(t, name, 1, reflect.Bool)
		if !ok {
			continue
		}
		tab.ops[op] = func(a, b reflect.Value) (bool, error) {
			out, err := m.call(a, m.arg(b))
			return out.Bool(), err
		}
		custom = true
	}

	if m, ok := lookupMethod(t, "Compare", 1, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64); ok {
		custom = true
		for op := range numComparisons {
			if tab.ops[op] != nil {
				continue
			}
			test := compareResult(Operator(op))
			tab.ops[op] = func(a, b reflect.Value) (bool, error) {
				out, err := m.call(a, m.arg(b))
				if err != nil {
					return false, err
				}
				return test(out.Int()), nil
			}
		}
	}

	if m, ok := lookupMethod(t, "Hash", 0, reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr); ok {
		tab.hash = func(d *xxhash.Digest, v reflect.Value) error {
			out, err := m.call(v)
			if err != nil {
				return err
			}
			writeUint64(d, out.Uint())
			return nil
		}
	}
	return custom
}

func compareResult(op Operator) func(c int64) bool {
	switch op {
	case OpEqual:
		return func(c int64) bool { return c == 0 }
	case OpNotEqual:
		return func(c int64) bool { return c != 0 }
	case OpLess:
		return func(c int64) bool { return c < 0 }
	case OpGreater:
		return func(c int64) bool { return c > 0 }
	case OpLessEqual:
		return func(c int64) bool { return c <= 0 }
	default:
		return func(c int64) bool { return c >= 0 }
	}
}

// probeKind fills in the operators native to the type's kind, leaving those
// already implemented as methods untouched.
func (b *builder) probeKind(tab *table) {
	t := tab.typ
	set := tab.set
	if tab.hash == nil {
		tab.hash = scalarHash(t.Kind())
	}

	switch t.Kind() {
	case reflect.Bool:
		set(OpEqual, func(a, b reflect.Value) (bool, error) { return a.Bool() == b.Bool(), nil })
		// false < true, as in sort orders of most languages
		set(OpLess, func(a, b reflect.Value) (bool, error) { return !a.Bool() && b.Bool(), nil })
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		set(OpEqual, func(a, b reflect.Value) (bool, error) { return a.Int() == b.Int(), nil })
		set(OpLess, func(a, b reflect.Value) (bool, error) { return a.Int() < b.Int(), nil })
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		set(OpEqual, func(a, b reflect.Value) (bool, error) { return a.Uint() == b.Uint(), nil })
		set(OpLess, func(a, b reflect.Value) (bool, error) { return a.Uint() < b.Uint(), nil })
	case reflect.Float32, reflect.Float64:
		set(OpEqual, func(a, b reflect.Value) (bool, error) { return a.Float() == b.Float(), nil })
		set(OpLess, func(a, b reflect.Value) (bool, error) { return a.Float() < b.Float(), nil })
	case reflect.Complex64, reflect.Complex128:
		set(OpEqual, func(a, b reflect.Value) (bool, error) { return a.Complex() == b.Complex(), nil })
	case reflect.String:
		set(OpEqual, func(a, b reflect.Value) (bool, error) { return a.String() == b.String(), nil })
		set(OpLess, func(a, b reflect.Value) (bool, error) { return a.String() < b.String(), nil })
	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		set(OpEqual, func(a, b reflect.Value) (bool, error) { return a.Pointer() == b.Pointer(), nil })
	case reflect.Array, reflect.Slice:
		b.probeSequence(tab, set)
	case reflect.Map:
		b.probeMap(tab, set)
	case reflect.Struct:
		b.probeStruct(tab, set)
	case reflect.Interface:
		b.probeInterface(tab)
	case reflect.Func:
		// functions are only comparable to nil, which is not a capability
	}
}

func (b *builder) probeSequence(tab *table, set func(Operator, compareFunc, ...requirement)) {
	elem := b.build(tab.typ.Elem())

	if elem.has(OpEqual) {
		set(OpEqual, func(x, y reflect.Value) (bool, error) {
			if x.Len() != y.Len() {
				return false, nil
			}
			for i := range x.Len() {
				ok, err := elem.compare(OpEqual, x.Index(i), y.Index(i))
				if err != nil {
					return false, fmt.Errorf("index %d: %w", i, err)
				}
				if !ok {
					return false, nil
				}
			}
			return true, nil
		}, requirement{elem, OpEqual})
	}

	if elem.has(OpEqual) && elem.has(OpLess) {
		// lexicographic
		set(OpLess, func(x, y reflect.Value) (bool, error) {
			n := min(x.Len(), y.Len())
			for i := range n {
				a, b := x.Index(i), y.Index(i)
				eq, err := elem.compare(OpEqual, a, b)
				if err != nil {
					return false, fmt.Errorf("index %d: %w", i, err)
				}
				if eq {
					continue
				}
				less, err := elem.compare(OpLess, a, b)
				if err != nil {
					return false, fmt.Errorf("index %d: %w", i, err)
				}
				return less, nil
			}
			return x.Len() < y.Len(), nil
		}, requirement{elem, OpEqual}, requirement{elem, OpLess})
	}

	if elem.has(OpHash) {
		tab.setHash(func(d *xxhash.Digest, v reflect.Value) error {
			writeUint64(d, uint64(v.Len()))
			for i := range v.Len() {
				if err := elem.digest(d, v.Index(i)); err != nil {
					return fmt.Errorf("index %d: %w", i, err)
				}
			}
			return nil
		}, requirement{elem, OpHash})
	}
}

func (b *builder) probeMap(tab *table, set func(Operator, compareFunc, ...requirement)) {
	key := b.build(tab.typ.Key())
	elem := b.build(tab.typ.Elem())

	if elem.has(OpEqual) {
		set(OpEqual, func(x, y reflect.Value) (bool, error) {
			if x.Len() != y.Len() {
				return false, nil
			}
			iter := x.MapRange()
			for iter.Next() {
				other := y.MapIndex(iter.Key())
				if !other.IsValid() {
					return false, nil
				}
				ok, err := elem.compare(OpEqual, iter.Value(), other)
				if err != nil {
					return false, fmt.Errorf("key %v: %w", iter.Key(), err)
				}
				if !ok {
					return false, nil
				}
			}
			return true, nil
		}, requirement{elem, OpEqual})
	}

	if key.has(OpHash) && elem.has(OpHash) {
		tab.setHash(func(d *xxhash.Digest, v reflect.Value) error {
			var sum uint64
			entry := xxhash.New()
			iter := v.MapRange()
			for iter.Next() {
				entry.Reset()
				if err := key.digest(entry, iter.Key()); err != nil {
					return fmt.Errorf("key %v: %w", iter.Key(), err)
				}
				if err := elem.digest(entry, iter.Value()); err != nil {
					return fmt.Errorf("key %v: %w", iter.Key(), err)
				}
				sum += entry.Sum64()
			}
			writeUint64(d, uint64(v.Len()))
			writeUint64(d, sum)
			return nil
		}, requirement{key, OpHash}, requirement{elem, OpHash})
	}
}

func (b *builder) probeStruct(tab *table, set func(Operator, compareFunc, ...requirement)) {
	t := tab.typ
	fields := make([]*table, t.NumField())
	equal, hashable := true, true
	var equalReqs, hashReqs []requirement
	for i := range fields {
		f := t.Field(i)
		if f.Name == "_" {
			// blank fields are ignored by == too
			continue
		}
		fields[i] = b.build(f.Type)
		equal = equal && fields[i].has(OpEqual)
		hashable = hashable && fields[i].has(OpHash)
		equalReqs = append(equalReqs, requirement{fields[i], OpEqual})
		hashReqs = append(hashReqs, requirement{fields[i], OpHash})
	}

	if equal {
		set(OpEqual, func(x, y reflect.Value) (bool, error) {
			x, y = addressable(x), addressable(y)
			for i, ft := range fields {
				if ft == nil {
					continue
				}
				ok, err := ft.compare(OpEqual, field(x, i), field(y, i))
				if err != nil {
					return false, fmt.Errorf("struct field %s: %w", t.Field(i).Name, err)
				}
				if !ok {
					return false, nil
				}
			}
			return true, nil
		}, equalReqs...)
	}

	if hashable {
		tab.setHash(func(d *xxhash.Digest, v reflect.Value) error {
			v = addressable(v)
			for i, ft := range fields {
				if ft == nil {
					continue
				}
				if err := ft.digest(d, field(v, i)); err != nil {
					return fmt.Errorf("struct field %s: %w", t.Field(i).Name, err)
				}
			}
			return nil
		}, hashReqs...)
	}
}

// probeInterface defers every operator to the dynamic types of the operands.
// Operands of different dynamic types are never equal, and are ordered by the
// names of their types; a nil interface orders before any other value.
func (b *builder) probeInterface(tab *table) {
	for op := range numComparisons {
		tab.ops[op] = dynamicCompare(Operator(op))
	}
	tab.hash = func(d *xxhash.Digest, v reflect.Value) error {
		if v.IsNil() {
			writeBool(d, false)
			return nil
		}
		writeBool(d, true)
		e := v.Elem()
		writeString(d, e.Type().String())
		return tableOf(e.Type()).digest(d, e)
	}
}

func dynamicCompare(op Operator) compareFunc {
	return func(a, b reflect.Value) (bool, error) {
		switch {
		case a.IsNil() && b.IsNil():
			return op == OpEqual || op == OpLessEqual || op == OpGreaterEqual, nil
		case a.IsNil():
			return op == OpNotEqual || op == OpLess || op == OpLessEqual, nil
		case b.IsNil():
			return op == OpNotEqual || op == OpGreater || op == OpGreaterEqual, nil
		}

		x, y := a.Elem(), b.Elem()
		if x.Type() == y.Type() {
			return tableOf(x.Type()).compare(op, x, y)
		}
		switch op {
		case OpEqual:
			return false, nil
		case OpNotEqual:
			return true, nil
		case OpLess, OpLessEqual:
			return TypeLess(x.Type(), y.Type()), nil
		default:
			return TypeLess(y.Type(), x.Type()), nil
		}
	}
}

// TypeLess is the total order on types used when two operands of different
// types must be ordered: by the type's name, then by its package path.
func TypeLess(a, b reflect.Type) bool {
	if a.String() != b.String() {
		return a.String() < b.String()
	}
	return a.PkgPath() < b.PkgPath()
}
