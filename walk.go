package dynobject

import (
	"iter"
	"reflect"
)

// A Visitor defines a Visit method invoked for each Handle encountered by Walk.
// If the result visitor w is not nil, Walk visits each child of the handle with
// the visitor w, followed by a call of w.Visit(Handle{}).
type Visitor interface {
	Visit(h Handle) (w Visitor)
}

// A Parent is a value (or payload) with nested handles. Compound implements it;
// payload types may implement it to control how Walk sees them.
type Parent interface {
	Children() iter.Seq[Handle]
}

// Walk traverses nested dynamic values in depth-first order: It starts by
// calling v.Visit(h). If the visitor w returned by v.Visit(h) is not nil, Walk
// is invoked recursively with visitor w for each child of h, followed by a call
// of w.Visit(Handle{}).
//
// The children of a handle are those its value yields as a Parent. A Compound
// yields the children of its payload if the payload is a Parent, and otherwise
// the handles found in the payload's slices, arrays, maps, interfaces and
// exported struct fields (but not behind pointers). Cycles of handles are not
// detected.
func Walk(v Visitor, h Handle) {
	// Start by calling v.Visit(h).
	if v = v.Visit(h); v == nil {
		return
	}
	// Then traverse the children, depth-first.
	if p, ok := h.v.(Parent); ok {
		for child := range p.Children() {
			Walk(v, child)
		}
	}
	// Finally, call v.Visit(Handle{}).
	v.Visit(Handle{})
}

type inspector func(h Handle) bool

func (f inspector) Visit(h Handle) Visitor {
	if f(h) {
		return f
	}
	return nil
}

// Inspect traverses nested dynamic values in depth-first order: It starts by
// calling f(h). If f returns true, Inspect invokes f recursively for each child
// of h, followed by a call of f(Handle{}).
func Inspect(h Handle, f func(h Handle) bool) {
	Walk(inspector(f), h)
}

var handleType = reflect.TypeFor[Handle]()

// handler is implemented by Handle and every TypedHandle.
type handler interface {
	AsHandle() Handle
}

// childrenOf yields the handles nested in the payload p points to.
func childrenOf(p any) iter.Seq[Handle] {
	return func(yield func(Handle) bool) {
		if parent, ok := p.(Parent); ok {
			for h := range parent.Children() {
				if !yield(h) {
					return
				}
			}
			return
		}
		collect(reflect.ValueOf(p).Elem(), yield)
	}
}

// HandlesOf yields the handles found in v: v itself if it is a handle, or those
// nested in it, searched for like the children of a Compound (see Walk). If v is
// a pointer, the value it points to is searched.
func HandlesOf(v any) iter.Seq[Handle] {
	return func(yield func(Handle) bool) {
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				return
			}
			rv = rv.Elem()
		}
		collect(rv, yield)
	}
}

func collect(v reflect.Value, yield func(Handle) bool) bool {
	if !v.CanInterface() || v.Kind() == reflect.Pointer {
		return true
	}
	if v.Type() == handleType {
		return yield(v.Interface().(Handle))
	}
	if h, ok := v.Interface().(handler); ok {
		return yield(h.AsHandle())
	}
	if v.CanAddr() {
		if parent, ok := v.Addr().Interface().(Parent); ok {
			for h := range parent.Children() {
				if !yield(h) {
					return false
				}
			}
			return true
		}
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		for i := range v.Len() {
			if !collect(v.Index(i), yield) {
				return false
			}
		}
	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			if !collect(iter.Key(), yield) || !collect(iter.Value(), yield) {
				return false
			}
		}
	case reflect.Struct:
		for i := range v.NumField() {
			if !collect(v.Field(i), yield) {
				return false
			}
		}
	case reflect.Interface:
		if !v.IsNil() {
			return collect(v.Elem(), yield)
		}
	}
	return true
}
