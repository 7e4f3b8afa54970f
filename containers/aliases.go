package containers

import (
	"github.com/go-digitaltwin/go-dynobject"
)

type (
	// Set is a handle to an OrderedSet.
	Set[K any] = dynobject.CompoundHandle[OrderedSet[K]]
	// Map is a handle to an OrderedMap.
	Map[K, V any] = dynobject.CompoundHandle[OrderedMap[K, V]]
	// UnorderedMap is a handle to a HashMap.
	UnorderedMap[K, V any] = dynobject.CompoundHandle[HashMap[K, V]]
	// List is a handle to a LinkedList.
	List[T any] = dynobject.CompoundHandle[LinkedList[T]]
	// Vector is a handle to a slice.
	Vector[T any] = dynobject.CompoundHandle[[]T]
	// String is a handle to a string.
	String = dynobject.AtomHandle[string]

	// Dictionary is a fully dynamic key-value store.
	Dictionary = UnorderedMap[dynobject.Handle, dynobject.Handle]
	// StringMap maps names to dynamic values, e.g. to nest configuration.
	StringMap = Map[string, dynobject.Handle]
)

// NewSet returns a handle to a new, empty set.
func NewSet[K any](opts ...Option[K]) Set[K] {
	h := dynobject.MakeCompound[OrderedSet[K]]()
	h.MustDeref().Init(opts...)
	return h
}

// NewMap returns a handle to a new, empty ordered map.
func NewMap[K, V any](opts ...Option[K]) Map[K, V] {
	h := dynobject.MakeCompound[OrderedMap[K, V]]()
	h.MustDeref().Init(opts...)
	return h
}

// NewUnorderedMap returns a handle to a new, empty hash map.
func NewUnorderedMap[K, V any]() UnorderedMap[K, V] {
	return dynobject.MakeCompound[HashMap[K, V]]()
}

// NewList returns a handle to a new list holding elems.
func NewList[T any](elems ...T) List[T] {
	h := dynobject.MakeCompound[LinkedList[T]]()
	l := h.MustDeref()
	for _, e := range elems {
		l.PushBack(e)
	}
	return h
}

// NewVector returns a handle to a new vector holding a copy of elems.
func NewVector[T any](elems ...T) Vector[T] {
	return dynobject.NewCompound(append([]T(nil), elems...))
}

// NewString returns a handle to s.
func NewString(s string) String {
	return dynobject.NewAtom(s)
}

// NewDictionary returns a handle to a new, empty Dictionary.
func NewDictionary() Dictionary {
	return NewUnorderedMap[dynobject.Handle, dynobject.Handle]()
}

// NewStringMap returns a handle to a new, empty StringMap.
func NewStringMap() StringMap {
	return NewMap[string, dynobject.Handle]()
}
