package containers

import (
	"iter"

	"github.com/cespare/xxhash/v2"

	"github.com/go-digitaltwin/go-dynobject"
	"github.com/go-digitaltwin/go-dynobject/dispatch"
)

type node[T any] struct {
	prev, next *node[T]
	value      T
}

// A LinkedList is a doubly linked list. The zero LinkedList is an empty list
// ready to use.
type LinkedList[T any] struct {
	addr        *LinkedList[T] // see copyCheck
	front, back *node[T]
	n           int
}

// Len returns the number of elements in the list.
func (l *LinkedList[T]) Len() int { return l.n }

// PushBack appends v to the list.
func (l *LinkedList[T]) PushBack(v T) {
	copyCheck(&l.addr, l)
	n := &node[T]{prev: l.back, value: v}
	if l.back == nil {
		l.front = n
	} else {
		l.back.next = n
	}
	l.back = n
	l.n++
}

// PushFront prepends v to the list.
func (l *LinkedList[T]) PushFront(v T) {
	copyCheck(&l.addr, l)
	n := &node[T]{next: l.front, value: v}
	if l.front == nil {
		l.back = n
	} else {
		l.front.prev = n
	}
	l.front = n
	l.n++
}

func (l *LinkedList[T]) remove(n *node[T]) T {
	if n.prev == nil {
		l.front = n.next
	} else {
		n.prev.next = n.next
	}
	if n.next == nil {
		l.back = n.prev
	} else {
		n.next.prev = n.prev
	}
	n.prev, n.next = nil, nil
	l.n--
	return n.value
}

// PopFront removes and returns the first element, if any.
func (l *LinkedList[T]) PopFront() (v T, ok bool) {
	copyCheck(&l.addr, l)
	if l.front == nil {
		return v, false
	}
	return l.remove(l.front), true
}

// PopBack removes and returns the last element, if any.
func (l *LinkedList[T]) PopBack() (v T, ok bool) {
	copyCheck(&l.addr, l)
	if l.back == nil {
		return v, false
	}
	return l.remove(l.back), true
}

// All yields the elements from front to back.
func (l *LinkedList[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := l.front; n != nil; n = n.next {
			if !yield(n.value) {
				return
			}
		}
	}
}

// Backward yields the elements from back to front.
func (l *LinkedList[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := l.back; n != nil; n = n.prev {
			if !yield(n.value) {
				return
			}
		}
	}
}

func (l *LinkedList[T]) values() []T {
	s := make([]T, 0, l.n)
	for v := range l.All() {
		s = append(s, v)
	}
	return s
}

// Equal reports whether both lists hold equal elements in the same order.
func (l *LinkedList[T]) Equal(other *LinkedList[T]) (bool, error) {
	return equalSeq(l.values(), other.values())
}

// Less orders lists lexicographically by their elements.
func (l *LinkedList[T]) Less(other *LinkedList[T]) (bool, error) {
	return lessSeq(l.values(), other.values(), dispatch.Less[T])
}

// Hash hashes the elements in order.
func (l *LinkedList[T]) Hash() (uint64, error) {
	d := xxhash.New()
	writeHash(d, uint64(l.n))
	for v := range l.All() {
		h, err := dispatch.Hash(v)
		if err != nil {
			return 0, err
		}
		writeHash(d, h)
	}
	return d.Sum64(), nil
}

// Children yields the handles among (or nested in) the elements.
func (l *LinkedList[T]) Children() iter.Seq[dynobject.Handle] {
	return handlesIn(l.values())
}
