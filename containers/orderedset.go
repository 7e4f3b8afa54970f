package containers

import (
	"iter"
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/go-digitaltwin/go-dynobject"
	"github.com/go-digitaltwin/go-dynobject/dispatch"
)

// An OrderedSet is a set of unique keys kept in ascending order. Two keys are
// the same key if neither orders before the other. The zero OrderedSet is an
// empty set ordered by BestEffort.
type OrderedSet[K any] struct {
	addr  *OrderedSet[K] // see copyCheck
	cfg   settings[K]
	elems []K
}

// Init empties the set and configures it with opts.
func (s *OrderedSet[K]) Init(opts ...Option[K]) *OrderedSet[K] {
	copyCheck(&s.addr, s)
	s.cfg.apply(opts)
	s.elems = nil
	return s
}

// Len returns the number of keys in the set.
func (s *OrderedSet[K]) Len() int { return len(s.elems) }

// search returns the position of k in the set, or where it would be inserted.
func (s *OrderedSet[K]) search(k K) (int, bool) {
	less := s.cfg.lessFunc()
	i := sort.Search(len(s.elems), func(i int) bool {
		return !must[bool]("search")(less(s.elems[i], k))
	})
	return i, i < len(s.elems) && !must[bool]("search")(less(k, s.elems[i]))
}

// Insert adds k to the set, and reports whether it was not already present.
func (s *OrderedSet[K]) Insert(k K) bool {
	copyCheck(&s.addr, s)
	i, found := s.search(k)
	if found {
		return false
	}
	s.elems = append(s.elems, k)
	copy(s.elems[i+1:], s.elems[i:])
	s.elems[i] = k
	return true
}

// Contains reports whether k is in the set.
func (s *OrderedSet[K]) Contains(k K) bool {
	_, found := s.search(k)
	return found
}

// Delete removes k from the set, and reports whether it was present.
func (s *OrderedSet[K]) Delete(k K) bool {
	copyCheck(&s.addr, s)
	i, found := s.search(k)
	if !found {
		return false
	}
	s.elems = append(s.elems[:i], s.elems[i+1:]...)
	return true
}

// All yields the keys in ascending order.
func (s *OrderedSet[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, k := range s.elems {
			if !yield(k) {
				return
			}
		}
	}
}

// Equal reports whether both sets hold equal keys.
func (s *OrderedSet[K]) Equal(other *OrderedSet[K]) (bool, error) {
	return equalSeq(s.elems, other.elems)
}

// Less orders sets lexicographically by their keys.
func (s *OrderedSet[K]) Less(other *OrderedSet[K]) (bool, error) {
	return lessSeq(s.elems, other.elems, s.cfg.lessFunc())
}

// Hash hashes the keys in order.
func (s *OrderedSet[K]) Hash() (uint64, error) {
	return hashSeq(s.elems)
}

// Children yields the handles among (or nested in) the keys.
func (s *OrderedSet[K]) Children() iter.Seq[dynobject.Handle] {
	return handlesIn(s.elems)
}

func equalSeq[T any](a, b []T) (bool, error) {
	if len(a) != len(b) {
		return false, nil
	}
	for i := range a {
		eq, err := dispatch.Equal(a[i], b[i])
		if err != nil || !eq {
			return false, err
		}
	}
	return true, nil
}

// lessSeq orders sequences lexicographically using only less: elements neither
// of which orders before the other are equivalent.
func lessSeq[T any](a, b []T, less Less[T]) (bool, error) {
	for i := range min(len(a), len(b)) {
		lt, err := less(a[i], b[i])
		if err != nil || lt {
			return lt, err
		}
		gt, err := less(b[i], a[i])
		if err != nil || gt {
			return false, err
		}
	}
	return len(a) < len(b), nil
}

func hashSeq[T any](elems []T) (uint64, error) {
	d := xxhash.New()
	writeHash(d, uint64(len(elems)))
	for _, e := range elems {
		h, err := dispatch.Hash(e)
		if err != nil {
			return 0, err
		}
		writeHash(d, h)
	}
	return d.Sum64(), nil
}

func handlesIn[T any](elems []T) iter.Seq[dynobject.Handle] {
	return func(yield func(dynobject.Handle) bool) {
		for i := range elems {
			for h := range dynobject.HandlesOf(&elems[i]) {
				if !yield(h) {
					return
				}
			}
		}
	}
}
