package containers

import (
	"iter"
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/go-digitaltwin/go-dynobject"
	"github.com/go-digitaltwin/go-dynobject/dispatch"
)

type entry[K, V any] struct {
	Key   K
	Value V
}

// An OrderedMap maps unique keys to values, iterated in ascending key order. Two
// keys are the same key if neither orders before the other. The zero OrderedMap
// is an empty map ordered by BestEffort.
type OrderedMap[K, V any] struct {
	addr    *OrderedMap[K, V] // see copyCheck
	cfg     settings[K]
	entries []entry[K, V]
}

// Init empties the map and configures it with opts.
func (m *OrderedMap[K, V]) Init(opts ...Option[K]) *OrderedMap[K, V] {
	copyCheck(&m.addr, m)
	m.cfg.apply(opts)
	m.entries = nil
	return m
}

// Len returns the number of entries in the map.
func (m *OrderedMap[K, V]) Len() int { return len(m.entries) }

func (m *OrderedMap[K, V]) search(k K) (int, bool) {
	less := m.cfg.lessFunc()
	i := sort.Search(len(m.entries), func(i int) bool {
		return !must[bool]("search")(less(m.entries[i].Key, k))
	})
	return i, i < len(m.entries) && !must[bool]("search")(less(k, m.entries[i].Key))
}

// Find looks up the given key and returns its value. If the key cannot be found,
// Find indicates that by returning ok == false.
func (m *OrderedMap[K, V]) Find(k K) (v V, ok bool) {
	i, found := m.search(k)
	if !found {
		return v, false
	}
	return m.entries[i].Value, true
}

// Update sets the value of the given key, adding the key if it is not already
// present.
func (m *OrderedMap[K, V]) Update(k K, v V) {
	copyCheck(&m.addr, m)
	i, found := m.search(k)
	if found {
		m.entries[i].Value = v
		return
	}
	m.entries = append(m.entries, entry[K, V]{})
	copy(m.entries[i+1:], m.entries[i:])
	m.entries[i] = entry[K, V]{Key: k, Value: v}
}

// Delete removes the given key, and reports whether it was present.
func (m *OrderedMap[K, V]) Delete(k K) bool {
	copyCheck(&m.addr, m)
	i, found := m.search(k)
	if !found {
		return false
	}
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	return true
}

// All yields the entries in ascending key order.
func (m *OrderedMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, e := range m.entries {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Keys yields the keys in ascending order.
func (m *OrderedMap[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, e := range m.entries {
			if !yield(e.Key) {
				return
			}
		}
	}
}

// Equal reports whether both maps hold equal keys mapped to equal values.
func (m *OrderedMap[K, V]) Equal(other *OrderedMap[K, V]) (bool, error) {
	if len(m.entries) != len(other.entries) {
		return false, nil
	}
	for i, e := range m.entries {
		o := other.entries[i]
		eq, err := dispatch.Equal(e.Key, o.Key)
		if err != nil || !eq {
			return false, err
		}
		eq, err = dispatch.Equal(e.Value, o.Value)
		if err != nil || !eq {
			return false, err
		}
	}
	return true, nil
}

// Less orders maps lexicographically by their entries; entries order by key,
// then by value.
func (m *OrderedMap[K, V]) Less(other *OrderedMap[K, V]) (bool, error) {
	less := m.cfg.lessFunc()
	for i := range min(len(m.entries), len(other.entries)) {
		a, b := m.entries[i], other.entries[i]
		lt, err := less(a.Key, b.Key)
		if err != nil || lt {
			return lt, err
		}
		gt, err := less(b.Key, a.Key)
		if err != nil || gt {
			return false, err
		}
		lt, err = dispatch.Less(a.Value, b.Value)
		if err != nil || lt {
			return lt, err
		}
		gt, err = dispatch.Less(b.Value, a.Value)
		if err != nil || gt {
			return false, err
		}
	}
	return len(m.entries) < len(other.entries), nil
}

// Hash hashes the entries in key order.
func (m *OrderedMap[K, V]) Hash() (uint64, error) {
	d := xxhash.New()
	writeHash(d, uint64(len(m.entries)))
	for _, e := range m.entries {
		h, err := hashEntry(e)
		if err != nil {
			return 0, err
		}
		writeHash(d, h)
	}
	return d.Sum64(), nil
}

// Children yields the handles among (or nested in) the keys and values.
func (m *OrderedMap[K, V]) Children() iter.Seq[dynobject.Handle] {
	return handlesIn(m.entries)
}

func hashEntry[K, V any](e entry[K, V]) (uint64, error) {
	k, err := dispatch.Hash(e.Key)
	if err != nil {
		return 0, err
	}
	v, err := dispatch.Hash(e.Value)
	if err != nil {
		return 0, err
	}
	d := xxhash.New()
	writeHash(d, k)
	writeHash(d, v)
	return d.Sum64(), nil
}
