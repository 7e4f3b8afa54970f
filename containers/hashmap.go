package containers

import (
	"iter"

	"github.com/cespare/xxhash/v2"

	"github.com/go-digitaltwin/go-dynobject"
	"github.com/go-digitaltwin/go-dynobject/dispatch"
)

// A HashMap maps unique keys to values, in no particular order. Keys are
// bucketed by dispatch.Hash and told apart by dispatch.Equal, so any hashable
// type can be a key, including dynobject.Handle. The zero HashMap is an empty
// map ready to use.
//
// HashMap is not safe for concurrent use.
type HashMap[K, V any] struct {
	addr    *HashMap[K, V] // see copyCheck
	buckets map[uint64][]entry[K, V]
	n       int
}

// Len returns the number of entries in the map.
func (m *HashMap[K, V]) Len() int { return m.n }

// lookup returns the bucket of k and the position of k in it (or -1).
func (m *HashMap[K, V]) lookup(k K, op string) (uint64, int) {
	h := must[uint64](op)(dispatch.Hash(k))
	for i, e := range m.buckets[h] {
		if must[bool](op)(dispatch.Equal(e.Key, k)) {
			return h, i
		}
	}
	return h, -1
}

// Find looks up the given key and returns its value. If the key cannot be found,
// Find indicates that by returning ok == false.
func (m *HashMap[K, V]) Find(k K) (v V, ok bool) {
	h, i := m.lookup(k, "find")
	if i < 0 {
		return v, false
	}
	return m.buckets[h][i].Value, true
}

// Update sets the value of the given key, adding the key if it is not already
// present.
func (m *HashMap[K, V]) Update(k K, v V) {
	copyCheck(&m.addr, m)
	h, i := m.lookup(k, "update")
	if i >= 0 {
		m.buckets[h][i].Value = v
		return
	}
	if m.buckets == nil {
		m.buckets = make(map[uint64][]entry[K, V])
	}
	m.buckets[h] = append(m.buckets[h], entry[K, V]{Key: k, Value: v})
	m.n++
}

// Delete removes the given key, and reports whether it was present.
func (m *HashMap[K, V]) Delete(k K) bool {
	copyCheck(&m.addr, m)
	h, i := m.lookup(k, "delete")
	if i < 0 {
		return false
	}
	bucket := append(m.buckets[h][:i], m.buckets[h][i+1:]...)
	if len(bucket) == 0 {
		delete(m.buckets, h)
	} else {
		m.buckets[h] = bucket
	}
	m.n--
	return true
}

// All yields the entries of the map. Iteration continues until yield returns
// false, or once all entries have been visited.
func (m *HashMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, bucket := range m.buckets {
			for _, e := range bucket {
				if !yield(e.Key, e.Value) {
					return
				}
			}
		}
	}
}

// Equal reports whether both maps hold equal keys mapped to equal values.
func (m *HashMap[K, V]) Equal(other *HashMap[K, V]) (bool, error) {
	if m.n != other.n {
		return false, nil
	}
	for k, v := range m.All() {
		h, err := dispatch.Hash(k)
		if err != nil {
			return false, err
		}
		found := false
		for _, o := range other.buckets[h] {
			eq, err := dispatch.Equal(o.Key, k)
			if err != nil {
				return false, err
			}
			if !eq {
				continue
			}
			eq, err = dispatch.Equal(v, o.Value)
			if err != nil || !eq {
				return false, err
			}
			found = true
			break
		}
		if !found {
			return false, nil
		}
	}
	return true, nil
}

// Hash hashes the entries irrespective of their order.
func (m *HashMap[K, V]) Hash() (uint64, error) {
	var sum uint64
	for _, bucket := range m.buckets {
		for _, e := range bucket {
			h, err := hashEntry(e)
			if err != nil {
				return 0, err
			}
			sum += h
		}
	}
	d := xxhash.New()
	writeHash(d, uint64(m.n))
	writeHash(d, sum)
	return d.Sum64(), nil
}

// Children yields the handles among (or nested in) the keys and values.
func (m *HashMap[K, V]) Children() iter.Seq[dynobject.Handle] {
	return func(yield func(dynobject.Handle) bool) {
		for _, bucket := range m.buckets {
			for h := range handlesIn(bucket) {
				if !yield(h) {
					return
				}
			}
		}
	}
}
