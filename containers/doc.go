// Package containers provides the standard containers of dynamic values: ready
// made handles to sets, maps, lists, vectors and strings, whose elements are
// typically dynobject.Handle values (or TypedHandles).
//
// The payload types (OrderedSet, OrderedMap, HashMap and LinkedList) compare and
// hash themselves element by element, so they can in turn be nested in other
// containers. Their zero value is ready to use, and they must not be copied
// after first use; wrap them with dynobject.MakeCompound (as the New functions
// do) rather than dynobject.NewCompound.
//
// Ordered containers order their keys with a Less comparator, BestEffort by
// default: keys of different types are ordered by their type names instead of
// failing, which keeps heterogeneous key sets usable. Container operations that
// hit a capability error (e.g. hashing a key whose type cannot be hashed) panic,
// since that is always a programming error.
package containers
