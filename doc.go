// Package dynobject provides dynamically typed values: any payload (a number, a
// string, or a container of further dynamic values) can be stored behind one
// common Handle, compared, hashed and printed without the caller knowing its
// concrete type, while a TypedHandle recovers the original type when the caller
// does know it.
//
// A payload is wrapped by one of two strategies. An Atom holds a primitive (the
// Atomic types) and compares it natively. A Compound holds any other type and
// compares it with whatever operators the type structurally supports, as
// decided by the dispatch package. Operators a payload lacks are not rejected at
// compile time; calling them returns a *CapabilityError.
//
// Comparing values of different concrete types is not an error: they are never
// equal, and they order by their type names. This keeps heterogeneous
// containers (e.g. a Dictionary with both numeric and string keys) usable.
//
// Handles share their value. Copying a Handle is cheap and both copies observe
// mutations made through either one.
package dynobject
