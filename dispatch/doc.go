/*
Package dispatch decides, per payload type, which comparison operators and
hashing a type supports, and routes calls to the type's own implementation.

Detection is structural: no type has to opt in. The first time a type is seen,
its methods and kind are probed and the verdicts are compiled into a dispatch
table, which is cached for the lifetime of the process. A type supports an
operator if any of the following holds, in order:

  - It has a method named after the operator (Equal, NotEqual, Less, Greater,
    LessEqual, GreaterEqual) that accepts the type itself and returns bool or
    (bool, error).
  - It has a Compare method returning an int (or (int, error)), which provides
    all six operators.
  - Its kind has a native operator: bools, numbers and strings compare by value;
    pointers and channels by identity; arrays, slices, maps and structs element
    by element; interfaces defer to their dynamic type at call time.
  - The operator derives from others: != from ==, > from < swapped, <= from <
    and ==, >= from > and ==.

Hashing is supported by types with a Hash method returning an unsigned integer
(or that and an error), by scalar and pointer kinds, and by composites of
hashable parts. A type that defines its own equality (an Equal or Compare
method) but no Hash method is never hashed structurally, since a structural
hash cannot be trusted to agree with a custom notion of equality.

Calling an operator a type does not support is not a build failure: the call
returns a *CapabilityError. This lets types that only define equality live in
containers that never order their elements.
*/
package dispatch
