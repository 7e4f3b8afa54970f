package dynobject

import (
	"iter"

	"github.com/go-digitaltwin/go-dynobject/dispatch"
)

// A Compound is a Value holding an arbitrary payload, typically a container or a
// user-defined struct. Comparisons and hashing go through package dispatch, so a
// Compound supports exactly the operators its payload does; the others return a
// *CapabilityError.
type Compound[P any] struct {
	payload P
}

// Payload returns a reference to the payload.
func (c *Compound[P]) Payload() *P { return &c.payload }

func (c *Compound[P]) compare(op dispatch.Operator, other Value) (bool, error) {
	o, ok := other.(*Compound[P])
	if !ok || o == nil {
		return mismatch(op, c, other), nil
	}
	return dispatch.Compare(op, c.payload, o.payload)
}

func (c *Compound[P]) Equal(other Value) (bool, error)    { return c.compare(dispatch.OpEqual, other) }
func (c *Compound[P]) NotEqual(other Value) (bool, error) { return c.compare(dispatch.OpNotEqual, other) }
func (c *Compound[P]) Less(other Value) (bool, error)     { return c.compare(dispatch.OpLess, other) }
func (c *Compound[P]) Greater(other Value) (bool, error)  { return c.compare(dispatch.OpGreater, other) }
func (c *Compound[P]) LessEqual(other Value) (bool, error) {
	return c.compare(dispatch.OpLessEqual, other)
}
func (c *Compound[P]) GreaterEqual(other Value) (bool, error) {
	return c.compare(dispatch.OpGreaterEqual, other)
}

func (c *Compound[P]) Hash() (uint64, error) { return dispatch.Hash(c.payload) }

func (c *Compound[P]) TypeName() string { return TypeNameOf[P]() }

func (c *Compound[P]) String() string { return defaultString(c) }

// Children yields the handles nested in the payload, see Walk.
func (c *Compound[P]) Children() iter.Seq[Handle] {
	return childrenOf(&c.payload)
}
