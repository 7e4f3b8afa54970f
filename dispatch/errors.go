package dispatch

import (
	"errors"
	"fmt"
	"reflect"
)

// A CapabilityError is returned when an operator or hash is invoked on a payload
// type that structurally lacks it. It always indicates a programming error: the
// type was used somewhere that needs a capability it does not have.
//
// CapabilityError unwraps to errors.ErrUnsupported.
type CapabilityError struct {
	Type reflect.Type
	Op   Operator
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("dispatch: %v does not support %v", e.Type, e.Op)
}

func (e *CapabilityError) Unwrap() error {
	return errors.ErrUnsupported
}
