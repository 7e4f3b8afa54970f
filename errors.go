package dynobject

import (
	"errors"
	"fmt"

	"github.com/go-digitaltwin/go-dynobject/dispatch"
)

// ErrUnsetHandle is returned when dereferencing a Handle that holds no value.
var ErrUnsetHandle = errors.New("dynobject: unset handle")

// CapabilityError is returned when an operator or hash is invoked on a payload
// type that does not support it.
type CapabilityError = dispatch.CapabilityError

// A TypeMismatchError is returned when a TypedHandle is dereferenced but the
// handle stores a value of another type.
type TypeMismatchError struct {
	// Want is the name of the wrapper type the TypedHandle expects.
	Want string
	// Got is the name of the wrapper type actually stored.
	Got string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("dynobject: type mismatch: want %s, got %s", e.Want, e.Got)
}
