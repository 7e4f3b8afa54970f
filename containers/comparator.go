package containers

import (
	"errors"
	"fmt"

	"github.com/go-digitaltwin/go-dynobject"
	"github.com/go-digitaltwin/go-dynobject/dispatch"
)

// Less reports whether a orders before b.
type Less[K any] func(a, b K) (bool, error)

// BestEffort returns the default comparator of ordered containers. It orders
// keys with dispatch.Less, and treats a *dynobject.TypeMismatchError as "not
// less" instead of failing. Keys of different dynamic types are thus still
// ordered (dynobject.Value orders them by type name), at the cost of a possibly
// inconsistent order for payloads whose own comparison reports mismatches.
//
// Comparisons of dynobject.Value (and so of Handle keys) never report a
// mismatch: they answer it by type name already. The mismatch branch only
// matters for key types whose own Less method returns a
// *dynobject.TypeMismatchError.
//
// Any other error, such as a *dynobject.CapabilityError, is returned.
func BestEffort[K any]() Less[K] {
	return func(a, b K) (bool, error) {
		less, err := dispatch.Less(a, b)
		if mismatch := (*dynobject.TypeMismatchError)(nil); errors.As(err, &mismatch) {
			return false, nil
		}
		return less, err
	}
}

// An Option configures an ordered container.
type Option[K any] func(*settings[K])

// WithLess orders the keys of the container with less.
func WithLess[K any](less Less[K]) Option[K] {
	return func(s *settings[K]) {
		s.less = less
	}
}

type settings[K any] struct {
	less Less[K]
}

func (s *settings[K]) apply(opts []Option[K]) {
	*s = settings[K]{}
	for _, opt := range opts {
		opt(s)
	}
}

func (s *settings[K]) lessFunc() Less[K] {
	if s.less == nil {
		return BestEffort[K]()
	}
	return s.less
}

// must returns a function that panics if err is not nil, wrapping err with the
// name of the operation, e.g. must[bool]("search")(less(a, b)).
func must[T any](op string) func(T, error) T {
	return func(v T, err error) T {
		if err != nil {
			panic(fmt.Errorf("containers: %s: %w", op, err))
		}
		return v
	}
}
