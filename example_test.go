package dynobject_test

import (
	"errors"
	"fmt"

	"github.com/go-digitaltwin/go-dynobject"
)

// Values of any type are wrapped once, then handled uniformly.
func Example() {
	values := []dynobject.Handle{
		dynobject.NewAtom(42).Handle,
		dynobject.NewAtom("answer").Handle,
		dynobject.NewCompound([]int{4, 2}).Handle,
	}
	for _, h := range values {
		fmt.Println(h.TypeName())
	}

	// The typed view is recovered with a checked downcast.
	n, err := dynobject.Typed[int, *dynobject.Atom[int]](values[0]).Get()
	fmt.Println(n, err)
	_, err = dynobject.Typed[string, *dynobject.Atom[string]](values[0]).Get()
	fmt.Println(err)
	// Output:
	// Ptr<int>
	// Ptr<string>
	// Ptr<[]int>
	// 42 <nil>
	// dynobject: type mismatch: want *dynobject.Atom[string], got *dynobject.Atom[int]
}

func ExampleHandle_Less() {
	one, word := dynobject.NewAtom(1), dynobject.NewAtom("one")

	// Values of different types are never equal, and are ordered by their type
	// names without failing.
	eq, err := one.Equal(word.Handle)
	fmt.Println(eq, err)
	less, err := one.Less(word.Handle)
	fmt.Println(less, err)
	// Output:
	// false <nil>
	// true <nil>
}

func ExampleCapabilityError() {
	counts := dynobject.NewCompound(map[string]int{"a": 1})
	other := dynobject.NewCompound(map[string]int{"b": 2})

	// Maps can be compared for equality, but have no order.
	_, err := counts.Less(other.Handle)
	fmt.Println(err)
	fmt.Println(errors.Is(err, errors.ErrUnsupported))
	// Output:
	// dispatch: map[string]int does not support <
	// true
}

func ExampleTypedHandle_Set() {
	counter := dynobject.NewAtom(1)
	shared := counter.Handle // both refer to the same value

	_ = counter.Set(2)
	fmt.Println(shared)
	// Output:
	// [int](2)
}
