package valuetest_test

import (
	"math"
	"testing"

	"github.com/go-digitaltwin/go-dynobject"
	"github.com/go-digitaltwin/go-dynobject/containers"
	"github.com/go-digitaltwin/go-dynobject/valuetest"
)

type point struct{ X, Y int }

// celsius has custom equality and no ordering.
type celsius struct{ deg float64 }

func (c celsius) Equal(other celsius) bool { return c.deg == other.deg }

func TestAtoms(t *testing.T) {
	valuetest.Run(t,
		dynobject.NewAtom(1).Handle,
		dynobject.NewAtom(1).Handle,
		dynobject.NewAtom(2).Handle,
		dynobject.NewAtom(math.Copysign(0, -1)).Handle,
		dynobject.NewAtom(0.0).Handle,
		dynobject.NewAtom("x").Handle,
		dynobject.NewAtom(true).Handle,
		dynobject.NewAtom(uint8(7)).Handle,
	)
}

func TestCompounds(t *testing.T) {
	valuetest.Run(t,
		dynobject.NewCompound(point{1, 2}).Handle,
		dynobject.NewCompound(point{1, 2}).Handle,
		dynobject.NewCompound(point{2, 1}).Handle,
		dynobject.NewCompound(map[string]int{"a": 1}).Handle,
		dynobject.NewCompound(map[string]int{"a": 2}).Handle,
		dynobject.NewCompound(celsius{21}).Handle,
		dynobject.NewCompound(celsius{21}).Handle,
		dynobject.NewAtom(1).Handle,
	)
}

func TestContainers(t *testing.T) {
	set := containers.NewSet[int]()
	for _, k := range []int{3, 1, 2} {
		set.MustDeref().Insert(k)
	}
	m := containers.NewStringMap()
	m.MustDeref().Update("name", containers.NewString("twin").Handle)

	valuetest.Run(t,
		set.Handle,
		containers.NewSet[int]().Handle,
		m.Handle,
		containers.NewStringMap().Handle,
		containers.NewList(1, 2, 3).Handle,
		containers.NewList(1, 2).Handle,
		containers.NewVector("a", "b").Handle,
		containers.NewVector("a").Handle,
		containers.NewDictionary().Handle,
		dynobject.Handle{},
	)
}

// Handles nested as payloads compare by the values they refer to.
func TestNestedHandles(t *testing.T) {
	a := dynobject.NewAtom(1).Handle
	valuetest.Run(t,
		dynobject.NewCompound(a).Handle,
		dynobject.NewCompound(dynobject.NewAtom(1).Handle).Handle,
		dynobject.NewCompound(dynobject.NewAtom(2).Handle).Handle,
		dynobject.NewCompound(dynobject.Handle{}).Handle,
		dynobject.NewCompound([]dynobject.Handle{a, {}}).Handle,
		a,
	)
}
