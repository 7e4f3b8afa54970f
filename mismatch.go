package dynobject

import (
	"cmp"
	"fmt"

	"github.com/go-digitaltwin/go-dynobject/dispatch"
	"github.com/go-digitaltwin/go-dynobject/internal/telemetry"
)

// mismatch answers op for a value compared with a value of another concrete
// type (or with nil). Such values are never equal, and they are ordered by
// their type names: first TypeName, then the Go type. A nil value orders
// before any other.
func mismatch(op dispatch.Operator, self, other Value) bool {
	c := orderTypes(self, other)
	telemetry.MismatchRecovered(self.TypeName(), typeNameOf(other))
	switch op {
	case dispatch.OpEqual:
		return false
	case dispatch.OpNotEqual:
		return true
	case dispatch.OpLess, dispatch.OpLessEqual:
		return c < 0
	default:
		return c > 0
	}
}

func orderTypes(a, b Value) int {
	if b == nil {
		return +1
	}
	if c := cmp.Compare(a.TypeName(), b.TypeName()); c != 0 {
		return c
	}
	return cmp.Compare(fmt.Sprintf("%T", a), fmt.Sprintf("%T", b))
}

func typeNameOf(v Value) string {
	if v == nil {
		return "nil"
	}
	return v.TypeName()
}
