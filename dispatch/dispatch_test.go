package dispatch_test

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-digitaltwin/go-dynobject/dispatch"
)

type version struct {
	major, minor int
}

func (v version) Compare(o version) int {
	if v.major != o.major {
		return v.major - o.major
	}
	return v.minor - o.minor
}

// caseless only defines equality, with a pointer receiver.
type caseless struct {
	s string
}

func (c *caseless) Equal(o caseless) bool {
	return strings.EqualFold(c.s, o.s)
}

type hashedCaseless struct {
	caseless
}

func (h hashedCaseless) Equal(o hashedCaseless) bool { return h.caseless.Equal(o.caseless) }

func (h hashedCaseless) Hash() uint64 { return uint64(len(h.s)) }

type failing struct{}

var errBroken = errors.New("broken")

func (failing) Less(failing) (bool, error) { return false, errBroken }

type tree struct {
	Label string
	Kids  []tree
}

// looped is recursive and, through F, not comparable at all.
type looped struct {
	Kids []looped
	F    func()
}

type record struct {
	Name  string
	tags  []string
	score float64
}

func TestDetect(t *testing.T) {
	test := require.New(t)

	ordered := dispatch.AllCapabilities
	equality := dispatch.Capabilities(0)
	for _, op := range []dispatch.Operator{dispatch.OpEqual, dispatch.OpNotEqual, dispatch.OpHash} {
		equality |= 1 << op
	}

	test.Equal(ordered, dispatch.Detect[int]())
	test.Equal(ordered, dispatch.Detect[string]())
	test.Equal(ordered, dispatch.Detect[float32]())
	test.Equal(ordered, dispatch.Detect[[]int]())
	test.Equal(ordered, dispatch.Detect[[3]string]())
	test.Equal(equality, dispatch.Detect[complex128]())
	test.Equal(equality, dispatch.Detect[*int]())
	test.Equal(equality, dispatch.Detect[map[string]int]())
	test.Equal(equality, dispatch.Detect[record]())
	test.Equal(equality, dispatch.Detect[chan int]())
	test.Equal(dispatch.Capabilities(0), dispatch.Detect[func()]())
	test.Equal(dispatch.Capabilities(0), dispatch.Detect[[]func()]())
	test.Equal(dispatch.Capabilities(0), dispatch.Detect[map[int]func()]())

	// custom order, no custom hash
	test.Equal(ordered&^(1<<dispatch.OpHash), dispatch.Detect[version]())
	test.False(dispatch.Supports[caseless](dispatch.OpLess))
	test.True(dispatch.Supports[caseless](dispatch.OpNotEqual))
	test.False(dispatch.Supports[caseless](dispatch.OpHash))
	test.True(dispatch.Supports[hashedCaseless](dispatch.OpHash))
	test.True(dispatch.Supports[failing](dispatch.OpGreater))
	test.False(dispatch.Supports[failing](dispatch.OpHash))
}

func TestCompareScalars(t *testing.T) {
	test := require.New(t)

	tests := []struct {
		op   dispatch.Operator
		a, b int
		want bool
	}{
		{dispatch.OpEqual, 1, 1, true},
		{dispatch.OpEqual, 1, 2, false},
		{dispatch.OpNotEqual, 1, 2, true},
		{dispatch.OpLess, 1, 2, true},
		{dispatch.OpLess, 2, 2, false},
		{dispatch.OpGreater, 3, 2, true},
		{dispatch.OpLessEqual, 2, 2, true},
		{dispatch.OpLessEqual, 3, 2, false},
		{dispatch.OpGreaterEqual, 2, 2, true},
		{dispatch.OpGreaterEqual, 1, 2, false},
	}
	for _, tt := range tests {
		got, err := dispatch.Compare(tt.op, tt.a, tt.b)
		test.NoError(err)
		test.Equal(tt.want, got, "%d %v %d", tt.a, tt.op, tt.b)
	}

	less, err := dispatch.Less(false, true)
	test.NoError(err)
	test.True(less)

	nan := math.NaN()
	eq, err := dispatch.Equal(nan, nan)
	test.NoError(err)
	test.False(eq)
	le, err := dispatch.LessEqual(nan, nan)
	test.NoError(err)
	test.False(le)
}

func TestCompareSequences(t *testing.T) {
	test := require.New(t)

	less, err := dispatch.Less([]int{1, 2}, []int{1, 3})
	test.NoError(err)
	test.True(less)

	less, err = dispatch.Less([]int{1, 2}, []int{1, 2, 0})
	test.NoError(err)
	test.True(less, "a prefix orders first")

	ge, err := dispatch.GreaterEqual([]string{"b"}, []string{"a", "z"})
	test.NoError(err)
	test.True(ge)

	eq, err := dispatch.Equal([]int(nil), []int{})
	test.NoError(err)
	test.True(eq)
}

func TestCompareStructs(t *testing.T) {
	test := require.New(t)

	a := record{Name: "a", tags: []string{"x"}, score: 1}
	b := record{Name: "a", tags: []string{"x"}, score: 1}
	eq, err := dispatch.Equal(a, b)
	test.NoError(err)
	test.True(eq)

	b.tags = []string{"y"}
	ne, err := dispatch.NotEqual(a, b)
	test.NoError(err)
	test.True(ne)

	_, err = dispatch.Less(a, b)
	var capErr *dispatch.CapabilityError
	test.ErrorAs(err, &capErr)
	test.Equal(reflect.TypeFor[record](), capErr.Type)
	test.Equal(dispatch.OpLess, capErr.Op)
	test.ErrorIs(err, errors.ErrUnsupported)
}

func TestCompareMethods(t *testing.T) {
	test := require.New(t)

	less, err := dispatch.Less(version{1, 2}, version{1, 10})
	test.NoError(err)
	test.True(less)

	eq, err := dispatch.Equal(version{2, 0}, version{2, 0})
	test.NoError(err)
	test.True(eq)

	eq, err = dispatch.Equal(caseless{"Go"}, caseless{"GO"})
	test.NoError(err)
	test.True(eq)

	// the method is used inside composites too
	eq, err = dispatch.Equal([]caseless{{"a"}}, []caseless{{"A"}})
	test.NoError(err)
	test.True(eq)

	_, err = dispatch.Hash(caseless{"a"})
	test.ErrorIs(err, errors.ErrUnsupported)

	_, err = dispatch.Greater(failing{}, failing{})
	test.ErrorIs(err, errBroken)

	_, err = dispatch.Less([]caseless{{"a"}}, []caseless{{"b"}})
	test.ErrorIs(err, errors.ErrUnsupported, "elements without < cannot be ordered lexicographically")
}

func TestCompareRecursive(t *testing.T) {
	test := require.New(t)

	a := tree{Label: "root", Kids: []tree{{Label: "leaf"}}}
	b := tree{Label: "root", Kids: []tree{{Label: "leaf"}}}
	eq, err := dispatch.Equal(a, b)
	test.NoError(err)
	test.True(eq)

	b.Kids[0].Label = "other"
	eq, err = dispatch.Equal(a, b)
	test.NoError(err)
	test.False(eq)

	_, err = dispatch.Hash(a)
	test.NoError(err)
}

func TestDetectRecursive(t *testing.T) {
	test := require.New(t)

	// compiled from the slice first, so the struct is still being built when
	// the slice asks for its operators
	test.Equal(dispatch.Capabilities(0), dispatch.Detect[[]looped]())
	test.Equal(dispatch.Capabilities(0), dispatch.Detect[looped]())
	test.Equal(dispatch.Capabilities(0), dispatch.Detect[map[string]looped]())

	test.True(dispatch.Supports[[]tree](dispatch.OpEqual))
	test.True(dispatch.Supports[[]tree](dispatch.OpHash))
	test.False(dispatch.Supports[[]tree](dispatch.OpLess))
	test.False(dispatch.Supports[[]tree](dispatch.OpGreaterEqual))

	_, err := dispatch.Less([]tree{{Label: "a"}}, []tree{{Label: "b"}})
	test.ErrorIs(err, errors.ErrUnsupported)
}

func TestCompareInterfaces(t *testing.T) {
	test := require.New(t)

	eq, err := dispatch.Equal[any](1, 1)
	test.NoError(err)
	test.True(eq)

	eq, err = dispatch.Equal[any](1, "1")
	test.NoError(err)
	test.False(eq)

	// different dynamic types order by type name
	less, err := dispatch.Less[any](1, "1")
	test.NoError(err)
	test.True(less)
	greater, err := dispatch.Greater[any](1, "1")
	test.NoError(err)
	test.False(greater)

	less, err = dispatch.Less[any](nil, 0)
	test.NoError(err)
	test.True(less)

	_, err = dispatch.Less[any](1i, 2i)
	test.ErrorIs(err, errors.ErrUnsupported)
}

func TestHash(t *testing.T) {
	test := require.New(t)

	hash := func(v any) uint64 {
		t.Helper()
		h, err := dispatch.Hash(v)
		test.NoError(err)
		return h
	}

	test.Equal(hash(42), hash(42))
	test.NotEqual(hash(42), hash(43))
	test.NotEqual(hash(42), hash(int8(42)), "the dynamic type is part of the hash")
	test.Equal(hash(0.0), hash(math.Copysign(0, -1)))
	test.Equal(hash("ab"), hash("a"+"b"))
	test.NotEqual(hash([]string{"ab", "c"}), hash([]string{"a", "bc"}))

	m1 := map[string]int{}
	m2 := map[string]int{}
	for i, s := range []string{"a", "b", "c", "d", "e", "f"} {
		m1[s] = i
		m2[s] = i
	}
	test.Equal(hash(m1), hash(m2))

	m2["f"] = 0
	test.NotEqual(hash(m1), hash(m2))

	h, err := dispatch.Hash(hashedCaseless{caseless{"abc"}})
	test.NoError(err)
	g, err := dispatch.Hash(hashedCaseless{caseless{"ABC"}})
	test.NoError(err)
	test.Equal(h, g)

	_, err = dispatch.Hash(func() {})
	test.ErrorIs(err, errors.ErrUnsupported)
}

func TestCompareNotAComparison(t *testing.T) {
	_, err := dispatch.Compare(dispatch.OpHash, 1, 1)
	require.Error(t, err)
}

func TestCapabilitiesString(t *testing.T) {
	test := require.New(t)
	test.Equal("{==, !=, hash}", dispatch.Detect[complex64]().String())
	test.Equal("{}", dispatch.Detect[func()]().String())
	test.Equal("<=", dispatch.OpLessEqual.String())
}
