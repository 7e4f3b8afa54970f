package dynobject_test

import (
	"fmt"
	"iter"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-digitaltwin/go-dynobject"
)

type document struct {
	Title  dynobject.Handle
	Tags   []dynobject.Int
	Meta   map[string]dynobject.Handle
	Ref    *dynobject.Handle // pointers are not followed
	hidden dynobject.Handle  // unexported fields are not followed
}

func TestInspect(t *testing.T) {
	// Create the tree for the test.
	//        ┌─ 1
	//        │
	//   root─┼─ nested ─── 2
	//        │
	//        └─ (unset)
	nested := dynobject.NewCompound([]dynobject.Handle{dynobject.NewAtom(2).Handle})
	root := dynobject.NewCompound([]dynobject.Handle{
		dynobject.NewAtom(1).Handle,
		nested.Handle,
		{},
	})

	var visited []string
	dynobject.Inspect(root.Handle, func(h dynobject.Handle) bool {
		visited = append(visited, h.TypeName())
		return true
	})

	want := []string{
		"Ptr<[]dynobject.Handle>",
		"Ptr<int>", "Ptr<nil>",
		"Ptr<[]dynobject.Handle>",
		"Ptr<int>", "Ptr<nil>",
		"Ptr<nil>",
		"Ptr<nil>", "Ptr<nil>", // the unset child and its end
		"Ptr<nil>",
	}
	if diff := cmp.Diff(want, visited); diff != "" {
		t.Errorf("Inspect() order mismatch (-want +got):\n%s", diff)
	}
}

func TestInspectPrune(t *testing.T) {
	nested := dynobject.NewCompound([]dynobject.Handle{dynobject.NewAtom(2).Handle})
	root := dynobject.NewCompound([]dynobject.Handle{nested.Handle, dynobject.NewAtom(1).Handle})

	var visited []string
	dynobject.Inspect(root.Handle, func(h dynobject.Handle) bool {
		visited = append(visited, h.String())
		return !h.Same(nested.Handle)
	})

	// The nested compound is visited, but neither its children nor its end.
	if slices.Contains(visited, "[int](2)") {
		t.Errorf("Inspect() visited a child of a pruned handle: %v", visited)
	}
	if !slices.Contains(visited, "[int](1)") {
		t.Errorf("Inspect() did not visit a sibling of a pruned handle: %v", visited)
	}
}

func TestHandlesOf(t *testing.T) {
	title := dynobject.NewAtom("title").Handle
	ref := dynobject.NewAtom("ref").Handle
	doc := document{
		Title:  title,
		Tags:   []dynobject.Int{dynobject.NewAtom(1), dynobject.NewAtom(2)},
		Meta:   map[string]dynobject.Handle{"author": dynobject.NewAtom("me").Handle},
		Ref:    &ref,
		hidden: dynobject.NewAtom("hidden").Handle,
	}

	var got []string
	for h := range dynobject.HandlesOf(&doc) {
		got = append(got, h.String())
	}
	want := []string{"[string](title)", "[int](1)", "[int](2)", "[string](me)"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("HandlesOf() mismatch (-want +got):\n%s", diff)
	}

	// A compound's children are the handles of its payload.
	c := dynobject.NewCompound(doc)
	var children int
	dynobject.Inspect(c.Handle, func(h dynobject.Handle) bool {
		if h.IsSet() && !h.Same(c.Handle) {
			children++
		}
		return true
	})
	if children != len(want) {
		t.Errorf("Inspect() visited %d children, want %d", children, len(want))
	}
}

// outline is a payload that chooses its own children.
type outline struct {
	sections []dynobject.Handle
}

func (o *outline) Children() iter.Seq[dynobject.Handle] {
	return slices.Values(o.sections)
}

type depthCounter struct {
	depth, max *int
}

func (v depthCounter) Visit(h dynobject.Handle) dynobject.Visitor {
	if !h.IsSet() {
		*v.depth--
		return nil
	}
	*v.depth++
	*v.max = max(*v.max, *v.depth)
	return v
}

func TestWalkParent(t *testing.T) {
	leaf := dynobject.NewCompound(outline{})
	mid := dynobject.NewCompound(outline{sections: []dynobject.Handle{leaf.Handle}})
	root := dynobject.NewCompound(outline{sections: []dynobject.Handle{mid.Handle, dynobject.NewAtom(0).Handle}})

	var depth, deepest int
	dynobject.Walk(depthCounter{&depth, &deepest}, root.Handle)
	if depth != 0 {
		t.Errorf("depth after Walk() = %d, want 0", depth)
	}
	if deepest != 3 {
		t.Errorf("deepest level = %d, want 3", deepest)
	}
}

func ExampleInspect() {
	tree := dynobject.NewCompound([]dynobject.Handle{
		dynobject.NewAtom("A").Handle,
		dynobject.NewCompound([]dynobject.Handle{dynobject.NewAtom("B").Handle}).Handle,
	})

	dynobject.Inspect(tree.Handle, func(h dynobject.Handle) bool {
		if v, err := h.Value(); err == nil {
			if _, ok := v.(*dynobject.Compound[[]dynobject.Handle]); ok {
				fmt.Println("list")
				return true
			}
		}
		fmt.Println(h)
		return true
	})
	// Output:
	// list
	// [string](A)
	// (none)
	// list
	// [string](B)
	// (none)
	// (none)
	// (none)
}
