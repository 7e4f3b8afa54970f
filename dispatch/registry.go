package dispatch

import (
	"reflect"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/go-digitaltwin/go-dynobject/internal/telemetry"
)

// registry caches the dispatch table of every payload type seen so far. Tables
// are never evicted: the set of types in a program is finite.
var registry = xsync.NewMapOf[reflect.Type, *table]()

// tableOf returns the dispatch table of t, compiling it (and the tables of its
// parts) on first use. Concurrent first uses may compile the same type twice;
// the first table published wins and both are equivalent.
func tableOf(t reflect.Type) *table {
	if tab, ok := registry.Load(t); ok {
		return tab
	}

	end := telemetry.StartCompilation(t.String())
	b := &builder{building: make(map[reflect.Type]*table)}
	root := b.build(t)
	b.prune()
	var published int
	for _, tab := range b.order {
		actual, loaded := registry.LoadOrStore(tab.typ, tab)
		if !loaded {
			published++
			telemetry.TableCompiled(tab.typ.String(), tab.capabilities().String())
		}
		if tab == root {
			root = actual
		}
	}
	end(published)
	return root
}
