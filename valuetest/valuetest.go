/*
Package valuetest provides a suite of tests designed to assess implementations
of dynobject.Value (e.g. Atom, Compound, or user-defined wrappers).

The tests operate on sample values via the dynobject.Value interface to check
compliance with the behaviours defined by that interface.

Call valuetest.Run in its own test to invoke the test-suite:

	func TestWrapper(t *testing.T) {
		valuetest.Run(t,
			// Samples of the tested type.
			dynobject.NewHandle(NewWrapper(1)),
			dynobject.NewHandle(NewWrapper(2)),
			// And of another type.
			dynobject.NewAtom("x").Handle,
		)
	}

The suite checks every ordered pair of samples, so give it both equal and
different values of the tested type, plus at least one value of another type.
Samples must be equal to themselves (e.g. no NaN payloads).
*/
package valuetest

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/go-digitaltwin/go-dynobject"
)

type testCase struct {
	// Subtest name.
	name string
	// A path leading to the test-case's file and line in the source code.
	location string
	check    check
}

var cases = []testCase{
	{name: "reflexive", location: locateSource(), check: reflexive},
	{name: "negation", location: locateSource(), check: negation},
	{name: "ordering", location: locateSource(), check: ordering},
	{name: "mismatch-policy", location: locateSource(), check: mismatchPolicy},
	{name: "hash-consistency", location: locateSource(), check: hashConsistency},
	{name: "naming", location: locateSource(), check: naming},
}

// Run checks the given samples against the dynobject.Value contract. Unset
// handles are skipped.
func Run(t *testing.T, samples ...dynobject.Handle) {
	t.Helper()

	var values []dynobject.Value
	for _, h := range samples {
		if v, err := h.Value(); err == nil {
			values = append(values, v)
		}
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for i, a := range values {
				for j, b := range values {
					if problem := c.check(a, b, i == j); problem != "" {
						// Print the location of the test-case to help debugging.
						t.Logf("Read the source for test-case %v at %v", c.name, c.location)
						t.Errorf("Check %v and %v: %v", a, b, problem)
					}
				}
			}
		})
	}
}

// locateSource returns the file and line of its caller.
func locateSource() (path string) {
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		panic("runtime.Caller failed")
	}
	return fmt.Sprintf("%v:%v", file, line)
}
