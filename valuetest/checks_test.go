package valuetest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/go-digitaltwin/go-dynobject"
)

// skewed implements > as >=, and >= consistently with that mistake.
type skewed struct{ n int }

func (s *skewed) of(v dynobject.Value) int { return v.(*skewed).n }

func (s *skewed) Equal(v dynobject.Value) (bool, error)    { return s.n == s.of(v), nil }
func (s *skewed) NotEqual(v dynobject.Value) (bool, error) { return s.n != s.of(v), nil }
func (s *skewed) Less(v dynobject.Value) (bool, error)     { return s.n < s.of(v), nil }
func (s *skewed) Greater(v dynobject.Value) (bool, error)  { return s.n <= s.of(v), nil }
func (s *skewed) LessEqual(v dynobject.Value) (bool, error) {
	return s.n <= s.of(v), nil
}
func (s *skewed) GreaterEqual(v dynobject.Value) (bool, error) {
	return s.n <= s.of(v), nil
}
func (s *skewed) TypeName() string      { return "skewed" }
func (s *skewed) String() string        { return fmt.Sprint(s.n) }
func (s *skewed) Hash() (uint64, error) { return uint64(s.n), nil }

func TestOrderingCheck(t *testing.T) {
	problem := ordering(&skewed{1}, &skewed{2}, false)
	for _, op := range []string{"Greater:", "GreaterEqual:"} {
		if !strings.Contains(problem, op) {
			t.Errorf("ordering() problem does not report %s\n%s", op, problem)
		}
	}

	one, _ := dynobject.NewAtom(1).Value()
	two, _ := dynobject.NewAtom(2).Value()
	if problem := ordering(one, two, false); problem != "" {
		t.Errorf("ordering() = %q for atoms, want no problem", problem)
	}
}
