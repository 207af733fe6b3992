package solver

import (
	"github.com/vito/adder/pkg/types"
)

// testStdlib supplies the well-known builtins.
type testStdlib struct {
	intClass  *types.Class
	strClass  *types.Class
	boolClass *types.Class
}

// sharedTestStdlib is a single instance shared by newTestStdlib and
// newTestOrder, so the classes a test builds types from are pointer-equal
// to the classes the oracle promotes literals to.
var sharedTestStdlib = &testStdlib{
	intClass:  &types.Class{Name: "int"},
	strClass:  &types.Class{Name: "str"},
	boolClass: &types.Class{Name: "bool"},
}

func newTestStdlib() *testStdlib {
	return sharedTestStdlib
}

func (s *testStdlib) Int() types.Type  { return types.ClassType{Class: s.intClass} }
func (s *testStdlib) Str() types.Type  { return types.ClassType{Class: s.strClass} }
func (s *testStdlib) Bool() types.Type { return types.ClassType{Class: s.boolClass} }

// testOrder is a small structural oracle: identical types are related,
// literals are subsets of their general type, unions are checked per
// branch, and generic instances recurse into their type arguments through
// the in-flight Subset so they share its gas and assumptions.
type testOrder struct {
	stdlib *testStdlib
	enums  map[*types.Class]int
}

func newTestOrder() *testOrder {
	return &testOrder{stdlib: newTestStdlib()}
}

func (o *testOrder) Stdlib() types.Stdlib { return o.stdlib }

func (o *testOrder) EnumMemberCount(cls *types.Class) (int, bool) {
	n, ok := o.enums[cls]
	return n, ok
}

func (o *testOrder) IsSubsetEq(sub *Subset, got, want types.Type) bool {
	if got.Eq(want) {
		return true
	}
	if sub.Assumptions.Has(got, want) {
		return true
	}
	sub.Assumptions.Add(got, want)
	if u, ok := want.(types.Union); ok {
		for _, m := range u.Members {
			if sub.IsSubsetEq(got, m) {
				return true
			}
		}
		return false
	}
	if lit, ok := got.(types.Literal); ok {
		for _, l := range lit.Lits {
			if !sub.IsSubsetEq(l.GeneralType(o.stdlib), want) {
				return false
			}
		}
		return true
	}
	if g, ok := got.(types.Tuple); ok {
		if w, ok := want.(types.Tuple); ok && len(g.Elems) == len(w.Elems) {
			for i := range g.Elems {
				if !sub.IsSubsetEq(g.Elems[i], w.Elems[i]) {
					return false
				}
			}
			return true
		}
	}
	if g, ok := got.(types.ClassType); ok {
		if w, ok := want.(types.ClassType); ok && g.Class == w.Class && len(g.TArgs) == len(w.TArgs) {
			for i := range g.TArgs {
				if !sub.IsSubsetEq(g.TArgs[i], w.TArgs[i]) {
					return false
				}
			}
			return true
		}
	}
	return false
}

// pingPongOrder re-enters the subset engine with the operands swapped, so
// any two distinct concrete types chase each other until the gas budget
// runs out.
type pingPongOrder struct {
	*testOrder
	calls int
}

func (o *pingPongOrder) IsSubsetEq(sub *Subset, got, want types.Type) bool {
	o.calls++
	return sub.IsSubsetEq(want, got)
}

type collectedError struct {
	Loc  Range
	Kind ErrorKind
	Msg  string
}

// testCollector records diagnostics for assertions.
type testCollector struct {
	entries []collectedError
}

func (c *testCollector) Add(loc Range, kind ErrorKind, msg string) {
	c.entries = append(c.entries, collectedError{Loc: loc, Kind: kind, Msg: msg})
}
