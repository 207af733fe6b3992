package solver

import "github.com/vito/adder/pkg/types"

// recurser guards recursive traversals against revisiting a Var that is
// already being expanded higher up the same call chain, which happens when
// a variable's answer refers back to itself.
type recurser struct {
	active map[types.Var]bool
}

func newRecurser() *recurser {
	return &recurser{active: make(map[types.Var]bool)}
}

// recurse marks v as in progress. ok is false if v is already being
// visited; otherwise the caller must defer release so the mark is cleared
// on every exit path.
func (r *recurser) recurse(v types.Var) (release func(), ok bool) {
	if r.active[v] {
		return nil, false
	}
	r.active[v] = true
	return func() { delete(r.active, v) }, true
}
