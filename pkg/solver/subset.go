package solver

import "github.com/vito/adder/pkg/types"

// Assumptions is the set of (got, want) pairs the current query already
// assumes assignable. Structurally cyclic types (protocols referencing
// themselves) terminate by assuming success on re-encounter instead of
// looping.
type Assumptions struct {
	pairs [][2]types.Type
}

// Has reports whether the pair is already assumed.
func (a *Assumptions) Has(got, want types.Type) bool {
	for _, p := range a.pairs {
		if p[0].Eq(got) && p[1].Eq(want) {
			return true
		}
	}
	return false
}

// Add records a pair as assumed for the remainder of the query.
func (a *Assumptions) Add(got, want types.Type) {
	a.pairs = append(a.pairs, [2]types.Type{got, want})
}

// Subset implements one top-level assignability query. It borrows the
// Solver's table for the duration of the query and must not be retained or
// reused across queries.
type Subset struct {
	solver *Solver

	// Order decides concrete-vs-concrete cases. It may call back into
	// IsSubsetEq for nested positions, sharing this query's gas and
	// assumptions.
	Order TypeOrder

	// union is set when the query only runs to force contained variables
	// while building a union; the check result is discarded.
	union bool

	gas gas

	// Assumptions is read and extended by the Order while it is
	// delegated into.
	Assumptions Assumptions
}

// IsEqual reports mutual assignability.
func (sub *Subset) IsEqual(a, b types.Type) bool {
	return sub.IsSubsetEq(a, b) && sub.IsSubsetEq(b, a)
}

// IsSubsetEq reports whether `got <: want`, solving free variables on
// either side under that assumption. When the gas budget is exhausted it
// answers false: we really have no idea, so give up.
func (sub *Subset) IsSubsetEq(got, want types.Type) bool {
	if sub.gas.stop() {
		return false
	}
	res := sub.isSubsetEqVar(got, want)
	sub.gas.restore()
	return res
}

// shouldForce decides whether a variable in the given state may be
// committed by this check. Answered variables are stable and Recursive
// variables are never solved from a subset check; in union mode only
// Contained variables are forced, so Quantified and Unwrap variables are
// not consumed merely to support a union merge. The union-mode exclusion of
// Recursive alongside forced Contained is long-standing behavior; keep it.
func (sub *Subset) shouldForce(v Variable) bool {
	switch v.(type) {
	case Answer, Recursive:
		return false
	case Contained:
		return true
	default:
		return !sub.union
	}
}

// isSubsetEqVar handles the Var cases, delegating concrete-vs-concrete
// pairs to the Order.
func (sub *Subset) isSubsetEqVar(got, want types.Type) bool {
	if got.Eq(want) {
		return true
	}
	s := sub.solver
	v1, gotVar := got.(types.Var)
	v2, wantVar := want.(types.Var)
	switch {
	case gotVar && wantVar:
		s.mu.Lock()
		e1 := s.lookup(v1)
		e2 := s.lookup(v2)
		a1, answered1 := e1.(Answer)
		a2, answered2 := e2.(Answer)
		switch {
		case answered1 && answered2:
			// Drop the lock before recursing.
			s.mu.Unlock()
			return sub.IsSubsetEq(a1.Type, a2.Type)
		case answered2 && sub.shouldForce(e1):
			if !got.Eq(a2.Type) {
				s.bind(v1, a2.Type)
			}
			s.mu.Unlock()
			return true
		case answered1 && sub.shouldForce(e2):
			if !a1.Type.Eq(want) {
				// Promote when solving the Var on the want side but not
				// the got side, so we infer general types while leaving
				// user-specified types alone.
				s.bind(v2, promote(e2, a1.Type, sub.Order))
			}
			s.mu.Unlock()
			return true
		case sub.shouldForce(e1) && sub.shouldForce(e2):
			// Tie the variables together. Doesn't matter which way
			// round we do it.
			s.bind(v1, v2)
			s.mu.Unlock()
			return true
		default:
			s.mu.Unlock()
			return false
		}
	case gotVar:
		s.mu.Lock()
		e := s.lookup(v1)
		if a, ok := e.(Answer); ok {
			s.mu.Unlock()
			return sub.IsSubsetEq(a.Type, want)
		}
		if sub.shouldForce(e) {
			s.bind(v1, want)
			s.mu.Unlock()
			return true
		}
		s.mu.Unlock()
		return false
	case wantVar:
		s.mu.Lock()
		e := s.lookup(v2)
		if a, ok := e.(Answer); ok {
			s.mu.Unlock()
			return sub.IsSubsetEq(got, a.Type)
		}
		if sub.shouldForce(e) {
			// Same promotion asymmetry as above: only the want side
			// generalizes.
			s.bind(v2, promote(e, got, sub.Order))
			s.mu.Unlock()
			return true
		}
		s.mu.Unlock()
		return false
	default:
		return sub.Order.IsSubsetEq(sub, got, want)
	}
}
