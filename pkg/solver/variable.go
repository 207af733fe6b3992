// Package solver resolves type variables for one compilation unit.
//
// A Solver owns the binding table mapping each types.Var to its current
// Variable state. Inference introduces fresh variables for container
// elements, generic instantiations, type decomposition, and recursive
// bindings; the subset engine then solves them as a side effect of
// assignability checks.
package solver

import (
	"fmt"

	"github.com/vito/adder/pkg/types"
)

// Variable is what a Var currently denotes. The variant set is closed.
type Variable interface {
	isVariable()
	fmt.Stringer
}

// Contained marks a variable for the element type of a container whose
// contents are not yet specified, e.g. the element of `[]`.
type Contained struct{}

// Quantified marks a variable standing in for a generic parameter pending
// instantiation.
type Quantified struct {
	Info *types.QuantifiedInfo
}

// Recursive marks a variable that ties a self-referential computation,
// e.g. `x = f(); def f(): return x`.
type Recursive struct {
	// Default is used if the variable must be forced before its tie
	// resolves. Nil means Any.
	Default types.Type
}

// Unwrap marks a variable used to decompose a type, e.g. getting T out of
// Awaitable[T].
type Unwrap struct{}

// Answer is a solved variable. The answer may itself still contain other
// unresolved Vars.
type Answer struct {
	Type types.Type
}

func (Contained) isVariable()  {}
func (Quantified) isVariable() {}
func (Recursive) isVariable()  {}
func (Unwrap) isVariable()     {}
func (Answer) isVariable()     {}

func (Contained) String() string { return "Contained" }

func (q Quantified) String() string {
	if q.Info.Default != nil {
		return fmt.Sprintf("Quantified(%s, default=%s)", q.Info.Kind, q.Info.Default)
	}
	return fmt.Sprintf("Quantified(%s)", q.Info.Kind)
}

func (r Recursive) String() string {
	if r.Default != nil {
		return fmt.Sprintf("Recursive(default=%s)", r.Default)
	}
	return "Recursive"
}

func (Unwrap) String() string { return "Unwrap" }

func (a Answer) String() string { return a.Type.String() }

// promote widens literals when binding an inferred result into a variable
// whose kind infers general types: `x = 1` stays Literal[1], but `[1]`
// becomes list[int].
func promote(v Variable, t types.Type, order TypeOrder) types.Type {
	switch v.(type) {
	case Contained, Quantified:
		return types.PromoteLiterals(t, order.Stdlib())
	default:
		return t
	}
}
