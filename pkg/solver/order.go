package solver

import "github.com/vito/adder/pkg/types"

// TypeOrder is the structural subtyping oracle for two concrete (non-Var)
// types. The solver delegates concrete-vs-concrete subset checks to it; the
// oracle may call back into sub.IsSubsetEq for nested positions (function
// parameters, generic arguments), sharing the query's gas budget and
// recursive assumptions.
type TypeOrder interface {
	IsSubsetEq(sub *Subset, got, want types.Type) bool

	// Stdlib gives access to well-known builtin types for promotion and
	// defaulting decisions.
	Stdlib() types.Stdlib

	// EnumMemberCount reports how many members cls defines. ok is false
	// when cls is not an enum.
	EnumMemberCount(cls *types.Class) (count int, ok bool)
}

// Range is a source location, as byte offsets into the module source.
type Range struct {
	Start int
	End   int
}

// ErrorKind classifies a diagnostic emitted by the solver.
type ErrorKind int

const (
	// ErrorKindBadAssignment is an ordinary `got` is-not-assignable-to
	// `want` mismatch.
	ErrorKindBadAssignment ErrorKind = iota

	// ErrorKindCycleBreaking reports that a recursive binding resolved to
	// a type incompatible with the approximation already committed while
	// breaking its cycle.
	ErrorKindCycleBreaking
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindCycleBreaking:
		return "cycle-breaking"
	default:
		return "bad-assignment"
	}
}

// ErrorCollector receives the solver's user-visible diagnostics. Internal
// consistency violations never go here; those panic.
type ErrorCollector interface {
	Add(loc Range, kind ErrorKind, msg string)
}
