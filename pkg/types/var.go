package types

import (
	"strconv"
	"sync/atomic"
)

// Var is an opaque handle for an unresolved type placeholder. A Var is
// scoped to the solver table that created it; consulting it against any
// other table is a programming error.
//
// Var doubles as a Type leaf so placeholders can sit anywhere in the tree.
type Var uint64

// NoVar is a reserved sentinel. It must never be bound or forced.
const NoVar Var = 0

func (v Var) Eq(other Type) bool {
	o, ok := other.(Var)
	return ok && v == o
}

func (v Var) mapChildren(func(Type) Type) Type { return v }

func (v Var) String() string {
	return "@" + strconv.FormatUint(uint64(v), 10)
}

// UniqueFactory hands out process-unique identities for Vars and quantified
// parameters. A single factory is shared across solvers so a Var can never
// collide with one minted for another table.
type UniqueFactory struct {
	next atomic.Uint64
}

// NewUniqueFactory creates a factory. Identity 0 is reserved for NoVar.
func NewUniqueFactory() *UniqueFactory {
	return &UniqueFactory{}
}

// Fresh returns the next unused identity, starting from 1.
func (u *UniqueFactory) Fresh() uint64 {
	return u.next.Add(1)
}

// NewVar mints a fresh Var.
func NewVar(u *UniqueFactory) Var {
	return Var(u.Fresh())
}
