package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Stdlib exposes the well-known builtin types that literals widen to. It is
// supplied by the surrounding checker; this package never looks types up on
// its own.
type Stdlib interface {
	Int() Type
	Str() Type
	Bool() Type
}

// Lit is a single literal value. Literal arms carry one or more of these.
type Lit interface {
	EqLit(Lit) bool

	// GeneralType is the type the literal widens to under promotion.
	GeneralType(stdlib Stdlib) Type

	fmt.Stringer
}

// LitInt is an integer literal value.
type LitInt int64

func (l LitInt) EqLit(other Lit) bool {
	o, ok := other.(LitInt)
	return ok && l == o
}

func (l LitInt) GeneralType(stdlib Stdlib) Type { return stdlib.Int() }

func (l LitInt) String() string { return strconv.FormatInt(int64(l), 10) }

// LitStr is a string literal value.
type LitStr string

func (l LitStr) EqLit(other Lit) bool {
	o, ok := other.(LitStr)
	return ok && l == o
}

func (l LitStr) GeneralType(stdlib Stdlib) Type { return stdlib.Str() }

func (l LitStr) String() string { return strconv.Quote(string(l)) }

// LitBool is a boolean literal value.
type LitBool bool

func (l LitBool) EqLit(other Lit) bool {
	o, ok := other.(LitBool)
	return ok && l == o
}

func (l LitBool) GeneralType(stdlib Stdlib) Type { return stdlib.Bool() }

func (l LitBool) String() string {
	if l {
		return "True"
	}
	return "False"
}

// LitEnum is an enum member literal.
type LitEnum struct {
	Class  *Class
	Member string
}

func (l LitEnum) EqLit(other Lit) bool {
	o, ok := other.(LitEnum)
	return ok && l.Class == o.Class && l.Member == o.Member
}

func (l LitEnum) GeneralType(Stdlib) Type {
	return ClassType{Class: l.Class}
}

func (l LitEnum) String() string {
	return l.Class.Name + "." + l.Member
}

// Literal is a literal arm. A single arm may carry several values; union
// simplification collapses adjacent literal branches into one.
type Literal struct {
	Lits []Lit
}

// NewLiteral builds a single-value literal arm.
func NewLiteral(l Lit) Literal {
	return Literal{Lits: []Lit{l}}
}

func (l Literal) Eq(other Type) bool {
	o, ok := other.(Literal)
	if !ok || len(l.Lits) != len(o.Lits) {
		return false
	}
	for i, lit := range l.Lits {
		if !lit.EqLit(o.Lits[i]) {
			return false
		}
	}
	return true
}

func (l Literal) mapChildren(func(Type) Type) Type { return l }

func (l Literal) String() string {
	parts := make([]string, len(l.Lits))
	for i, lit := range l.Lits {
		parts[i] = lit.String()
	}
	return fmt.Sprintf("Literal[%s]", strings.Join(parts, ", "))
}

// PromoteLiterals widens every literal arm in t to its general type, e.g.
// Literal[1] becomes int. Used when binding inferred (right-hand) results so
// that containers get general element types while user-written types stay
// precise.
func PromoteLiterals(t Type, stdlib Stdlib) Type {
	return Transform(t, func(x Type) Type {
		lit, ok := x.(Literal)
		if !ok {
			return x
		}
		general := make([]Type, 0, len(lit.Lits))
		for _, l := range lit.Lits {
			general = append(general, l.GeneralType(stdlib))
		}
		return Unions(general)
	})
}
