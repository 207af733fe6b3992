package types

// QuantifiedKind distinguishes the declaration forms a generic parameter
// can have.
type QuantifiedKind int

const (
	KindTypeVar QuantifiedKind = iota
	KindTypeVarTuple
	KindParamSpec
)

func (k QuantifiedKind) String() string {
	switch k {
	case KindTypeVarTuple:
		return "TypeVarTuple"
	case KindParamSpec:
		return "ParamSpec"
	default:
		return "TypeVar"
	}
}

// Restriction limits what a generic parameter may be instantiated to:
// either an upper bound or a closed set of value constraints. The zero
// value means unrestricted.
type Restriction struct {
	Bound       Type
	Constraints []Type
}

// QuantifiedInfo describes a generic type parameter: its declared name and
// kind, any restriction, and an optional default.
type QuantifiedInfo struct {
	Name        string
	Kind        QuantifiedKind
	Restriction Restriction
	Default     Type
}

// AsGradualType is the fallback a parameter resolves to when no call-site
// information pins it down: its default if declared, otherwise the gradual
// form matching its kind.
func (q *QuantifiedInfo) AsGradualType() Type {
	if q.Default != nil {
		return q.Default
	}
	switch q.Kind {
	case KindTypeVarTuple:
		return UnboundedTuple{Elem: Any{}}
	case KindParamSpec:
		return EllipsisType{}
	default:
		return Any{}
	}
}

// Quantified is an occurrence of a generic parameter inside the body of a
// generic definition. Instantiation replaces it with a fresh Var.
type Quantified struct {
	ID   uint64
	Info *QuantifiedInfo
}

// NewQuantified mints a parameter occurrence with a fresh identity.
func NewQuantified(u *UniqueFactory, info *QuantifiedInfo) Quantified {
	return Quantified{ID: u.Fresh(), Info: info}
}

func (q Quantified) Eq(other Type) bool {
	o, ok := other.(Quantified)
	return ok && q.ID == o.ID
}

func (q Quantified) mapChildren(func(Type) Type) Type { return q }

func (q Quantified) String() string { return q.Info.Name }

// TParams is the ordered parameter list of a generic definition.
type TParams []Quantified

// Subst replaces quantified parameter occurrences in t, keyed by identity.
func Subst(t Type, m map[uint64]Type) Type {
	if len(m) == 0 {
		return t
	}
	return Transform(t, func(x Type) Type {
		if q, ok := x.(Quantified); ok {
			if r, ok := m[q.ID]; ok {
				return r
			}
		}
		return x
	})
}
