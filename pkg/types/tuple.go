package types

import (
	"fmt"
	"strings"
)

// Tuple is a fixed-length tuple, tuple[t1, t2].
type Tuple struct {
	Elems []Type
}

func (t Tuple) Eq(other Type) bool {
	o, ok := other.(Tuple)
	return ok && eqSlice(t.Elems, o.Elems)
}

func (t Tuple) mapChildren(f func(Type) Type) Type {
	return Tuple{Elems: mapSlice(t.Elems, f)}
}

func (t Tuple) String() string {
	if len(t.Elems) == 0 {
		return "tuple[()]"
	}
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return fmt.Sprintf("tuple[%s]", strings.Join(parts, ", "))
}

// UnboundedTuple is an indefinite-length tuple, tuple[t, ...].
type UnboundedTuple struct {
	Elem Type
}

func (t UnboundedTuple) Eq(other Type) bool {
	o, ok := other.(UnboundedTuple)
	return ok && t.Elem.Eq(o.Elem)
}

func (t UnboundedTuple) mapChildren(f func(Type) Type) Type {
	return UnboundedTuple{Elem: f(t.Elem)}
}

func (t UnboundedTuple) String() string {
	return fmt.Sprintf("tuple[%s, ...]", t.Elem)
}

// UnpackedTuple is tuple[p1, p2, *middle, s1, s2], where the middle is a
// type var tuple or an unbounded tuple.
type UnpackedTuple struct {
	Prefix []Type
	Middle Type
	Suffix []Type
}

// NewUnpackedTuple builds an unpacked tuple, collapsing the degenerate case
// where the unpacked middle is the whole tuple.
func NewUnpackedTuple(prefix []Type, middle Type, suffix []Type) Type {
	if len(prefix) == 0 && len(suffix) == 0 {
		switch middle.(type) {
		case Tuple, UnboundedTuple, UnpackedTuple:
			return middle
		}
	}
	return UnpackedTuple{Prefix: prefix, Middle: middle, Suffix: suffix}
}

func (t UnpackedTuple) Eq(other Type) bool {
	o, ok := other.(UnpackedTuple)
	return ok && eqSlice(t.Prefix, o.Prefix) && t.Middle.Eq(o.Middle) && eqSlice(t.Suffix, o.Suffix)
}

func (t UnpackedTuple) mapChildren(f func(Type) Type) Type {
	return UnpackedTuple{
		Prefix: mapSlice(t.Prefix, f),
		Middle: f(t.Middle),
		Suffix: mapSlice(t.Suffix, f),
	}
}

func (t UnpackedTuple) String() string {
	var parts []string
	for _, p := range t.Prefix {
		parts = append(parts, p.String())
	}
	parts = append(parts, "*"+t.Middle.String())
	for _, s := range t.Suffix {
		parts = append(parts, s.String())
	}
	return fmt.Sprintf("tuple[%s]", strings.Join(parts, ", "))
}

// SimplifyTuple normalizes a tuple whose unpacked middle has resolved to a
// concrete form: a concrete middle is spliced into a plain tuple, and a
// nested unpacked middle is flattened. Non-tuples pass through unchanged.
func SimplifyTuple(t Type) Type {
	u, ok := t.(UnpackedTuple)
	if !ok {
		return t
	}
	switch m := u.Middle.(type) {
	case Tuple:
		elems := make([]Type, 0, len(u.Prefix)+len(m.Elems)+len(u.Suffix))
		elems = append(elems, u.Prefix...)
		elems = append(elems, m.Elems...)
		elems = append(elems, u.Suffix...)
		return Tuple{Elems: elems}
	case UnpackedTuple:
		prefix := append(append([]Type{}, u.Prefix...), m.Prefix...)
		suffix := append(append([]Type{}, m.Suffix...), u.Suffix...)
		return SimplifyTuple(NewUnpackedTuple(prefix, m.Middle, suffix))
	}
	return u
}
