// Package types defines the recursive type tree of the adder checker.
//
// The set of variants is closed: every consumer dispatches with a type
// switch and is expected to handle all of them. Unresolved placeholders
// appear as Var leaves and are owned by a solver table elsewhere; this
// package only knows how to carry them.
package types

import (
	"fmt"
	"strings"
)

// Type is a node in the type tree.
type Type interface {
	// Eq reports structural equality. Vars and Quantifieds compare by
	// identity, classes by definition identity.
	Eq(Type) bool

	// mapChildren rebuilds the node with f applied to each direct child
	// type. Leaves return themselves.
	mapChildren(f func(Type) Type) Type

	fmt.Stringer
}

// MapChildren rebuilds t with f applied to each direct child type.
func MapChildren(t Type, f func(Type) Type) Type {
	return t.mapChildren(f)
}

// Transform rewrites t bottom-up, applying f to every node after its
// children have been rewritten.
func Transform(t Type, f func(Type) Type) Type {
	return f(t.mapChildren(func(c Type) Type {
		return Transform(c, f)
	}))
}

// Any is the gradual type, used when precise inference is unavailable or
// unsafe to compute further.
type Any struct{}

func (Any) Eq(other Type) bool {
	_, ok := other.(Any)
	return ok
}

func (a Any) mapChildren(func(Type) Type) Type { return a }

func (Any) String() string { return "Any" }

// Never is the empty type, the union of zero branches.
type Never struct{}

func (Never) Eq(other Type) bool {
	_, ok := other.(Never)
	return ok
}

func (n Never) mapChildren(func(Type) Type) Type { return n }

func (Never) String() string { return "Never" }

// NoneType is the type of None.
type NoneType struct{}

func (NoneType) Eq(other Type) bool {
	_, ok := other.(NoneType)
	return ok
}

func (n NoneType) mapChildren(func(Type) Type) Type { return n }

func (NoneType) String() string { return "None" }

// EllipsisType is the `...` parameter form, the gradual value of a
// param-spec.
type EllipsisType struct{}

func (EllipsisType) Eq(other Type) bool {
	_, ok := other.(EllipsisType)
	return ok
}

func (e EllipsisType) mapChildren(func(Type) Type) Type { return e }

func (EllipsisType) String() string { return "..." }

// Union is the union of two or more branches. Use Unions to build one; it
// maintains flattening and deduplication.
type Union struct {
	Members []Type
}

func (u Union) Eq(other Type) bool {
	o, ok := other.(Union)
	return ok && eqSlice(u.Members, o.Members)
}

func (u Union) mapChildren(f func(Type) Type) Type {
	return Union{Members: mapSlice(u.Members, f)}
}

func (u Union) String() string {
	parts := make([]string, len(u.Members))
	for i, m := range u.Members {
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}

// Class is a class definition. Definitions are compared by identity, so two
// classes with the same name in different scopes stay distinct.
type Class struct {
	Name string
}

// ClassType is an instance of a class, with type arguments if the class is
// generic.
type ClassType struct {
	Class *Class
	TArgs []Type
}

func (c ClassType) Eq(other Type) bool {
	o, ok := other.(ClassType)
	return ok && c.Class == o.Class && eqSlice(c.TArgs, o.TArgs)
}

func (c ClassType) mapChildren(f func(Type) Type) Type {
	if len(c.TArgs) == 0 {
		return c
	}
	return ClassType{Class: c.Class, TArgs: mapSlice(c.TArgs, f)}
}

func (c ClassType) String() string {
	if len(c.TArgs) == 0 {
		return c.Class.Name
	}
	parts := make([]string, len(c.TArgs))
	for i, a := range c.TArgs {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s[%s]", c.Class.Name, strings.Join(parts, ", "))
}

// Module is a module namespace. Members lists the names known to be
// importable from it; unioning two instances of the same module merges the
// member sets, modeling partial star-import accumulation.
type Module struct {
	Parts   []string
	Members []string
}

// Path returns the dotted module path.
func (m Module) Path() string {
	return strings.Join(m.Parts, ".")
}

// Merge unions the member sets of two instances of the same module.
func (m Module) Merge(other Module) Module {
	seen := make(map[string]bool, len(m.Members))
	members := append([]string{}, m.Members...)
	for _, name := range m.Members {
		seen[name] = true
	}
	for _, name := range other.Members {
		if !seen[name] {
			seen[name] = true
			members = append(members, name)
		}
	}
	return Module{Parts: m.Parts, Members: members}
}

func (m Module) Eq(other Type) bool {
	o, ok := other.(Module)
	if !ok || len(m.Parts) != len(o.Parts) || len(m.Members) != len(o.Members) {
		return false
	}
	for i, p := range m.Parts {
		if o.Parts[i] != p {
			return false
		}
	}
	for i, n := range m.Members {
		if o.Members[i] != n {
			return false
		}
	}
	return true
}

func (m Module) mapChildren(func(Type) Type) Type { return m }

func (m Module) String() string {
	return fmt.Sprintf("Module[%s]", m.Path())
}

func eqSlice(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i, t := range a {
		if !t.Eq(b[i]) {
			return false
		}
	}
	return true
}

func mapSlice(ts []Type, f func(Type) Type) []Type {
	out := make([]Type, len(ts))
	for i, t := range ts {
		out[i] = f(t)
	}
	return out
}
