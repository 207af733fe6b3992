package types

import (
	"fmt"
	"strings"
)

// Params is the parameter side of a callable signature.
type Params interface {
	eqParams(Params) bool
	mapChildren(f func(Type) Type) Params
	fmt.Stringer
}

// ParamsList is a concrete positional parameter list.
type ParamsList struct {
	Params []Type
}

func (p ParamsList) eqParams(other Params) bool {
	o, ok := other.(ParamsList)
	return ok && eqSlice(p.Params, o.Params)
}

func (p ParamsList) mapChildren(f func(Type) Type) Params {
	return ParamsList{Params: mapSlice(p.Params, f)}
}

func (p ParamsList) String() string {
	parts := make([]string, len(p.Params))
	for i, t := range p.Params {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

// ParamsEllipsis is the gradual parameter list, (...).
type ParamsEllipsis struct{}

func (ParamsEllipsis) eqParams(other Params) bool {
	_, ok := other.(ParamsEllipsis)
	return ok
}

func (p ParamsEllipsis) mapChildren(func(Type) Type) Params { return p }

func (ParamsEllipsis) String() string { return "..." }

// ParamsParamSpec is a parameter list ending in an unresolved param-spec,
// with zero or more concrete parameters prepended.
type ParamsParamSpec struct {
	Prefix    []Type
	ParamSpec Type
}

func (p ParamsParamSpec) eqParams(other Params) bool {
	o, ok := other.(ParamsParamSpec)
	return ok && eqSlice(p.Prefix, o.Prefix) && p.ParamSpec.Eq(o.ParamSpec)
}

func (p ParamsParamSpec) mapChildren(f func(Type) Type) Params {
	return ParamsParamSpec{
		Prefix:    mapSlice(p.Prefix, f),
		ParamSpec: f(p.ParamSpec),
	}
}

func (p ParamsParamSpec) String() string {
	parts := make([]string, 0, len(p.Prefix)+1)
	for _, t := range p.Prefix {
		parts = append(parts, t.String())
	}
	parts = append(parts, "**"+p.ParamSpec.String())
	return strings.Join(parts, ", ")
}

// Callable is a bare callable signature.
type Callable struct {
	Params Params
	Ret    Type
}

// NewCallableList builds a callable with a concrete parameter list.
func NewCallableList(params []Type, ret Type) *Callable {
	return &Callable{Params: ParamsList{Params: params}, Ret: ret}
}

// NewCallableEllipsis builds a callable that accepts anything, (...) -> ret.
func NewCallableEllipsis(ret Type) *Callable {
	return &Callable{Params: ParamsEllipsis{}, Ret: ret}
}

// NewCallableConcatenate builds a callable whose parameters are a concrete
// prefix followed by a param-spec tail.
func NewCallableConcatenate(prefix []Type, paramSpec Type, ret Type) *Callable {
	return &Callable{Params: ParamsParamSpec{Prefix: prefix, ParamSpec: paramSpec}, Ret: ret}
}

func (c *Callable) Eq(other Type) bool {
	o, ok := other.(*Callable)
	return ok && c.Params.eqParams(o.Params) && c.Ret.Eq(o.Ret)
}

func (c *Callable) mapChildren(f func(Type) Type) Type {
	return &Callable{Params: c.Params.mapChildren(f), Ret: f(c.Ret)}
}

func (c *Callable) String() string {
	return fmt.Sprintf("(%s) -> %s", c.Params, c.Ret)
}

// FuncMetadata is the identity a named function carries on top of its bare
// signature.
type FuncMetadata struct {
	Name string
}

// Function is a named function: a callable signature plus metadata.
type Function struct {
	Signature Callable
	Metadata  FuncMetadata
}

func (fn *Function) Eq(other Type) bool {
	o, ok := other.(*Function)
	return ok && fn.Metadata == o.Metadata && fn.Signature.Eq(&o.Signature)
}

func (fn *Function) mapChildren(f func(Type) Type) Type {
	sig := fn.Signature.mapChildren(f).(*Callable)
	return &Function{Signature: *sig, Metadata: fn.Metadata}
}

func (fn *Function) String() string {
	return fmt.Sprintf("def %s%s", fn.Metadata.Name, fn.Signature.String())
}

// Concatenate is a param-spec expression with concrete types prepended,
// Concatenate[t1, t2, P]. It only appears while P is unresolved; once P
// resolves, simplification splices it away.
type Concatenate struct {
	Prefix    []Type
	ParamSpec Type
}

func (c Concatenate) Eq(other Type) bool {
	o, ok := other.(Concatenate)
	return ok && eqSlice(c.Prefix, o.Prefix) && c.ParamSpec.Eq(o.ParamSpec)
}

func (c Concatenate) mapChildren(f func(Type) Type) Type {
	return Concatenate{
		Prefix:    mapSlice(c.Prefix, f),
		ParamSpec: f(c.ParamSpec),
	}
}

func (c Concatenate) String() string {
	parts := make([]string, 0, len(c.Prefix)+1)
	for _, t := range c.Prefix {
		parts = append(parts, t.String())
	}
	parts = append(parts, c.ParamSpec.String())
	return fmt.Sprintf("Concatenate[%s]", strings.Join(parts, ", "))
}

// ParamSpecValue is a resolved param-spec: a concrete parameter list as a
// first-class type.
type ParamSpecValue struct {
	Params []Type
}

func (p ParamSpecValue) Eq(other Type) bool {
	o, ok := other.(ParamSpecValue)
	return ok && eqSlice(p.Params, o.Params)
}

func (p ParamSpecValue) mapChildren(f func(Type) Type) Type {
	return ParamSpecValue{Params: mapSlice(p.Params, f)}
}

func (p ParamSpecValue) String() string {
	parts := make([]string, len(p.Params))
	for i, t := range p.Params {
		parts[i] = t.String()
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
}
