package solver

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/vito/adder/pkg/types"
)

// Error message when a variable has leaked from one module to another.
//
// Vars must not leak from one module to another, but it has happened. The
// easiest debugging technique is to dump the Solver and look for a stray
// `@N` in the output; the usual cause is a Type field the visitor missed.
const varLeak = "internal error: a variable has leaked from one module to another"

// Solver owns the variable binding table for one compilation unit. Many
// goroutines may read already-solved variables concurrently; binding takes
// exclusive access. It must not be shared across compilation units.
type Solver struct {
	mu        sync.RWMutex
	variables map[types.Var]Variable

	depthLimit int
	initialGas int
	trace      bool
}

// NewSolver creates a solver with the default budgets.
func NewSolver() *Solver {
	return NewSolverConfig(DefaultConfig())
}

// NewSolverConfig creates a solver with explicit budgets. Non-positive
// budgets fall back to the defaults.
func NewSolverConfig(cfg Config) *Solver {
	if cfg.TypeDepthLimit <= 0 {
		cfg.TypeDepthLimit = defaultTypeDepthLimit
	}
	if cfg.SubsetGas <= 0 {
		cfg.SubsetGas = defaultSubsetGas
	}
	return &Solver{
		variables:  make(map[types.Var]Variable),
		depthLimit: cfg.TypeDepthLimit,
		initialGas: cfg.SubsetGas,
		trace:      cfg.TraceSolve,
	}
}

// String dumps the binding table, one `@N = state` line per variable.
func (s *Solver) String() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vars := make([]types.Var, 0, len(s.variables))
	for v := range s.variables {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i] < vars[j] })
	var sb strings.Builder
	for _, v := range vars {
		fmt.Fprintf(&sb, "%s = %s\n", v, s.variables[v])
	}
	return sb.String()
}

// bind records an answer. Caller must hold the write lock.
func (s *Solver) bind(v types.Var, t types.Type) {
	if s.trace {
		slog.Debug("solving variable", "var", v.String(), "type", t.String())
	}
	s.variables[v] = Answer{Type: t}
}

// lookup fetches v's state. Caller must hold at least the read lock. A Var
// missing from its table has escaped its owning Solver, which is a bug in
// the surrounding pipeline, not a user error.
func (s *Solver) lookup(v types.Var) Variable {
	e, ok := s.variables[v]
	if !ok {
		panic(errors.Errorf("%s: %s", varLeak, v))
	}
	return e
}

// FreshContained generates a fresh variable for contents unspecified inside
// a container, e.g. `[]` with an unknown element type.
func (s *Solver) FreshContained(uniques *types.UniqueFactory) types.Var {
	v := types.NewVar(uniques)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.variables[v] = Contained{}
	return v
}

// FreshUnwrap generates a fresh variable used to decompose a type, e.g.
// getting T from Awaitable[T].
func (s *Solver) FreshUnwrap(uniques *types.UniqueFactory) types.Var {
	v := types.NewVar(uniques)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.variables[v] = Unwrap{}
	return v
}

// FreshRecursive generates a fresh variable used to tie recursive bindings.
func (s *Solver) FreshRecursive(uniques *types.UniqueFactory, def types.Type) types.Var {
	v := types.NewVar(uniques)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.variables[v] = Recursive{Default: def}
	return v
}

// FreshQuantified instantiates a generic: each parameter occurrence in t is
// replaced by a fresh variable, recorded as Quantified. An empty parameter
// list returns t unchanged with no allocation.
func (s *Solver) FreshQuantified(params types.TParams, t types.Type, uniques *types.UniqueFactory) ([]types.Var, types.Type) {
	if len(params) == 0 {
		return nil, t
	}
	vs := make([]types.Var, len(params))
	subst := make(map[uint64]types.Type, len(params))
	for i, p := range params {
		vs[i] = types.NewVar(uniques)
		subst[p.ID] = vs[i]
	}
	t = types.Subst(t, subst)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range params {
		s.variables[vs[i]] = Quantified{Info: p.Info}
	}
	return vs, t
}

// FinishQuantified is called once a generic call's arguments are all known.
// Given `def f[T](x: int) -> list[T]`, after the call completes T behaves
// more like an empty container than a generic: any variable still in the
// Quantified state is demoted to Contained.
func (s *Solver) FinishQuantified(vs []types.Var) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range vs {
		if _, ok := s.lookup(v).(Quantified); ok {
			s.variables[v] = Contained{}
		}
	}
}

// PinPlaceholderType forces a non-recursive, non-answered variable to its
// final gradual approximation: Quantified to its parameter's gradual
// default, Contained and Unwrap to Any. Answered variables are stable and
// Recursive ones await their own resolution protocol, so both are left
// untouched.
func (s *Solver) PinPlaceholderType(v types.Var) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch e := s.lookup(v).(type) {
	case Recursive, Answer:
	case Quantified:
		s.bind(v, e.Info.AsGradualType())
	default:
		s.bind(v, types.Any{})
	}
}

// Expand replaces every variable that has an answer with that answer,
// recursively, then simplifies the result. Unanswered variables remain as
// Vars. Subtrees deeper than the depth limit, and self-referential
// answers, degrade to Any.
func (s *Solver) Expand(t types.Type) types.Type {
	t = s.expandWithLimit(t, s.depthLimit, newRecurser())
	// After substituting bound variables some types may simplify further
	return s.simplify(t)
}

// ExpandMut is Expand in place.
func (s *Solver) ExpandMut(t *types.Type) {
	*t = s.Expand(*t)
}

func (s *Solver) expandWithLimit(t types.Type, limit int, r *recurser) types.Type {
	if limit == 0 {
		return types.Any{}
	}
	if v, ok := t.(types.Var); ok {
		release, ok := r.recurse(v)
		if !ok {
			return types.Any{}
		}
		defer release()
		s.mu.RLock()
		ans, answered := s.variables[v].(Answer)
		s.mu.RUnlock()
		if answered {
			return s.expandWithLimit(ans.Type, limit-1, r)
		}
		return t
	}
	return types.MapChildren(t, func(c types.Type) types.Type {
		return s.expandWithLimit(c, limit-1, r)
	})
}

// ForceVar ensures the solver has an answer for v and returns it. An
// unanswered variable is committed to its default: a Quantified parameter's
// gradual default, a Recursive variable's declared default, or Any. The
// returned answer may itself still contain Vars, including v.
func (s *Solver) ForceVar(v types.Var) types.Type {
	if v == types.NoVar {
		panic(errors.New("cannot force the reserved sentinel Var"))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.lookup(v)
	if ans, ok := e.(Answer); ok {
		return ans.Type
	}
	var def types.Type
	switch e := e.(type) {
	case Quantified:
		def = e.Info.AsGradualType()
	case Recursive:
		if e.Default != nil {
			def = e.Default
		} else {
			def = types.Any{}
		}
	default:
		def = types.Any{}
	}
	s.bind(v, def)
	return def
}

// DeepForce is Expand except that unanswered variables are forced as a side
// effect, both in the result and in the table going forward. The result is
// guaranteed to contain no Vars.
func (s *Solver) DeepForce(t types.Type) types.Type {
	t = s.deepForceWithLimit(t, s.depthLimit, newRecurser())
	// After forcing we might be able to simplify some unions
	return s.simplify(t)
}

// DeepForceMut is DeepForce in place.
func (s *Solver) DeepForceMut(t *types.Type) {
	*t = s.DeepForce(*t)
}

func (s *Solver) deepForceWithLimit(t types.Type, limit int, r *recurser) types.Type {
	if limit == 0 {
		return types.Any{}
	}
	if v, ok := t.(types.Var); ok {
		release, ok := r.recurse(v)
		if !ok {
			return types.Any{}
		}
		defer release()
		return s.deepForceWithLimit(s.ForceVar(v), limit-1, r)
	}
	return types.MapChildren(t, func(c types.Type) types.Type {
		return s.deepForceWithLimit(c, limit-1, r)
	})
}

// simplify normalizes a type after substitution. Unions are re-merged and
// tuples renormalized; a resolved param-spec is spliced into its enclosing
// Concatenate, Callable, or Function node.
func (s *Solver) simplify(t types.Type) types.Type {
	return types.Transform(t, func(x types.Type) types.Type {
		switch x := x.(type) {
		case types.Union:
			return types.Unions(x.Members)
		case types.Tuple, types.UnboundedTuple, types.UnpackedTuple:
			return types.SimplifyTuple(x)
		case types.Concatenate:
			switch ps := x.ParamSpec.(type) {
			case types.ParamSpecValue:
				return types.ParamSpecValue{Params: prependTypes(x.Prefix, ps.Params)}
			case types.Concatenate:
				return types.Concatenate{
					Prefix:    prependTypes(x.Prefix, ps.Prefix),
					ParamSpec: ps.ParamSpec,
				}
			}
			return x
		case *types.Callable:
			return simplifyCallable(x, nil)
		case *types.Function:
			return simplifyCallable(&x.Signature, &x.Metadata)
		}
		return x
	})
}

// simplifyCallable splices a resolved param-spec tail into a concrete
// parameter list, preserving Function metadata when present.
func simplifyCallable(c *types.Callable, meta *types.FuncMetadata) types.Type {
	rebuild := func(c *types.Callable) types.Type {
		if meta != nil {
			return &types.Function{Signature: *c, Metadata: *meta}
		}
		return c
	}
	params, ok := c.Params.(types.ParamsParamSpec)
	if !ok {
		return rebuild(c)
	}
	switch ps := params.ParamSpec.(type) {
	case types.ParamSpecValue:
		return rebuild(types.NewCallableList(prependTypes(params.Prefix, ps.Params), c.Ret))
	case types.EllipsisType:
		if len(params.Prefix) == 0 {
			return rebuild(types.NewCallableEllipsis(c.Ret))
		}
	case types.Concatenate:
		return rebuild(types.NewCallableConcatenate(
			prependTypes(params.Prefix, ps.Prefix),
			ps.ParamSpec,
			c.Ret,
		))
	}
	return rebuild(c)
}

func prependTypes(prefix, rest []types.Type) []types.Type {
	out := make([]types.Type, 0, len(prefix)+len(rest))
	out = append(out, prefix...)
	return append(out, rest...)
}

// ForDisplay prepares a type for rendering: bound variables expanded and
// the result simplified, without forcing anything.
func (s *Solver) ForDisplay(t types.Type) types.Type {
	return s.Expand(t)
}

// Error reports that `got <: want` failed, rendering both sides through
// ForDisplay for a readable diff.
func (s *Solver) Error(want, got types.Type, errs ErrorCollector, loc Range, kind ErrorKind) {
	msg := fmt.Sprintf("`%s` is not assignable to `%s`", s.ForDisplay(got), s.ForDisplay(want))
	errs.Add(loc, kind, msg)
}

// Unions merges branches into a normalized union. In the process some
// contained variables may be forced so the branches settle on a consistent
// shape. Branch order is significant: variable forcing is not commutative,
// so branches are processed strictly left to right.
func (s *Solver) Unions(branches []types.Type, order TypeOrder) types.Type {
	if len(branches) == 0 {
		return types.Never{}
	}
	if len(branches) == 1 {
		return branches[0]
	}
	for _, b := range branches[1:] {
		// Subset in union mode purely to force free variables; the
		// result is irrelevant.
		s.isSubsetEqImpl(branches[0], b, order, true)
	}

	// Union modules by merging their member sets rather than keeping
	// separate arms.
	merged := make(map[string]types.Module)
	var paths []string
	rest := make([]types.Type, 0, len(branches))
	for _, b := range branches {
		// Maybe we should force b before looking at it, but that causes
		// issues with recursive variables that we can't examine. In
		// practice nobody has a recursive variable which evaluates to a
		// module.
		if m, ok := b.(types.Module); ok {
			path := m.Path()
			if prev, ok := merged[path]; ok {
				merged[path] = prev.Merge(m)
			} else {
				merged[path] = m
				paths = append(paths, path)
			}
			continue
		}
		rest = append(rest, b)
	}
	for _, path := range paths {
		rest = append(rest, merged[path])
	}
	return types.UnionsWithLiterals(rest, order.Stdlib(), order.EnumMemberCount)
}

// RecordRecursive resolves the recursive variable v now that the
// computation tied through it has produced t, which may refer back to v.
func (s *Solver) RecordRecursive(v types.Var, t types.Type, order TypeOrder, errs ErrorCollector, loc Range) {
	s.mu.Lock()
	if ans, ok := s.lookup(v).(Answer); ok {
		forced := ans.Type
		s.mu.Unlock()
		// Something needed v's value before the tie completed and forced
		// it. The forced approximation has already been used, so it is
		// authoritative; check the computed type against it and keep
		// going either way.
		if !s.IsSubsetEq(t, forced, order) {
			s.Error(forced, t, errs, loc, ErrorKindCycleBreaking)
		}
		return
	}
	// First flatten unions and answered variables into the branch list,
	// then drop any direct self-reference: recording `@1 = @1 | T` means
	// the `@1` arm contributes nothing to its own meaning.
	var res []types.Type
	expandBranches(t, s.variables, newRecurser(), &res)
	kept := res[:0]
	for _, x := range res {
		if !x.Eq(v) {
			kept = append(kept, x)
		}
	}
	s.bind(v, types.Unions(kept))
	s.mu.Unlock()
}

// expandBranches flattens t into its union branches, looking through
// answered variables. Caller must hold the table lock.
func expandBranches(t types.Type, variables map[types.Var]Variable, r *recurser, res *[]types.Type) {
	switch t := t.(type) {
	case types.Var:
		release, ok := r.recurse(t)
		if !ok {
			// Already in flight: keep the var itself as a branch rather
			// than narrowing the union.
			*res = append(*res, t)
			return
		}
		defer release()
		if ans, ok := variables[t].(Answer); ok {
			expandBranches(ans.Type, variables, r, res)
		} else {
			*res = append(*res, t)
		}
	case types.Union:
		for _, m := range t.Members {
			expandBranches(m, variables, r, res)
		}
	default:
		*res = append(*res, t)
	}
}

// IsSubsetEq reports whether `got <: want`, conservatively answering false
// when the gas budget runs out. It may bind free variables in either side
// as a side effect, even when it returns false.
func (s *Solver) IsSubsetEq(got, want types.Type, order TypeOrder) bool {
	return s.isSubsetEqImpl(got, want, order, false)
}

func (s *Solver) isSubsetEqImpl(got, want types.Type, order TypeOrder, union bool) bool {
	sub := &Subset{
		solver: s,
		Order:  order,
		union:  union,
		gas:    newGas(s.initialGas),
	}
	return sub.IsSubsetEq(got, want)
}
