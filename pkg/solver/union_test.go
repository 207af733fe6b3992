package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vito/adder/pkg/types"
)

func TestUnions(t *testing.T) {
	uniques := types.NewUniqueFactory()
	stdlib := newTestStdlib()
	order := newTestOrder()

	t.Run("empty is Never", func(t *testing.T) {
		s := NewSolver()
		assert.True(t, s.Unions(nil, order).Eq(types.Never{}))
	})

	t.Run("single branch is identity", func(t *testing.T) {
		s := NewSolver()
		v := s.FreshContained(uniques)
		// Even an unresolved var comes back untouched.
		assert.True(t, s.Unions([]types.Type{v}, order).Eq(v))
	})

	t.Run("duplicate branches collapse", func(t *testing.T) {
		s := NewSolver()
		got := s.Unions([]types.Type{stdlib.Int(), stdlib.Int()}, order)
		assert.True(t, got.Eq(stdlib.Int()))
	})

	t.Run("literal branches merge into one arm", func(t *testing.T) {
		s := NewSolver()
		got := s.Unions([]types.Type{
			types.NewLiteral(types.LitInt(1)),
			types.NewLiteral(types.LitInt(2)),
		}, order)
		want := types.Literal{Lits: []types.Lit{types.LitInt(1), types.LitInt(2)}}
		assert.True(t, got.Eq(want), "got %s", got)
	})

	t.Run("literal arm keeps the first literal's position", func(t *testing.T) {
		s := NewSolver()
		got := s.Unions([]types.Type{
			types.NoneType{},
			types.NewLiteral(types.LitBool(true)),
		}, order)
		want := types.Union{Members: []types.Type{
			types.NoneType{},
			types.NewLiteral(types.LitBool(true)),
		}}
		assert.True(t, got.Eq(want), "got %s", got)
	})

	t.Run("contained vars are forced into a consistent shape", func(t *testing.T) {
		s := NewSolver()
		v := s.FreshContained(uniques)
		got := s.Unions([]types.Type{v, stdlib.Int()}, order)
		// The var arm is now bound, so expansion collapses the union.
		assert.True(t, s.Expand(got).Eq(stdlib.Int()), "got %s", s.Expand(got))
	})

	t.Run("union mode does not force quantified vars", func(t *testing.T) {
		s := NewSolver()
		q := types.NewQuantified(uniques, &types.QuantifiedInfo{Name: "T", Default: stdlib.Str()})
		vs, body := s.FreshQuantified(types.TParams{q}, q, uniques)
		require.Len(t, vs, 1)
		s.Unions([]types.Type{body, stdlib.Int()}, order)
		// Still pending: forcing falls back to the parameter default, not
		// the union's other arm.
		assert.True(t, s.ForceVar(vs[0]).Eq(stdlib.Str()))
	})

	t.Run("union mode does not force recursive vars", func(t *testing.T) {
		s := NewSolver()
		v := s.FreshRecursive(uniques, nil)
		s.Unions([]types.Type{v, stdlib.Int()}, order)
		assert.True(t, s.Expand(v).Eq(v))
	})

	t.Run("same module merges into one arm", func(t *testing.T) {
		s := NewSolver()
		a := types.Module{Parts: []string{"a", "b"}, Members: []string{"x"}}
		b := types.Module{Parts: []string{"a", "b"}, Members: []string{"y"}}
		got := s.Unions([]types.Type{a, b}, order)
		mod, ok := got.(types.Module)
		require.True(t, ok, "got %s", got)
		assert.Equal(t, "a.b", mod.Path())
		assert.Equal(t, []string{"x", "y"}, mod.Members)
	})

	t.Run("distinct modules stay separate", func(t *testing.T) {
		s := NewSolver()
		a := types.Module{Parts: []string{"a"}}
		b := types.Module{Parts: []string{"b"}}
		got := s.Unions([]types.Type{a, b}, order)
		u, ok := got.(types.Union)
		require.True(t, ok, "got %s", got)
		assert.Len(t, u.Members, 2)
	})

	t.Run("the caller's branch slice is left alone", func(t *testing.T) {
		s := NewSolver()
		branches := []types.Type{
			types.Module{Parts: []string{"a"}, Members: []string{"x"}},
			types.Module{Parts: []string{"a"}, Members: []string{"y"}},
			stdlib.Int(),
		}
		s.Unions(branches, order)
		assert.True(t, branches[0].Eq(types.Module{Parts: []string{"a"}, Members: []string{"x"}}))
		assert.True(t, branches[1].Eq(types.Module{Parts: []string{"a"}, Members: []string{"y"}}))
		assert.True(t, branches[2].Eq(stdlib.Int()))
	})

	t.Run("enum exhaustiveness consults the oracle", func(t *testing.T) {
		s := NewSolver()
		color := &types.Class{Name: "Color"}
		enumOrder := newTestOrder()
		enumOrder.enums = map[*types.Class]int{color: 2}
		got := s.Unions([]types.Type{
			types.NewLiteral(types.LitEnum{Class: color, Member: "RED"}),
			types.NewLiteral(types.LitEnum{Class: color, Member: "BLUE"}),
		}, enumOrder)
		assert.True(t, got.Eq(types.ClassType{Class: color}), "got %s", got)
	})
}
