package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vito/adder/pkg/types"
)

func TestRecordRecursive(t *testing.T) {
	uniques := types.NewUniqueFactory()
	stdlib := newTestStdlib()
	order := newTestOrder()

	t.Run("self-reference is removed", func(t *testing.T) {
		s := NewSolver()
		collector := &testCollector{}
		v := s.FreshRecursive(uniques, nil)

		// Recording `@v = @v | int` binds v to exactly int; the self arm
		// contributes nothing to its own meaning.
		ty := types.Union{Members: []types.Type{v, stdlib.Int()}}
		s.RecordRecursive(v, ty, order, collector, Range{})

		assert.True(t, s.ForceVar(v).Eq(stdlib.Int()), "got %s", s.ForceVar(v))
		assert.Empty(t, collector.entries)
	})

	t.Run("only self-reference binds to Never", func(t *testing.T) {
		s := NewSolver()
		collector := &testCollector{}
		v := s.FreshRecursive(uniques, nil)
		s.RecordRecursive(v, v, order, collector, Range{})
		assert.True(t, s.ForceVar(v).Eq(types.Never{}))
	})

	t.Run("answered vars expand through", func(t *testing.T) {
		s := NewSolver()
		collector := &testCollector{}
		other := s.FreshContained(uniques)
		require.True(t, s.IsSubsetEq(other, types.Union{Members: []types.Type{stdlib.Int(), stdlib.Str()}}, order))

		v := s.FreshRecursive(uniques, nil)
		ty := types.Union{Members: []types.Type{v, other, types.NoneType{}}}
		s.RecordRecursive(v, ty, order, collector, Range{})

		want := types.Union{Members: []types.Type{stdlib.Int(), stdlib.Str(), types.NoneType{}}}
		assert.True(t, s.ForceVar(v).Eq(want), "got %s", s.ForceVar(v))
	})

	t.Run("unanswered vars stay as branches", func(t *testing.T) {
		s := NewSolver()
		collector := &testCollector{}
		free := s.FreshContained(uniques)
		v := s.FreshRecursive(uniques, nil)
		s.RecordRecursive(v, types.Union{Members: []types.Type{v, free}}, order, collector, Range{})
		assert.True(t, s.ForceVar(v).Eq(free), "got %s", s.ForceVar(v))
	})

	t.Run("vars with cyclic answers stay as branches", func(t *testing.T) {
		s := NewSolver()
		collector := &testCollector{}

		// A contained var whose answer mentions itself: `@c = @c | int`.
		cyc := s.FreshContained(uniques)
		require.True(t, s.IsSubsetEq(cyc, types.Union{Members: []types.Type{cyc, stdlib.Int()}}, order))

		v := s.FreshRecursive(uniques, nil)
		s.RecordRecursive(v, types.Union{Members: []types.Type{cyc, stdlib.Str()}}, order, collector, Range{})

		// Flattening looks through cyc's answer but keeps the re-entered
		// var as its own branch instead of dropping it.
		want := types.Union{Members: []types.Type{cyc, stdlib.Int(), stdlib.Str()}}
		assert.True(t, s.ForceVar(v).Eq(want), "got %s", s.ForceVar(v))
	})

	t.Run("already-forced value is authoritative", func(t *testing.T) {
		s := NewSolver()
		collector := &testCollector{}
		v := s.FreshRecursive(uniques, stdlib.Int())

		// Something needed v before the tie completed.
		forced := s.ForceVar(v)
		require.True(t, forced.Eq(stdlib.Int()))

		// A compatible result passes quietly.
		s.RecordRecursive(v, types.NewLiteral(types.LitInt(1)), order, collector, Range{})
		assert.Empty(t, collector.entries)

		// An incompatible one reports a cycle-breaking error, and checking
		// proceeds with the forced value.
		loc := Range{Start: 1, End: 2}
		s.RecordRecursive(v, stdlib.Str(), order, collector, loc)
		require.Len(t, collector.entries, 1)
		assert.Equal(t, ErrorKindCycleBreaking, collector.entries[0].Kind)
		assert.Equal(t, loc, collector.entries[0].Loc)
		assert.True(t, s.ForceVar(v).Eq(stdlib.Int()))
	})
}
