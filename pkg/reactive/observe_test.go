package reactive

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wefterrors "github.com/weft-ui/weft/internal/errors"
)

func TestObserveObject(t *testing.T) {
	t.Run("one wrapper per raw target", func(t *testing.T) {
		e := NewEngine()
		raw := map[string]any{"a": 1}
		o1 := e.ObserveObject(raw)
		o2 := e.ObserveObject(raw)
		assert.Same(t, o1, o2)

		viaAny, err := e.Observe(raw)
		require.NoError(t, err)
		assert.Same(t, o1, viaAny)
	})

	t.Run("per-key tracking precision", func(t *testing.T) {
		e := NewEngine()
		o := e.ObserveObject(map[string]any{"a": 1, "b": 2})
		runs := 0
		e.Effect(func() {
			_ = o.Get("a")
			runs++
		})
		require.Equal(t, 1, runs)

		o.Set("b", 20)
		assert.Equal(t, 1, runs)

		o.Set("a", 10)
		assert.Equal(t, 2, runs)

		o.Set("a", 10) // equal value
		assert.Equal(t, 2, runs)
	})

	t.Run("nested values wrap on read", func(t *testing.T) {
		e := NewEngine()
		o := e.ObserveObject(map[string]any{
			"profile": map[string]any{"city": "london"},
		})

		nested, ok := o.Get("profile").(*Object)
		require.True(t, ok)

		// Re-reading yields the identical nested wrapper.
		again, ok := o.Get("profile").(*Object)
		require.True(t, ok)
		assert.Same(t, nested, again)

		runs := 0
		e.Effect(func() {
			_ = nested.Get("city")
			runs++
		})
		nested.Set("city", "paris")
		assert.Equal(t, 2, runs)
	})

	t.Run("size key tracks additions and deletions", func(t *testing.T) {
		e := NewEngine()
		o := e.ObserveObject(map[string]any{})
		var sizes []int
		e.Effect(func() {
			sizes = append(sizes, o.Len())
		})

		o.Set("a", 1)
		o.Set("a", 2) // existing key: size unchanged, no re-run
		o.Delete("a")
		assert.Equal(t, []int{0, 1, 0}, sizes)
	})

	t.Run("keys are sorted and track the size key", func(t *testing.T) {
		e := NewEngine()
		o := e.ObserveObject(map[string]any{"b": 1, "a": 2})
		var seen [][]string
		e.Effect(func() {
			seen = append(seen, o.Keys())
		})

		o.Set("c", 3)
		require.Len(t, seen, 2)
		assert.Equal(t, []string{"a", "b"}, seen[0])
		assert.Equal(t, []string{"a", "b", "c"}, seen[1])
	})

	t.Run("has tracks the key", func(t *testing.T) {
		e := NewEngine()
		o := e.ObserveObject(map[string]any{})
		var states []bool
		e.Effect(func() {
			states = append(states, o.Has("ready"))
		})
		o.Set("ready", true)
		assert.Equal(t, []bool{false, true}, states)
	})

	t.Run("unsupported target errors", func(t *testing.T) {
		e := NewEngine()
		_, err := e.Observe(42)
		require.Error(t, err)
		var we *wefterrors.WeftError
		require.True(t, errors.As(err, &we))
		assert.Equal(t, wefterrors.CodeUnsupportedObserve, we.Code)
	})
}

func TestObserveList(t *testing.T) {
	t.Run("per-index tracking", func(t *testing.T) {
		e := NewEngine()
		l := e.ObserveList([]any{"a", "b", "c"})
		runs := 0
		e.Effect(func() {
			_ = l.Get(0)
			runs++
		})

		l.Set(2, "z")
		assert.Equal(t, 1, runs)

		l.Set(0, "x")
		assert.Equal(t, 2, runs)
	})

	t.Run("length key tracks appends", func(t *testing.T) {
		e := NewEngine()
		l := e.ObserveList([]any{1})
		var lengths []int
		e.Effect(func() {
			lengths = append(lengths, l.Len())
		})
		l.Append(2)
		assert.Equal(t, []int{1, 2}, lengths)
	})

	t.Run("truncation triggers out-of-bounds index subscribers", func(t *testing.T) {
		e := NewEngine()
		l := e.ObserveList([]any{"a", "b", "c"})
		var seen []any
		e.Effect(func() {
			seen = append(seen, l.Get(2))
		})
		require.Equal(t, []any{"c"}, seen)

		l.SetLen(1)
		assert.Equal(t, []any{"c", nil}, seen)
	})

	t.Run("growth re-triggers past-the-end readers", func(t *testing.T) {
		e := NewEngine()
		l := e.ObserveList([]any{"a"})
		runs := 0
		e.Effect(func() {
			_ = l.Get(3) // out of range, still tracked
			runs++
		})
		l.SetLen(5)
		assert.Equal(t, 2, runs)
	})
}

func TestObserveDict(t *testing.T) {
	t.Run("member and size keys", func(t *testing.T) {
		e := NewEngine()
		d := e.ObserveDict(map[any]any{"k": 1})

		memberRuns, sizeRuns := 0, 0
		e.Effect(func() {
			_, _ = d.Get("k")
			memberRuns++
		})
		e.Effect(func() {
			_ = d.Len()
			sizeRuns++
		})

		d.Set("k", 2)
		assert.Equal(t, 2, memberRuns)
		assert.Equal(t, 1, sizeRuns)

		d.Set("other", 1)
		assert.Equal(t, 2, memberRuns)
		assert.Equal(t, 2, sizeRuns)

		d.Delete("k")
		assert.Equal(t, 3, memberRuns)
		assert.Equal(t, 3, sizeRuns)
	})

	t.Run("keys of different dynamic types track independently", func(t *testing.T) {
		e := NewEngine()
		d := e.ObserveDict(map[any]any{1: "int", "1": "string"})

		intRuns, stringRuns := 0, 0
		e.Effect(func() {
			_, _ = d.Get(1)
			intRuns++
		})
		e.Effect(func() {
			_, _ = d.Get("1")
			stringRuns++
		})

		d.Set(1, "int2")
		assert.Equal(t, 2, intRuns)
		assert.Equal(t, 1, stringRuns)

		d.Set("1", "string2")
		assert.Equal(t, 2, intRuns)
		assert.Equal(t, 2, stringRuns)
	})
}

func TestObserveSet(t *testing.T) {
	t.Run("membership tracking", func(t *testing.T) {
		e := NewEngine()
		s := e.ObserveSet(map[any]struct{}{})

		var states []bool
		e.Effect(func() {
			states = append(states, s.Has("x"))
		})

		s.Add("x")
		s.Add("x") // already present: no trigger
		s.Remove("x")
		assert.Equal(t, []bool{false, true, false}, states)
	})

	t.Run("size key", func(t *testing.T) {
		e := NewEngine()
		s := e.ObserveSet(map[any]struct{}{})
		var sizes []int
		e.Effect(func() {
			sizes = append(sizes, s.Len())
		})
		s.Add("a")
		s.Add("b")
		assert.Equal(t, []int{0, 1, 2}, sizes)
	})
}

func TestRelease(t *testing.T) {
	t.Run("released target stops triggering and drops its cache slot", func(t *testing.T) {
		e := NewEngine()
		raw := map[string]any{"a": 1}
		o := e.ObserveObject(raw)

		runs := 0
		e.Effect(func() {
			_ = o.Get("a")
			runs++
		})

		e.Release(raw)

		o.Set("a", 99)
		assert.Equal(t, 1, runs)

		// Re-observing after release creates a fresh wrapper.
		assert.NotSame(t, o, e.ObserveObject(raw))
	})

	t.Run("release by wrapper", func(t *testing.T) {
		e := NewEngine()
		raw := map[string]any{}
		o := e.ObserveObject(raw)
		e.Release(o)
		assert.NotSame(t, o, e.ObserveObject(raw))
	})
}
