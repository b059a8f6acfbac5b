package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputed(t *testing.T) {
	t.Run("lazy until first read", func(t *testing.T) {
		e := NewEngine()
		src := NewBox(e, 1)
		calls := 0
		c := NewComputed(e, func() int {
			calls++
			return src.Get() * 2
		})
		assert.Equal(t, 0, calls)

		assert.Equal(t, 2, c.Get())
		assert.Equal(t, 1, calls)
	})

	t.Run("cached between changes", func(t *testing.T) {
		e := NewEngine()
		src := NewBox(e, 1)
		calls := 0
		c := NewComputed(e, func() int {
			calls++
			return src.Get() * 2
		})

		_ = c.Get()
		_ = c.Get()
		_ = c.Get()
		assert.Equal(t, 1, calls)

		src.Set(5)
		assert.Equal(t, 1, calls) // dirtied, not recomputed

		assert.Equal(t, 10, c.Get())
		assert.Equal(t, 10, c.Get())
		assert.Equal(t, 2, calls)
	})

	t.Run("old value readable after recompute", func(t *testing.T) {
		e := NewEngine()
		src := NewBox(e, 1)
		c := NewComputed(e, func() int { return src.Get() * 2 })

		require.Equal(t, 2, c.Get())
		src.Set(4)
		require.Equal(t, 8, c.Get())
		assert.Equal(t, 2, c.OldValue())
	})

	t.Run("outer effect depends on the cell", func(t *testing.T) {
		e := NewEngine()
		src := NewBox(e, 1)
		c := NewComputed(e, func() int { return src.Get() * 2 })

		var seen []int
		e.Effect(func() {
			seen = append(seen, c.Get())
		})
		require.Equal(t, []int{2}, seen)

		src.Set(3)
		assert.Equal(t, []int{2, 6}, seen)
	})

	t.Run("already-dirty cell does not re-trigger downstream", func(t *testing.T) {
		e := NewEngine()
		src := NewBox(e, 1)
		calls := 0
		c := NewComputed(e, func() int {
			calls++
			return src.Get() * 2
		})

		runs := 0
		e.Effect(func() {
			_ = c.Get()
			runs++
		}, Deferred())
		require.Equal(t, 1, runs)

		// Two writes before the flush: the cell dirties once, the reader
		// queues once, the getter recomputes once at read time.
		src.Set(2)
		src.Set(3)
		e.Flush()
		assert.Equal(t, 2, runs)
		assert.Equal(t, 2, calls)
		assert.Equal(t, 6, c.Peek())
	})

	t.Run("chained cells", func(t *testing.T) {
		e := NewEngine()
		src := NewBox(e, 1)
		double := NewComputed(e, func() int { return src.Get() * 2 })
		quad := NewComputed(e, func() int { return double.Get() * 2 })

		assert.Equal(t, 4, quad.Get())
		src.Set(3)
		assert.Equal(t, 12, quad.Get())
	})

	t.Run("stop detaches from sources", func(t *testing.T) {
		e := NewEngine()
		src := NewBox(e, 1)
		calls := 0
		c := NewComputed(e, func() int {
			calls++
			return src.Get()
		})
		_ = c.Get()
		c.Stop()

		src.Set(9)
		assert.Equal(t, 1, c.Peek()) // never dirtied again
		assert.Equal(t, 1, calls)
	})
}
