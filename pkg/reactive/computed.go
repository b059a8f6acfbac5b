package reactive

// Computed is a pull-based cached derivation. The getter runs lazily on read
// and its reads become the cell's dependencies. When any of them changes the
// cell is only marked dirty; the next read recomputes. Reads track the cell
// itself, so outer effects depend on the cell, not on the getter's sources.
type Computed[T any] struct {
	id     uint64
	engine *Engine

	getter func() T

	value    T
	oldValue T

	// dirty starts true so the getter never runs before the first read.
	dirty bool

	// eff is the internal derivation effect. Its scheduler hook never runs
	// the job; it flips dirty and triggers the cell's value key instead.
	eff *Effect
}

// NewComputed creates a computed cell on the given engine. The getter is not
// invoked until the first Get.
func NewComputed[T any](e *Engine, getter func() T) *Computed[T] {
	c := &Computed[T]{
		id:     nextID(),
		engine: e,
		getter: getter,
		dirty:  true,
	}
	c.eff = e.Effect(func() {
		c.value = c.getter()
	}, WithScheduler(func(run func()) {
		// A cell that is already dirty must not re-trigger downstream.
		if c.dirty {
			return
		}
		c.dirty = true
		e.trigger(c, valueKey)
	}), withLazy())
	return c
}

// Get returns the cached value, recomputing first if the cell is dirty, and
// tracks the cell as a dependency of the running effect.
func (c *Computed[T]) Get() T {
	c.engine.mu.lock()
	defer c.engine.mu.unlock()
	c.recomputeIfDirty()
	c.engine.track(c, valueKey)
	return c.value
}

// Peek returns the value without tracking the cell. Still recomputes when
// dirty.
func (c *Computed[T]) Peek() T {
	c.engine.mu.lock()
	defer c.engine.mu.unlock()
	c.recomputeIfDirty()
	return c.value
}

// OldValue returns the value the cell held before its last recomputation.
// Consumers use it for before/after comparison.
func (c *Computed[T]) OldValue() T {
	c.engine.mu.lock()
	defer c.engine.mu.unlock()
	return c.oldValue
}

// ID returns the unique identifier for this cell.
func (c *Computed[T]) ID() uint64 {
	return c.id
}

// Stop detaches the internal derivation effect from all its sources. The
// cached value stays readable but no longer invalidates.
func (c *Computed[T]) Stop() {
	c.eff.Stop()
}

// readAny lets a computed cell act as a watch source.
func (c *Computed[T]) readAny() any {
	return c.Get()
}

func (c *Computed[T]) recomputeIfDirty() {
	if !c.dirty {
		return
	}
	c.oldValue = c.value
	c.eff.run()
	c.dirty = false
}
