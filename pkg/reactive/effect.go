package reactive

import "fmt"

// Effect is a re-runnable unit of computation. Reads performed during run
// become the effect's dependencies; writing any of them re-runs the effect,
// either synchronously or through its scheduler hook.
type Effect struct {
	id uint64

	engine *Engine

	// fn is the effect body.
	fn func()

	// scheduler, when set, receives a job that performs the actual run
	// instead of the run happening synchronously on trigger.
	scheduler func(run func())

	// deps are the subscriber sets this effect currently belongs to.
	// Invariant: the effect appears in a set's subscribers iff the set is
	// recorded here.
	deps []*depSet

	// active is false after Stop. A stopped effect still runs its body on
	// run(), but no longer tracks dependencies.
	active bool

	// lazy effects are not run on creation (used by Computed).
	lazy bool
}

// EffectOption configures an Effect at construction.
type EffectOption func(*Effect)

// Deferred routes the effect's triggers through the engine scheduler.
// Repeated triggers before a flush collapse into a single run.
func Deferred() EffectOption {
	return func(eff *Effect) {
		eff.scheduler = func(run func()) {
			eff.engine.scheduler.enqueue(eff)
		}
	}
}

// WithScheduler installs a custom scheduler hook. The hook receives a job
// that performs the actual run; it may invoke the job, queue it, or drop it.
func WithScheduler(hook func(run func())) EffectOption {
	return func(eff *Effect) {
		eff.scheduler = hook
	}
}

// withLazy suppresses the initial run. Computed cells use this so their
// derivation does not execute before the first read.
func withLazy() EffectOption {
	return func(eff *Effect) {
		eff.lazy = true
	}
}

// ID returns the unique identifier for this effect.
func (eff *Effect) ID() uint64 {
	return eff.id
}

// run executes the effect body. If the effect is already on the running
// stack, the call returns early: a self-triggering body must not recurse.
// Before the body runs, the effect is removed from every subscriber set it
// belonged to, then repopulated by the body's reads.
func (eff *Effect) run() {
	e := eff.engine
	e.mu.lock()
	defer e.mu.unlock()

	if e.onStack(eff) {
		return
	}

	eff.clearDeps()
	e.metrics.countEffectRun()

	if eff.active {
		e.running = append(e.running, eff)
	} else {
		// Stopped: body still runs, reads are not tracked.
		e.running = append(e.running, nil)
	}
	defer func() {
		e.running = e.running[:len(e.running)-1]
	}()

	eff.fn()
}

// Run re-executes the effect body on demand.
func (eff *Effect) Run() {
	eff.run()
}

// Stop removes the effect from every subscriber set and deactivates it.
// Stopping an already-stopped effect is a no-op reported at debug level.
func (eff *Effect) Stop() {
	e := eff.engine
	e.mu.lock()
	defer e.mu.unlock()

	if !eff.active {
		if DebugMode {
			fmt.Printf("[weft] stop of already-stopped effect %d\n", eff.id)
		}
		return
	}
	eff.clearDeps()
	eff.active = false
}

// clearDeps removes the effect from every subscriber set it belongs to.
// Callers must hold the engine lock.
func (eff *Effect) clearDeps() {
	for _, ds := range eff.deps {
		ds.remove(eff)
	}
	eff.deps = eff.deps[:0]
}

// forgetSet drops a set from the effect's dependency list without touching
// the set itself. Used when a whole target is released from the graph.
func (eff *Effect) forgetSet(ds *depSet) {
	for i, d := range eff.deps {
		if d == ds {
			eff.deps = append(eff.deps[:i], eff.deps[i+1:]...)
			return
		}
	}
}
