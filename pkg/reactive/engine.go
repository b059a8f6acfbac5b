package reactive

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/weft-ui/weft/internal/errors"
)

// DebugMode enables diagnostic logging throughout the reactive package.
// This should be set at startup and not changed during runtime.
var DebugMode bool

// Engine is one independent reactive instance: a dependency graph, a
// scheduler queue, and a tracking stack. All track/trigger/flush operations
// on an engine are serialized behind one reentrant lock.
type Engine struct {
	mu reentrantLock

	graph     *depGraph
	scheduler *scheduler

	// running is the stack of currently executing effects. The top entry is
	// the active tracker; a nil entry masks tracking (stopped effects,
	// Untracked sections).
	running []*Effect

	// wrappers caches one observed wrapper per raw target, keyed by the
	// target's data pointer.
	wrappers map[uintptr]any

	metrics *engineMetrics
	tracer  trace.Tracer
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithMetrics registers Prometheus instrumentation for the engine on the
// given registerer: effect runs, triggers, flushes, and flush duration.
func WithMetrics(reg prometheus.Registerer) EngineOption {
	return func(e *Engine) {
		e.metrics = newEngineMetrics(reg)
	}
}

// WithTracer enables OpenTelemetry tracing of flushes using the named tracer.
func WithTracer(name string) EngineOption {
	return func(e *Engine) {
		e.tracer = otel.Tracer(name)
	}
}

// NewEngine creates a new reactive engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		graph:    newDepGraph(),
		wrappers: make(map[uintptr]any),
	}
	e.scheduler = newScheduler(e)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// track subscribes the active effect, if any, to (target, key).
// A no-op when no effect is running or tracking is masked.
// Callers must hold the engine lock.
func (e *Engine) track(target any, key string) {
	eff := e.activeEffect()
	if eff == nil || !eff.active {
		return
	}
	ds := e.graph.setFor(target, key)
	if ds.add(eff) {
		eff.deps = append(eff.deps, ds)
	}
}

// trigger notifies every effect subscribed to (target, key). Effects with a
// scheduler hook are handed a job; the rest run synchronously and
// immediately. Callers must hold the engine lock.
func (e *Engine) trigger(target any, key string) {
	ds := e.graph.lookup(target, key)
	if ds == nil {
		return
	}
	e.metrics.countTrigger()
	for _, eff := range ds.snapshot() {
		e.notify(eff)
	}
}

// notify dispatches one triggered effect.
func (e *Engine) notify(eff *Effect) {
	if eff.scheduler != nil {
		eff.scheduler(eff.run)
		return
	}
	eff.run()
}

// activeEffect returns the effect currently tracking reads, or nil.
func (e *Engine) activeEffect() *Effect {
	if len(e.running) == 0 {
		return nil
	}
	return e.running[len(e.running)-1]
}

// onStack reports whether the effect is anywhere on the running stack.
func (e *Engine) onStack(eff *Effect) bool {
	for _, r := range e.running {
		if r == eff {
			return true
		}
	}
	return false
}

// Effect creates an effect and runs it immediately to establish its
// dependencies. Reads inside fn become the effect's dependencies; the effect
// re-runs whenever one of them changes.
func (e *Engine) Effect(fn func(), opts ...EffectOption) *Effect {
	eff := &Effect{
		id:     nextID(),
		engine: e,
		fn:     fn,
		active: true,
	}
	for _, opt := range opts {
		opt(eff)
	}
	if !eff.lazy {
		eff.run()
	}
	return eff
}

// Flush drains the scheduler queue, running every pending deferred effect
// exactly once per queue entry. Effects enqueued during the flush run in the
// same flush. See Scheduler semantics in scheduler.go.
func (e *Engine) Flush() {
	e.mu.lock()
	defer e.mu.unlock()
	e.flushLocked()
}

func (e *Engine) flushLocked() {
	if e.tracer != nil {
		e.scheduler.flushTraced(e.tracer)
		return
	}
	e.scheduler.flush()
}

// Batch runs fn and flushes pending deferred effects when it returns. This
// is the implicit flush point for interactive callers; Flush remains the
// explicit, testable primitive.
func (e *Engine) Batch(fn func()) {
	e.mu.lock()
	defer e.mu.unlock()
	fn()
	e.flushLocked()
}

// Untracked runs fn without tracking reads as dependencies of the currently
// running effect.
func (e *Engine) Untracked(fn func()) {
	e.mu.lock()
	defer e.mu.unlock()
	e.running = append(e.running, nil)
	defer func() {
		e.running = e.running[:len(e.running)-1]
	}()
	fn()
}

// Release disposes the graph entries and wrapper cache slot for a target.
// The target may be a wrapper, a box, a computed cell, or the raw value an
// observed wrapper was created from.
//
// Release is mandatory, not optional, for observed targets: the cache is
// keyed by the target's data address, so dropping a raw map or slice without
// releasing it leaves a stale entry that a later allocation at the same
// address would alias to the dead wrapper.
func (e *Engine) Release(target any) {
	e.mu.lock()
	defer e.mu.unlock()

	if obs, ok := target.(observed); ok {
		delete(e.wrappers, obs.rawPointer())
		e.graph.release(target)
		return
	}
	if ptr, ok := rawPointer(target); ok {
		if w, cached := e.wrappers[ptr]; cached {
			delete(e.wrappers, ptr)
			e.graph.release(w)
			return
		}
	}
	e.graph.release(target)
}

// Observe wraps a plain structure in its observed wrapper. Supported targets
// are map[string]any, []any, map[any]any, and map[any]struct{}. Re-observing
// the same raw target returns the identical wrapper.
//
// Observed targets must be disposed with Release when no longer reactive.
// The wrapper cache holds the target's data address, so an unreleased entry
// both pins the wrapper and can alias a future target allocated at the same
// address.
func (e *Engine) Observe(target any) (any, error) {
	switch t := target.(type) {
	case map[string]any:
		return e.ObserveObject(t), nil
	case []any:
		return e.ObserveList(t), nil
	case map[any]any:
		return e.ObserveDict(t), nil
	case map[any]struct{}:
		return e.ObserveSet(t), nil
	default:
		return nil, errors.New(errors.CodeUnsupportedObserve).
			WithSuggestion(fmt.Sprintf("cannot observe %T", target))
	}
}
