// Package reactive provides the fine-grained dependency-tracking engine
// for Weft.
//
// All reactive state belongs to an Engine. Engines are independent: two
// engines never share a dependency graph, a scheduler queue, or a tracking
// stack, so multiple reactive instances can coexist in one process.
//
// # Core Types
//
// Box[T] is a single reactive value cell:
//
//	e := reactive.NewEngine()
//	count := reactive.NewBox(e, 0)
//	value := count.Get() // Read (tracks the running effect)
//	count.Set(5)         // Write (triggers subscribers on change)
//
// Observed wrappers make plain structures trackable per key. Go has no
// transparent property interception, so wrappers expose explicit accessor
// methods instead of field access:
//
//	obj := e.ObserveObject(map[string]any{"name": "ada"})
//	obj.Get("name") // tracks the "name" key
//	obj.Set("name", "grace")
//
// Effects re-run when any value they read changes:
//
//	e.Effect(func() {
//	    fmt.Println("count is", count.Get())
//	})
//
// Deferred effects batch through the engine scheduler and run on Flush:
//
//	e.Effect(body, reactive.Deferred())
//	count.Set(1)
//	count.Set(2)
//	e.Flush() // body runs once, observing 2
//
// Computed[T] is a lazily recomputed cached derivation, and Watch invokes a
// callback with (new, old) only when a source's value actually changes.
//
// # Concurrency
//
// Every track, trigger, and flush is serialized behind one engine lock. The
// lock is goroutine-reentrant, so effect bodies may freely read and write
// reactive state. No operation in this package suspends; "deferred" means
// queued for the next flush, not asynchronous.
package reactive
