package reactive

import (
	"encoding/json"
	"reflect"
)

// valueKey is the single tracked key of boxes and computed cells.
const valueKey = "value"

// Box is a reactive single-value cell. Reading tracks the running effect;
// writing triggers subscribers only when the value actually changed.
type Box[T any] struct {
	id     uint64
	engine *Engine

	value T

	// equal overrides the default change check.
	equal func(T, T) bool
}

// NewBox creates a boxed value on the given engine.
func NewBox[T any](e *Engine, initial T) *Box[T] {
	return &Box[T]{
		id:     nextID(),
		engine: e,
		value:  initial,
	}
}

// Get returns the current value and tracks it as a dependency of the
// running effect, if any.
func (b *Box[T]) Get() T {
	b.engine.mu.lock()
	defer b.engine.mu.unlock()
	b.engine.track(b, valueKey)
	return b.value
}

// Peek returns the current value without tracking.
func (b *Box[T]) Peek() T {
	b.engine.mu.lock()
	defer b.engine.mu.unlock()
	return b.value
}

// Set assigns a new value and triggers subscribers if it differs from the
// current one. Writing an equal value never triggers.
func (b *Box[T]) Set(value T) {
	b.engine.mu.lock()
	defer b.engine.mu.unlock()
	if b.equals(b.value, value) {
		return
	}
	b.value = value
	b.engine.trigger(b, valueKey)
}

// Update atomically derives the new value from the current one.
func (b *Box[T]) Update(fn func(T) T) {
	b.engine.mu.lock()
	defer b.engine.mu.unlock()
	next := fn(b.value)
	if b.equals(b.value, next) {
		return
	}
	b.value = next
	b.engine.trigger(b, valueKey)
}

// WithEquals configures a custom change check for Set and Update.
func (b *Box[T]) WithEquals(fn func(T, T) bool) *Box[T] {
	b.equal = fn
	return b
}

// ID returns the unique identifier for this box.
func (b *Box[T]) ID() uint64 {
	return b.id
}

func (b *Box[T]) equals(a, v T) bool {
	if b.equal != nil {
		return b.equal(a, v)
	}
	return defaultEquals(a, v)
}

// readAny lets a box act as a watch source.
func (b *Box[T]) readAny() any {
	return b.Get()
}

// MarshalJSON encodes the box in the cross-boundary form
// {"$$type":"ref","value":<encoded-value>}.
func (b *Box[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"$$type"`
		Value T      `json:"value"`
	}{Type: "ref", Value: b.Peek()})
}

// defaultEquals is the change check used when no custom equality is set:
// == for comparable dynamic types, reflect.DeepEqual otherwise.
func defaultEquals[T any](a, b T) bool {
	av, bv := any(a), any(b)
	if av == nil || bv == nil {
		return av == nil && bv == nil
	}
	ta, tb := reflect.TypeOf(av), reflect.TypeOf(bv)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return av == bv
	}
	return reflect.DeepEqual(av, bv)
}
