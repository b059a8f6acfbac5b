package reactive

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

// Tracked keys shared by the observed wrappers. Sequences track a length
// key; associative and set collections track membership under a size key.
const (
	lengthKey = "length"
	sizeKey   = "size"
)

func indexKey(i int) string {
	return strconv.Itoa(i)
}

// memberKey builds the tracking key for an associative key or set member.
// The dynamic type prefixes the printed value so 1 (int) and "1" (string)
// track independently.
func memberKey(k any) string {
	return fmt.Sprintf("%T:%v", k, k)
}

// observed is implemented by every wrapper type. rawPointer keys the
// one-wrapper-per-raw-target cache; snapshotAny reads the whole structure
// under tracking so wrappers can act as watch sources.
type observed interface {
	rawPointer() uintptr
	snapshotAny() any
}

// rawPointer returns the data pointer of a raw map or slice target.
func rawPointer(target any) (uintptr, bool) {
	v := reflect.ValueOf(target)
	switch v.Kind() {
	case reflect.Map, reflect.Slice:
		return v.Pointer(), v.Pointer() != 0
	default:
		return 0, false
	}
}

// cachedWrapper returns the existing wrapper for ptr, or stores and returns
// the one produced by make. Callers must hold the engine lock.
func cachedWrapper[W any](e *Engine, ptr uintptr, make func() W) W {
	if ptr != 0 {
		if w, ok := e.wrappers[ptr]; ok {
			return w.(W)
		}
	}
	w := make()
	if ptr != 0 {
		e.wrappers[ptr] = w
	}
	return w
}

// wrapNested wraps nested object/sequence/associative values on read, so
// deep reactivity is established lazily rather than eagerly.
// Callers must hold the engine lock.
func (e *Engine) wrapNested(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return e.observeObjectLocked(t)
	case []any:
		return e.observeListLocked(t)
	case map[any]any:
		return e.observeDictLocked(t)
	case map[any]struct{}:
		return e.observeSetLocked(t)
	default:
		return v
	}
}

// =============================================================================
// Object: plain string-keyed structure with per-key tracking
// =============================================================================

// Object is the observed wrapper for a plain map[string]any.
type Object struct {
	engine *Engine
	raw    map[string]any
	ptr    uintptr
}

// ObserveObject wraps a plain object. Re-observing the same raw map returns
// the identical wrapper.
func (e *Engine) ObserveObject(raw map[string]any) *Object {
	e.mu.lock()
	defer e.mu.unlock()
	return e.observeObjectLocked(raw)
}

func (e *Engine) observeObjectLocked(raw map[string]any) *Object {
	if raw == nil {
		raw = make(map[string]any)
	}
	ptr, _ := rawPointer(raw)
	return cachedWrapper(e, ptr, func() *Object {
		return &Object{engine: e, raw: raw, ptr: ptr}
	})
}

// Get reads a property, tracking its key. Nested maps and slices come back
// as observed wrappers.
func (o *Object) Get(key string) any {
	o.engine.mu.lock()
	defer o.engine.mu.unlock()
	o.engine.track(o, key)
	return o.engine.wrapNested(o.raw[key])
}

// Set writes a property, triggering its key only on an actual change.
// Adding a new key also touches the size key.
func (o *Object) Set(key string, value any) {
	o.engine.mu.lock()
	defer o.engine.mu.unlock()
	old, existed := o.raw[key]
	if existed && defaultEquals(old, value) {
		return
	}
	o.raw[key] = value
	o.engine.trigger(o, key)
	if !existed {
		o.engine.trigger(o, sizeKey)
	}
}

// Delete removes a property, triggering its key and the size key.
func (o *Object) Delete(key string) {
	o.engine.mu.lock()
	defer o.engine.mu.unlock()
	if _, existed := o.raw[key]; !existed {
		return
	}
	delete(o.raw, key)
	o.engine.trigger(o, key)
	o.engine.trigger(o, sizeKey)
}

// Has reports whether the key exists, tracking it.
func (o *Object) Has(key string) bool {
	o.engine.mu.lock()
	defer o.engine.mu.unlock()
	o.engine.track(o, key)
	_, ok := o.raw[key]
	return ok
}

// Len returns the number of properties, tracking the size key.
func (o *Object) Len() int {
	o.engine.mu.lock()
	defer o.engine.mu.unlock()
	o.engine.track(o, sizeKey)
	return len(o.raw)
}

// Keys returns the property names in sorted order, tracking the size key.
func (o *Object) Keys() []string {
	o.engine.mu.lock()
	defer o.engine.mu.unlock()
	o.engine.track(o, sizeKey)
	keys := make([]string, 0, len(o.raw))
	for k := range o.raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Raw returns the underlying map. Mutating it directly bypasses tracking.
func (o *Object) Raw() map[string]any {
	return o.raw
}

func (o *Object) rawPointer() uintptr { return o.ptr }

func (o *Object) snapshotAny() any {
	o.engine.mu.lock()
	defer o.engine.mu.unlock()
	o.engine.track(o, sizeKey)
	out := make(map[string]any, len(o.raw))
	for k, v := range o.raw {
		o.engine.track(o, k)
		out[k] = v
	}
	return out
}

// =============================================================================
// List: ordered sequence with per-index tracking and a length key
// =============================================================================

// List is the observed wrapper for an ordered []any sequence.
type List struct {
	engine *Engine
	raw    []any
	ptr    uintptr
}

// ObserveList wraps an ordered sequence. Re-observing the same raw slice
// returns the identical wrapper.
func (e *Engine) ObserveList(raw []any) *List {
	e.mu.lock()
	defer e.mu.unlock()
	return e.observeListLocked(raw)
}

func (e *Engine) observeListLocked(raw []any) *List {
	ptr, _ := rawPointer(raw)
	return cachedWrapper(e, ptr, func() *List {
		return &List{engine: e, raw: raw, ptr: ptr}
	})
}

// Get reads the element at i, tracking its index key. Out-of-range reads
// return nil but still track, so later growth re-triggers the reader.
func (l *List) Get(i int) any {
	l.engine.mu.lock()
	defer l.engine.mu.unlock()
	l.engine.track(l, indexKey(i))
	if i < 0 || i >= len(l.raw) {
		return nil
	}
	return l.engine.wrapNested(l.raw[i])
}

// Set writes the element at i, triggering its index key on change.
// Out-of-range writes are ignored.
func (l *List) Set(i int, value any) {
	l.engine.mu.lock()
	defer l.engine.mu.unlock()
	if i < 0 || i >= len(l.raw) {
		return
	}
	if defaultEquals(l.raw[i], value) {
		return
	}
	l.raw[i] = value
	l.engine.trigger(l, indexKey(i))
}

// Append adds an element, triggering the new index and the length key.
func (l *List) Append(value any) {
	l.engine.mu.lock()
	defer l.engine.mu.unlock()
	i := len(l.raw)
	l.raw = append(l.raw, value)
	l.engine.trigger(l, indexKey(i))
	l.engine.trigger(l, lengthKey)
}

// Len returns the sequence length, tracking the length key.
func (l *List) Len() int {
	l.engine.mu.lock()
	defer l.engine.mu.unlock()
	l.engine.track(l, lengthKey)
	return len(l.raw)
}

// SetLen resizes the sequence. Truncation triggers every now-out-of-bounds
// index key in addition to the length key; growth pads with nil and triggers
// the new index keys.
func (l *List) SetLen(n int) {
	l.engine.mu.lock()
	defer l.engine.mu.unlock()
	if n < 0 || n == len(l.raw) {
		return
	}
	old := len(l.raw)
	if n < old {
		l.raw = l.raw[:n]
		for i := n; i < old; i++ {
			l.engine.trigger(l, indexKey(i))
		}
	} else {
		for i := old; i < n; i++ {
			l.raw = append(l.raw, nil)
			l.engine.trigger(l, indexKey(i))
		}
	}
	l.engine.trigger(l, lengthKey)
}

// Raw returns the underlying slice. Mutating it directly bypasses tracking.
func (l *List) Raw() []any {
	return l.raw
}

func (l *List) rawPointer() uintptr { return l.ptr }

func (l *List) snapshotAny() any {
	l.engine.mu.lock()
	defer l.engine.mu.unlock()
	l.engine.track(l, lengthKey)
	out := make([]any, len(l.raw))
	for i, v := range l.raw {
		l.engine.track(l, indexKey(i))
		out[i] = v
	}
	return out
}

// =============================================================================
// Dict: associative collection with per-key tracking and a size key
// =============================================================================

// Dict is the observed wrapper for an associative map[any]any collection.
type Dict struct {
	engine *Engine
	raw    map[any]any
	ptr    uintptr
}

// ObserveDict wraps an associative collection. Re-observing the same raw map
// returns the identical wrapper.
func (e *Engine) ObserveDict(raw map[any]any) *Dict {
	e.mu.lock()
	defer e.mu.unlock()
	return e.observeDictLocked(raw)
}

func (e *Engine) observeDictLocked(raw map[any]any) *Dict {
	if raw == nil {
		raw = make(map[any]any)
	}
	ptr, _ := rawPointer(raw)
	return cachedWrapper(e, ptr, func() *Dict {
		return &Dict{engine: e, raw: raw, ptr: ptr}
	})
}

// Get reads an entry, tracking its member key.
func (d *Dict) Get(key any) (any, bool) {
	d.engine.mu.lock()
	defer d.engine.mu.unlock()
	d.engine.track(d, memberKey(key))
	v, ok := d.raw[key]
	return d.engine.wrapNested(v), ok
}

// Set writes an entry, triggering its member key on change. Adding a new
// entry also touches the size key.
func (d *Dict) Set(key, value any) {
	d.engine.mu.lock()
	defer d.engine.mu.unlock()
	old, existed := d.raw[key]
	if existed && defaultEquals(old, value) {
		return
	}
	d.raw[key] = value
	d.engine.trigger(d, memberKey(key))
	if !existed {
		d.engine.trigger(d, sizeKey)
	}
}

// Delete removes an entry, triggering its member key and the size key.
func (d *Dict) Delete(key any) {
	d.engine.mu.lock()
	defer d.engine.mu.unlock()
	if _, existed := d.raw[key]; !existed {
		return
	}
	delete(d.raw, key)
	d.engine.trigger(d, memberKey(key))
	d.engine.trigger(d, sizeKey)
}

// Has reports membership, tracking the member key.
func (d *Dict) Has(key any) bool {
	d.engine.mu.lock()
	defer d.engine.mu.unlock()
	d.engine.track(d, memberKey(key))
	_, ok := d.raw[key]
	return ok
}

// Len returns the entry count, tracking the size key.
func (d *Dict) Len() int {
	d.engine.mu.lock()
	defer d.engine.mu.unlock()
	d.engine.track(d, sizeKey)
	return len(d.raw)
}

// Raw returns the underlying map. Mutating it directly bypasses tracking.
func (d *Dict) Raw() map[any]any {
	return d.raw
}

func (d *Dict) rawPointer() uintptr { return d.ptr }

func (d *Dict) snapshotAny() any {
	d.engine.mu.lock()
	defer d.engine.mu.unlock()
	d.engine.track(d, sizeKey)
	out := make(map[any]any, len(d.raw))
	for k, v := range d.raw {
		d.engine.track(d, memberKey(k))
		out[k] = v
	}
	return out
}

// =============================================================================
// Set: membership collection tracked per member plus a size key
// =============================================================================

// Set is the observed wrapper for a membership set.
type Set struct {
	engine *Engine
	raw    map[any]struct{}
	ptr    uintptr
}

// ObserveSet wraps a membership set. Re-observing the same raw set returns
// the identical wrapper.
func (e *Engine) ObserveSet(raw map[any]struct{}) *Set {
	e.mu.lock()
	defer e.mu.unlock()
	return e.observeSetLocked(raw)
}

func (e *Engine) observeSetLocked(raw map[any]struct{}) *Set {
	if raw == nil {
		raw = make(map[any]struct{})
	}
	ptr, _ := rawPointer(raw)
	return cachedWrapper(e, ptr, func() *Set {
		return &Set{engine: e, raw: raw, ptr: ptr}
	})
}

// Add inserts a member, triggering its member key and the size key when it
// was not already present.
func (s *Set) Add(member any) {
	s.engine.mu.lock()
	defer s.engine.mu.unlock()
	if _, ok := s.raw[member]; ok {
		return
	}
	s.raw[member] = struct{}{}
	s.engine.trigger(s, memberKey(member))
	s.engine.trigger(s, sizeKey)
}

// Remove deletes a member, triggering its member key and the size key.
func (s *Set) Remove(member any) {
	s.engine.mu.lock()
	defer s.engine.mu.unlock()
	if _, ok := s.raw[member]; !ok {
		return
	}
	delete(s.raw, member)
	s.engine.trigger(s, memberKey(member))
	s.engine.trigger(s, sizeKey)
}

// Has reports membership, tracking the member key.
func (s *Set) Has(member any) bool {
	s.engine.mu.lock()
	defer s.engine.mu.unlock()
	s.engine.track(s, memberKey(member))
	_, ok := s.raw[member]
	return ok
}

// Len returns the member count, tracking the size key.
func (s *Set) Len() int {
	s.engine.mu.lock()
	defer s.engine.mu.unlock()
	s.engine.track(s, sizeKey)
	return len(s.raw)
}

// Raw returns the underlying set. Mutating it directly bypasses tracking.
func (s *Set) Raw() map[any]struct{} {
	return s.raw
}

func (s *Set) rawPointer() uintptr { return s.ptr }

func (s *Set) snapshotAny() any {
	s.engine.mu.lock()
	defer s.engine.mu.unlock()
	s.engine.track(s, sizeKey)
	out := make(map[any]struct{}, len(s.raw))
	for k := range s.raw {
		s.engine.track(s, memberKey(k))
		out[k] = struct{}{}
	}
	return out
}
