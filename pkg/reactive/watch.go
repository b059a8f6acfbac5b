package reactive

import (
	"github.com/weft-ui/weft/internal/errors"
)

// boxed is implemented by boxes and computed cells so either can be handed
// to Watch directly.
type boxed interface {
	readAny() any
}

// Watcher is the handle returned by Watch. Stopping it detaches both the
// outer effect and the internal computed cell.
type Watcher struct {
	eff  *Effect
	cell *Computed[any]
}

// Stop cancels the watcher.
func (w *Watcher) Stop() {
	w.eff.Stop()
	w.cell.Stop()
}

// Watch invokes callback(new, old) whenever the source's value actually
// changes. Mere re-evaluation without a value change does not fire the
// callback. The source may be a getter function, a boxed value (Box or
// Computed), or an observed wrapper; anything else fails synchronously at
// construction time.
//
// Internally the source is normalized to a getter and wrapped in a computed
// cell; a deferred outer effect compares the cell's new value against its
// previous one and gates the callback on inequality.
func Watch(e *Engine, source any, callback func(newVal, oldVal any)) (*Watcher, error) {
	var getter func() any
	switch s := source.(type) {
	case func() any:
		getter = s
	case boxed:
		getter = s.readAny
	case observed:
		getter = s.snapshotAny
	default:
		return nil, errors.New(errors.CodeInvalidWatchSource).
			WithSuggestion("pass a func() any, a *Box, a *Computed, or an observed wrapper")
	}

	cell := NewComputed(e, getter)

	first := true
	eff := e.Effect(func() {
		v := cell.Get()
		if first {
			first = false
			return
		}
		old := cell.OldValue()
		if !defaultEquals(v, old) {
			callback(v, old)
		}
	}, Deferred())

	return &Watcher{eff: eff, cell: cell}, nil
}
