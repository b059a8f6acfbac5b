// Package weft provides the public API for the Weft reactive core.
//
// This is the recommended import for most applications:
//
//	import "github.com/weft-ui/weft"
//
// Usage:
//
//	engine := weft.NewEngine()
//	count := weft.NewBox(engine, 0)
//	engine.Effect(func() { fmt.Println(count.Get()) })
//	count.Set(1)
package weft

import (
	"github.com/weft-ui/weft/pkg/protocol"
	"github.com/weft-ui/weft/pkg/reactive"
	"github.com/weft-ui/weft/pkg/vdom"
)

// =============================================================================
// Reactive primitives (re-export from pkg/reactive)
// =============================================================================

// Engine is one independent reactive instance.
type Engine = reactive.Engine

// EngineOption configures an Engine.
type EngineOption = reactive.EngineOption

// Effect re-runs its body whenever a tracked dependency changes.
type Effect = reactive.Effect

// EffectOption configures an Effect at construction.
type EffectOption = reactive.EffectOption

// Watcher observes one source and fires a callback on change.
type Watcher = reactive.Watcher

// Object, List, Dict, and Set are the observed wrapper kinds.
type (
	Object = reactive.Object
	List   = reactive.List
	Dict   = reactive.Dict
	Set    = reactive.Set
)

// NewEngine creates a new reactive engine.
var NewEngine = reactive.NewEngine

// WithMetrics registers Prometheus instrumentation for an engine.
var WithMetrics = reactive.WithMetrics

// WithTracer enables OpenTelemetry tracing of flushes.
var WithTracer = reactive.WithTracer

// Deferred routes an effect's triggers through the engine scheduler.
var Deferred = reactive.Deferred

// WithScheduler installs a custom scheduler hook on an effect.
var WithScheduler = reactive.WithScheduler

// Watch observes a getter, boxed value, or observed wrapper and fires the
// callback with (new, old) whenever the derived value changes.
var Watch = reactive.Watch

// NewBox creates a boxed reactive value on the engine.
func NewBox[T any](e *Engine, initial T) *reactive.Box[T] {
	return reactive.NewBox(e, initial)
}

// NewComputed creates a lazily evaluated derived cell on the engine.
func NewComputed[T any](e *Engine, getter func() T) *reactive.Computed[T] {
	return reactive.NewComputed(e, getter)
}

// =============================================================================
// Virtual tree (re-export from pkg/vdom)
// =============================================================================

// VNode is one virtual tree node.
type VNode = vdom.VNode

// VKind is the node type discriminator.
type VKind = vdom.VKind

// Patch is one atomic instruction for the patch executor.
type Patch = vdom.Patch

// PatchOp is the type of patch operation.
type PatchOp = vdom.PatchOp

// Patch operations.
const (
	OpCreate       = vdom.OpCreate
	OpRemove       = vdom.OpRemove
	OpReplace      = vdom.OpReplace
	OpUpdateProps  = vdom.OpUpdateProps
	OpUpdateText   = vdom.OpUpdateText
	OpReorder      = vdom.OpReorder
	OpUpdateEvents = vdom.OpUpdateEvents
)

// Node kinds.
const (
	KindElement   = vdom.KindElement
	KindComponent = vdom.KindComponent
	KindText      = vdom.KindText
	KindComment   = vdom.KindComment
	KindFragment  = vdom.KindFragment
	KindTeleport  = vdom.KindTeleport
)

// Node constructors.
var (
	Element   = vdom.Element
	Component = vdom.Component
	Text      = vdom.Text
	Textf     = vdom.Textf
	Comment   = vdom.Comment
	Fragment  = vdom.Fragment
	Teleport  = vdom.Teleport
)

// Diff compares two trees and returns the patch list that transforms old
// into new.
var Diff = vdom.Diff

// =============================================================================
// Wire protocol (re-export from pkg/protocol)
// =============================================================================

// Frame is a batch of patches with a sequence number.
type Frame = protocol.Frame

var (
	EncodeFrame = protocol.EncodeFrame
	DecodeFrame = protocol.DecodeFrame
	EncodeTree  = protocol.EncodeTree
	DecodeTree  = protocol.DecodeTree
)
