// Package vdom provides the virtual node model and the tree differ for Weft.
//
// VNode is an immutable description of one rendered node: element, component,
// text, comment, fragment, or teleport. A render effect produces a VNode tree
// on every run; Diff compares the new tree against the previous one and
// returns the ordered Patch list an external patch executor applies.
//
// # Diffing
//
// Diff(old, new) walks both trees together. Paths in the resulting patches
// are child-index paths into the pre-patch tree; they are never renumbered
// to account for earlier patches in the same batch. Keyed children are
// matched by identity, and a single REORDER patch per parent signals that
// the relative order of surviving children changed. The minimal-move
// strategy is the executor's concern; the differ only guarantees a REORDER
// is emitted iff order changed.
//
// Patch op tags use the fixed numeric encodings 0-6 for wire compatibility.
package vdom
