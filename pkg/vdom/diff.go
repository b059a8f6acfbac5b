package vdom

import (
	"reflect"
	"sort"

	"github.com/weft-ui/weft/internal/errors"
)

// Diff compares two trees and returns the ordered patch list that transforms
// old into new. Either tree may be nil. Encountering an unrecognized node
// kind is a hard error; nodes are never silently dropped.
func Diff(old, new *VNode) ([]Patch, error) {
	var patches []Patch
	if err := diff(old, new, rootPath(), "", &patches); err != nil {
		return nil, err
	}
	return patches, nil
}

func rootPath() []int {
	return []int{}
}

// childPath returns a fresh path addressing child i under path.
func childPath(path []int, i int) []int {
	out := make([]int, len(path)+1)
	copy(out, path)
	out[len(path)] = i
	return out
}

func checkKind(n *VNode) error {
	if n != nil && !n.Kind.valid() {
		return errors.New(errors.CodeUnknownVNodeKind).
			WithDetail("node kind " + n.Kind.String())
	}
	return nil
}

// diff recursively compares one old/new pair addressed by path.
func diff(old, new *VNode, path []int, slot string, patches *[]Patch) error {
	if old == nil && new == nil {
		return nil
	}
	if err := checkKind(old); err != nil {
		return err
	}
	if err := checkKind(new); err != nil {
		return err
	}

	if old == nil {
		*patches = append(*patches, Patch{Op: OpCreate, Path: path, Node: new, Slot: slot})
		return nil
	}
	if new == nil {
		*patches = append(*patches, Patch{Op: OpRemove, Path: path, Slot: slot})
		return nil
	}

	// Differing type identity replaces the whole subtree; no recursion past
	// this point. Tag carries the identity within a kind (element tag,
	// component name, teleport target).
	if old.Kind != new.Kind || old.Tag != new.Tag {
		*patches = append(*patches, Patch{Op: OpReplace, Path: path, Node: new, Slot: slot})
		return nil
	}

	switch old.Kind {
	case KindText, KindComment:
		if old.Text != new.Text {
			*patches = append(*patches, Patch{Op: OpUpdateText, Path: path, Text: new.Text, Slot: slot})
		}
		return nil

	case KindElement, KindComponent, KindTeleport:
		diffProps(old, new, path, slot, patches)
		if err := diffChildList(old.Children, new.Children, path, slot, patches); err != nil {
			return err
		}
		if old.Kind == KindComponent {
			return diffSlots(old, new, path, patches)
		}
		return nil

	case KindFragment:
		return diffChildList(old.Children, new.Children, path, slot, patches)

	default:
		return errors.New(errors.CodeUnknownVNodeKind).
			WithDetail("node kind " + old.Kind.String())
	}
}

// diffProps emits UPDATE_PROPS for changed ordinary attributes and
// UPDATE_EVENTS for changed handlers. Removed keys appear with a nil value.
// Keys are visited in sorted order so the payloads are deterministic.
func diffProps(old, new *VNode, path []int, slot string, patches *[]Patch) {
	propsDiff := make(map[string]any)
	eventsDiff := make(map[string]any)

	for _, key := range unionKeys(old.Props, new.Props) {
		if key == "key" {
			continue // reconciliation key, not a real attribute
		}
		oldVal, inOld := old.Props[key]
		newVal, inNew := new.Props[key]

		var change any
		switch {
		case inOld && !inNew:
			change = nil // removal marker
		case !inOld || !propValsEqual(oldVal, newVal):
			change = newVal
		default:
			continue
		}

		if IsEventKey(key) {
			eventsDiff[key] = change
		} else {
			propsDiff[key] = change
		}
	}

	if len(propsDiff) > 0 {
		*patches = append(*patches, Patch{Op: OpUpdateProps, Path: path, Props: propsDiff, Slot: slot})
	}
	if len(eventsDiff) > 0 {
		*patches = append(*patches, Patch{Op: OpUpdateEvents, Path: path, Events: eventsDiff, Slot: slot})
	}
}

// diffSlots compares the named-slot mappings of two component nodes.
// Each slot's children diff like ordinary children, with the slot name
// recorded on the resulting patches.
func diffSlots(old, new *VNode, path []int, patches *[]Patch) error {
	names := make(map[string]bool, len(old.Slots)+len(new.Slots))
	for name := range old.Slots {
		names[name] = true
	}
	for name := range new.Slots {
		names[name] = true
	}
	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	for _, name := range sorted {
		if err := diffChildList(old.Slots[name], new.Slots[name], path, name, patches); err != nil {
			return err
		}
	}
	return nil
}

// diffChildList dispatches between keyed and positional reconciliation.
func diffChildList(old, new []*VNode, path []int, slot string, patches *[]Patch) error {
	if hasKeys(old) || hasKeys(new) {
		return diffKeyedChildren(old, new, path, slot, patches)
	}
	return diffUnkeyedChildren(old, new, path, slot, patches)
}

// diffUnkeyedChildren matches children positionally. Indices shared by both
// trees recurse; extra new indices create, extra old indices remove.
func diffUnkeyedChildren(old, new []*VNode, path []int, slot string, patches *[]Patch) error {
	maxLen := len(old)
	if len(new) > maxLen {
		maxLen = len(new)
	}
	for i := 0; i < maxLen; i++ {
		var oldChild, newChild *VNode
		if i < len(old) {
			oldChild = old[i]
		}
		if i < len(new) {
			newChild = new[i]
		}
		if err := diff(oldChild, newChild, childPath(path, i), slot, patches); err != nil {
			return err
		}
	}
	return nil
}

// diffKeyedChildren matches children by key identity rather than position.
//
// Matched pairs recurse addressed at the OLD index (paths are pre-patch).
// Keys only in old remove; keys only in new create at the new index. Keyless
// children inside a keyed list pair positionally with the keyless old
// children, so a static sibling between keyed entries survives re-renders
// instead of churning through a CREATE/REMOVE pair. If the matched old
// positions, read in new-tree order, are not monotonically increasing,
// exactly one REORDER is emitted at the parent path carrying those positions;
// re-sequencing strategy is left to the patch executor.
//
// Duplicate keys among siblings resolve deterministically: the first
// occurrence owns the key, later occurrences are treated as keyless.
func diffKeyedChildren(old, new []*VNode, path []int, slot string, patches *[]Patch) error {
	oldIndexByKey := make(map[string]int, len(old))
	var looseOld []int
	for i, child := range old {
		key := getKey(child)
		if key == "" {
			looseOld = append(looseOld, i)
			continue
		}
		if _, dup := oldIndexByKey[key]; !dup {
			oldIndexByKey[key] = i
		}
	}

	usedOld := make(map[int]bool, len(old))
	var matchedOldOrder []int
	seenNewKeys := make(map[string]bool, len(new))
	loose := 0

	for newIdx, newChild := range new {
		key := getKey(newChild)
		if key != "" && !seenNewKeys[key] {
			seenNewKeys[key] = true
			if oldIdx, ok := oldIndexByKey[key]; ok {
				usedOld[oldIdx] = true
				matchedOldOrder = append(matchedOldOrder, oldIdx)
				if err := diff(old[oldIdx], newChild, childPath(path, oldIdx), slot, patches); err != nil {
					return err
				}
				continue
			}
			// Fresh key: nothing to pair with.
			if err := checkKind(newChild); err != nil {
				return err
			}
			*patches = append(*patches, Patch{Op: OpCreate, Path: childPath(path, newIdx), Node: newChild, Slot: slot})
			continue
		}

		// Keyless child or duplicate key occurrence: pair with the next
		// keyless old child, positionally.
		if loose < len(looseOld) {
			oldIdx := looseOld[loose]
			loose++
			usedOld[oldIdx] = true
			matchedOldOrder = append(matchedOldOrder, oldIdx)
			if err := diff(old[oldIdx], newChild, childPath(path, oldIdx), slot, patches); err != nil {
				return err
			}
			continue
		}
		if err := checkKind(newChild); err != nil {
			return err
		}
		*patches = append(*patches, Patch{Op: OpCreate, Path: childPath(path, newIdx), Node: newChild, Slot: slot})
	}

	for i := range old {
		if !usedOld[i] {
			*patches = append(*patches, Patch{Op: OpRemove, Path: childPath(path, i), Slot: slot})
		}
	}

	if !monotonic(matchedOldOrder) {
		order := make([]int, len(matchedOldOrder))
		copy(order, matchedOldOrder)
		*patches = append(*patches, Patch{Op: OpReorder, Path: path, Order: order, Slot: slot})
	}
	return nil
}

// monotonic reports whether the sequence is strictly increasing.
func monotonic(seq []int) bool {
	for i := 1; i < len(seq); i++ {
		if seq[i] <= seq[i-1] {
			return false
		}
	}
	return true
}

// unionKeys returns the sorted union of both prop maps' keys.
func unionKeys(a, b map[string]any) []string {
	keys := make(map[string]bool, len(a)+len(b))
	for k := range a {
		keys[k] = true
	}
	for k := range b {
		keys[k] = true
	}
	out := make([]string, 0, len(keys))
	for k := range keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// propValsEqual compares two prop values. Handlers compare by function
// identity; everything else by == for comparable types with a DeepEqual
// fallback.
func propValsEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Kind() == reflect.Func {
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	}
	if ta.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}
