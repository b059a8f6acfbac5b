package vdom

import "strings"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindComponent              // Nested component, identified by name
	KindText                   // Plain text node
	KindComment                // Comment node
	KindFragment               // Grouping without wrapper
	KindTeleport               // Children rendered at another mount point
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindComponent:
		return "Component"
	case KindText:
		return "Text"
	case KindComment:
		return "Comment"
	case KindFragment:
		return "Fragment"
	case KindTeleport:
		return "Teleport"
	default:
		return "Unknown"
	}
}

// valid reports whether the kind is one of the known variants.
func (k VKind) valid() bool {
	return k <= KindTeleport
}

// VNode is one virtual tree node.
//
// Tag carries the type identity within a kind: the element tag name, the
// component name, or the teleport mount target. Two nodes of the same kind
// with different tags are different types for diffing purposes.
type VNode struct {
	Kind     VKind              `json:"kind"`
	Tag      string             `json:"tag,omitempty"`
	Props    map[string]any     `json:"props,omitempty"`
	Children []*VNode           `json:"children,omitempty"`
	Slots    map[string][]*VNode `json:"slots,omitempty"`
	Key      string             `json:"key,omitempty"`
	Text     string             `json:"text,omitempty"`
}

// IsEventKey reports whether a prop key names an event handler.
// Case-insensitive so onclick, onClick, and ONCLICK all count.
func IsEventKey(key string) bool {
	return len(key) > 2 && strings.EqualFold(key[:2], "on")
}

// IsInteractive returns true if this node carries any event handlers.
func (v *VNode) IsInteractive() bool {
	if v == nil || v.Kind != KindElement {
		return false
	}
	for key := range v.Props {
		if IsEventKey(key) {
			return true
		}
	}
	return false
}

// getKey extracts the reconciliation key from a node.
func getKey(node *VNode) string {
	if node == nil {
		return ""
	}
	if node.Key != "" {
		return node.Key
	}
	if node.Props == nil {
		return ""
	}
	if key, ok := node.Props["key"].(string); ok {
		return key
	}
	return ""
}

// hasKeys returns true if any child carries a key.
func hasKeys(children []*VNode) bool {
	for _, child := range children {
		if getKey(child) != "" {
			return true
		}
	}
	return false
}
