package vdom

import "fmt"

// NewVNode is the general constructor the template compiler targets.
func NewVNode(kind VKind, tag string, props map[string]any, children []*VNode, key string) *VNode {
	n := &VNode{
		Kind:     kind,
		Tag:      tag,
		Props:    props,
		Children: children,
		Key:      key,
	}
	if key == "" && props != nil {
		if k, ok := props["key"].(string); ok {
			n.Key = k
		}
	}
	return n
}

// Element creates an element node.
func Element(tag string, props map[string]any, children ...*VNode) *VNode {
	return NewVNode(KindElement, tag, props, compact(children), "")
}

// Component creates a component node identified by name.
func Component(name string, props map[string]any, children ...*VNode) *VNode {
	return NewVNode(KindComponent, name, props, compact(children), "")
}

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{Kind: KindText, Text: content}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Comment creates a comment node.
func Comment(content string) *VNode {
	return &VNode{Kind: KindComment, Text: content}
}

// Fragment groups children without a wrapper node.
func Fragment(children ...*VNode) *VNode {
	return &VNode{Kind: KindFragment, Children: compact(children)}
}

// Teleport renders children at the named mount target.
func Teleport(target string, props map[string]any, children ...*VNode) *VNode {
	return NewVNode(KindTeleport, target, props, compact(children), "")
}

// WithKey sets the reconciliation key and returns the node.
func (v *VNode) WithKey(key string) *VNode {
	v.Key = key
	return v
}

// WithSlot attaches a named slot and returns the node.
func (v *VNode) WithSlot(name string, children ...*VNode) *VNode {
	if v.Slots == nil {
		v.Slots = make(map[string][]*VNode)
	}
	v.Slots[name] = compact(children)
	return v
}

// compact drops nil children.
func compact(children []*VNode) []*VNode {
	out := children[:0]
	for _, c := range children {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}
