package vdom_test

import (
	"testing"

	"github.com/weft-ui/weft/pkg/reactive"
	"github.com/weft-ui/weft/pkg/vdom"
)

// A render effect reads reactive state, produces a fresh tree, and the differ
// turns the old/new pair into patches. This exercises the whole pipeline the
// way a host runtime drives it.
func TestRenderEffectProducesPatches(t *testing.T) {
	e := reactive.NewEngine()
	items, err := e.Observe([]any{"alpha", "beta"})
	if err != nil {
		t.Fatalf("observe: %v", err)
	}
	list := items.(*reactive.List)
	selected := reactive.NewBox(e, 0)

	render := func() *vdom.VNode {
		children := make([]*vdom.VNode, 0, list.Len())
		for i := 0; i < list.Len(); i++ {
			label, _ := list.Get(i).(string)
			props := map[string]any{}
			if i == selected.Get() {
				props["class"] = "selected"
			}
			children = append(children,
				vdom.Element("li", props, vdom.Text(label)).WithKey(label))
		}
		return vdom.Element("ul", nil, children...)
	}

	var current *vdom.VNode
	var frames [][]vdom.Patch

	e.Effect(func() {
		next := render()
		patches, derr := vdom.Diff(current, next)
		if derr != nil {
			t.Errorf("diff: %v", derr)
			return
		}
		if len(patches) > 0 {
			frames = append(frames, patches)
		}
		current = next
	}, reactive.Deferred())
	e.Flush()

	// Initial render: one CREATE for the whole tree.
	if len(frames) != 1 {
		t.Fatalf("Expected 1 frame after mount, got %d", len(frames))
	}
	if len(frames[0]) != 1 || frames[0][0].Op != vdom.OpCreate {
		t.Fatalf("Mount frame = %v", frames[0])
	}

	// Selection change: two UPDATE_PROPS, nothing structural.
	selected.Set(1)
	e.Flush()
	if len(frames) != 2 {
		t.Fatalf("Expected 2 frames, got %d", len(frames))
	}
	for _, p := range frames[1] {
		if p.Op != vdom.OpUpdateProps {
			t.Errorf("Selection change emitted %v", p.Op)
		}
	}
	if len(frames[1]) != 2 {
		t.Errorf("Expected 2 prop patches, got %d", len(frames[1]))
	}

	// Appending an item: one CREATE for the new child only.
	list.Append("gamma")
	e.Flush()
	if len(frames) != 3 {
		t.Fatalf("Expected 3 frames, got %d", len(frames))
	}
	if len(frames[2]) != 1 || frames[2][0].Op != vdom.OpCreate {
		t.Fatalf("Append frame = %v", frames[2])
	}
	if got := frames[2][0].Path; len(got) != 1 || got[0] != 2 {
		t.Errorf("Append path = %v, want [2]", got)
	}

	// Two writes in one batch collapse into one re-render.
	e.Batch(func() {
		selected.Set(2)
		list.Set(0, "ALPHA")
	})
	if len(frames) != 4 {
		t.Fatalf("Expected 4 frames after batch, got %d", len(frames))
	}
}
