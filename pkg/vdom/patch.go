package vdom

// PatchOp is the type of patch operation. The numeric encodings are part of
// the wire format and must not change.
type PatchOp uint8

const (
	OpCreate       PatchOp = 0 // Insert a new node
	OpRemove       PatchOp = 1 // Remove a node
	OpReplace      PatchOp = 2 // Replace a node and its subtree
	OpUpdateProps  PatchOp = 3 // Changed/removed ordinary attributes
	OpUpdateText   PatchOp = 4 // New text/comment content
	OpReorder      PatchOp = 5 // Relative order of keyed children changed
	OpUpdateEvents PatchOp = 6 // Changed/removed event handlers
)

// String returns the string representation of the PatchOp.
func (op PatchOp) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpRemove:
		return "REMOVE"
	case OpReplace:
		return "REPLACE"
	case OpUpdateProps:
		return "UPDATE_PROPS"
	case OpUpdateText:
		return "UPDATE_TEXT"
	case OpReorder:
		return "REORDER"
	case OpUpdateEvents:
		return "UPDATE_EVENTS"
	default:
		return "Unknown"
	}
}

// Valid reports whether the op is in the known range.
func (op PatchOp) Valid() bool {
	return op <= OpUpdateEvents
}

// Patch is one atomic instruction for the patch executor.
//
// Path is the ordered list of child indices locating the target node from
// the tree root, computed against the pre-patch structure. Which payload
// field is set depends on Op: Node for CREATE/REPLACE, Props for
// UPDATE_PROPS (nil value marks a removal), Events for UPDATE_EVENTS (nil
// value marks a removal), Text for UPDATE_TEXT, Order for REORDER. Slot
// names the slot whose children the path's final indices address, when the
// patch targets a named slot.
type Patch struct {
	Op     PatchOp        `json:"op"`
	Path   []int          `json:"path"`
	Node   *VNode         `json:"node,omitempty"`
	Props  map[string]any `json:"props,omitempty"`
	Events map[string]any `json:"events,omitempty"`
	Text   string         `json:"text,omitempty"`
	Order  []int          `json:"order,omitempty"`
	Slot   string         `json:"slot,omitempty"`
}
