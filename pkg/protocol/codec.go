package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/weft-ui/weft/internal/errors"
	"github.com/weft-ui/weft/pkg/vdom"
)

// Frame is a batch of patches with a sequence number, the unit both
// implementations exchange after a render effect re-runs.
type Frame struct {
	Seq     uint64       `json:"seq"`
	Patches []vdom.Patch `json:"patches"`
}

// EncodeFrame encodes a patch frame to JSON.
func EncodeFrame(f *Frame) ([]byte, error) {
	if f.Patches == nil {
		f.Patches = []vdom.Patch{}
	}
	return json.Marshal(f)
}

// DecodeFrame decodes and validates a patch frame.
func DecodeFrame(data []byte) (*Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errors.New(errors.CodeProtocolDecode).Wrap(err)
	}
	if err := validatePatches(f.Patches); err != nil {
		return nil, err
	}
	return &f, nil
}

// EncodePatches encodes a bare patch list to JSON.
func EncodePatches(patches []vdom.Patch) ([]byte, error) {
	if patches == nil {
		patches = []vdom.Patch{}
	}
	return json.Marshal(patches)
}

// DecodePatches decodes and validates a bare patch list.
func DecodePatches(data []byte) ([]vdom.Patch, error) {
	var patches []vdom.Patch
	if err := json.Unmarshal(data, &patches); err != nil {
		return nil, errors.New(errors.CodeProtocolDecode).Wrap(err)
	}
	if err := validatePatches(patches); err != nil {
		return nil, err
	}
	return patches, nil
}

// EncodeTree encodes a vnode tree to JSON.
func EncodeTree(root *vdom.VNode) ([]byte, error) {
	return json.Marshal(root)
}

// DecodeTree decodes a vnode tree from JSON.
func DecodeTree(data []byte) (*vdom.VNode, error) {
	var root vdom.VNode
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, errors.New(errors.CodeProtocolDecode).Wrap(err)
	}
	return &root, nil
}

func validatePatches(patches []vdom.Patch) error {
	for i, p := range patches {
		if !p.Op.Valid() {
			return errors.New(errors.CodeUnknownPatchOp).
				WithDetail(fmt.Sprintf("patch %d carries op %d", i, p.Op))
		}
	}
	return nil
}
