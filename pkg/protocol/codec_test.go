package protocol

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	wefterrors "github.com/weft-ui/weft/internal/errors"
	"github.com/weft-ui/weft/pkg/vdom"
)

func TestFrameRoundTrip(t *testing.T) {
	old := vdom.Element("div", nil, vdom.Text("a"))
	next := vdom.Element("div", nil, vdom.Text("b"), vdom.Element("span", map[string]any{"class": "x"}))
	patches, err := vdom.Diff(old, next)
	if err != nil {
		t.Fatalf("diff: %v", err)
	}

	data, err := EncodeFrame(&Frame{Seq: 42, Patches: patches})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	decoded, err := DecodeFrame(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Seq != 42 {
		t.Errorf("Seq = %d, want 42", decoded.Seq)
	}
	if diff := cmp.Diff(patches, decoded.Patches); diff != "" {
		t.Errorf("patches (-want +got):\n%s", diff)
	}
}

func TestPatchOpsEncodeAsNumbers(t *testing.T) {
	data, err := EncodePatches([]vdom.Patch{
		{Op: vdom.OpUpdateText, Path: []int{0}, Text: "hi"},
		{Op: vdom.OpUpdateEvents, Path: []int{}, Events: map[string]any{"onClick": nil}},
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := raw[0]["op"]; got != float64(4) {
		t.Errorf("UPDATE_TEXT encoded as %v, want 4", got)
	}
	if got := raw[1]["op"]; got != float64(6) {
		t.Errorf("UPDATE_EVENTS encoded as %v, want 6", got)
	}
}

func TestEncodeFrameNormalizesNilPatches(t *testing.T) {
	data, err := EncodeFrame(&Frame{Seq: 1})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(string(data), `"patches":[]`) {
		t.Errorf("nil patch list should encode as [], got %s", data)
	}
}

func TestDecodeFrameRejectsUnknownOp(t *testing.T) {
	_, err := DecodeFrame([]byte(`{"seq":1,"patches":[{"op":9,"path":[]}]}`))
	if err == nil {
		t.Fatalf("Expected error for op 9")
	}
	var werr *wefterrors.WeftError
	if !errors.As(err, &werr) {
		t.Fatalf("error is %T, want *WeftError", err)
	}
	if werr.Code != wefterrors.CodeUnknownPatchOp {
		t.Errorf("Code = %s, want %s", werr.Code, wefterrors.CodeUnknownPatchOp)
	}
}

func TestDecodeFrameRejectsMalformedJSON(t *testing.T) {
	_, err := DecodeFrame([]byte(`{"seq":`))
	if err == nil {
		t.Fatalf("Expected error for truncated payload")
	}
	var werr *wefterrors.WeftError
	if !errors.As(err, &werr) || werr.Code != wefterrors.CodeProtocolDecode {
		t.Errorf("error = %v, want %s", err, wefterrors.CodeProtocolDecode)
	}
}

func TestTreeRoundTrip(t *testing.T) {
	root := vdom.Element("div", map[string]any{"id": "app"},
		vdom.Element("ul", nil,
			vdom.Element("li", nil, vdom.Text("one")).WithKey("1"),
			vdom.Element("li", nil, vdom.Text("two")).WithKey("2"),
		),
	)

	data, err := EncodeTree(root)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeTree(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if diff := cmp.Diff(root, decoded); diff != "" {
		t.Errorf("tree (-want +got):\n%s", diff)
	}

	// A decoded tree must diff cleanly against its source.
	patches, err := vdom.Diff(root, decoded)
	if err != nil {
		t.Fatalf("diff: %v", err)
	}
	if len(patches) != 0 {
		t.Errorf("Expected 0 patches after round trip, got %d", len(patches))
	}
}
