package protocol

import (
	"encoding/json"

	"github.com/weft-ui/weft/internal/errors"
	"github.com/weft-ui/weft/pkg/reactive"
)

// refTypeTag marks a boxed value on the wire.
const refTypeTag = "ref"

// Ref is the decoded form of a boxed value when no engine is available to
// re-box it.
type Ref struct {
	Value any
}

// EncodeValue encodes a reactive value for the process boundary. Boxes
// marshal as {"$$type":"ref","value":…} via their MarshalJSON; observed
// wrappers flatten to their plain underlying value the same way.
func EncodeValue(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Decoder decodes reactive values. When Engine is set, ref-tagged values are
// re-boxed on that engine; otherwise they decode to Ref markers.
type Decoder struct {
	Engine *reactive.Engine
}

// DecodeValue decodes one encoded reactive value.
func (d *Decoder) DecodeValue(data []byte) (any, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.New(errors.CodeProtocolDecode).Wrap(err)
	}
	return d.rebuild(raw), nil
}

// rebuild walks the decoded structure, replacing ref-tagged objects.
func (d *Decoder) rebuild(v any) any {
	switch t := v.(type) {
	case map[string]any:
		if tag, ok := t["$$type"].(string); ok && tag == refTypeTag {
			inner := d.rebuild(t["value"])
			if d.Engine != nil {
				return reactive.NewBox(d.Engine, inner)
			}
			return Ref{Value: inner}
		}
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = d.rebuild(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = d.rebuild(val)
		}
		return out
	default:
		return v
	}
}
