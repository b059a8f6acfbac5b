package errors

// Stable error codes surfaced by the public API.
const (
	CodeInvalidWatchSource = "WEFT_E001"
	CodeUnknownVNodeKind   = "WEFT_E002"
	CodeProtocolDecode     = "WEFT_E003"
	CodeUnsupportedObserve = "WEFT_E004"
	CodeUnknownPatchOp     = "WEFT_E005"
	CodeConfigNotFound     = "WEFT_E006"
	CodeConfigParse        = "WEFT_E007"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	CodeInvalidWatchSource: {
		Category: CategoryValidation,
		Message:  "Invalid watch source",
		Detail:   "Watch accepts a getter function, a boxed value, or an observed wrapper. Anything else fails at construction time.",
	},
	CodeUnknownVNodeKind: {
		Category: CategoryRuntime,
		Message:  "Unknown VNode kind",
		Detail:   "The differ encountered a node kind it does not recognize. Nodes are never silently dropped.",
	},
	CodeProtocolDecode: {
		Category: CategoryProtocol,
		Message:  "Frame decode failed",
		Detail:   "The JSON frame could not be decoded into patches or vnodes.",
	},
	CodeUnsupportedObserve: {
		Category: CategoryValidation,
		Message:  "Unsupported observe target",
		Detail:   "Observe accepts map[string]any, []any, map[any]any, and map[any]struct{} targets.",
	},
	CodeUnknownPatchOp: {
		Category: CategoryProtocol,
		Message:  "Unknown patch operation",
		Detail:   "The patch op tag is outside the known range 0-6.",
	},
	CodeConfigNotFound: {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
	},
	CodeConfigParse: {
		Category: CategoryConfig,
		Message:  "Configuration read failed",
	},
}

// Lookup returns the registered template for a code, if any.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
