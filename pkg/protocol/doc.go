// Package protocol implements the JSON wire encoding shared by the managed
// and native implementations of the Weft core.
//
// Patch frames carry the differ's output; the numeric patch op tags 0-6 are
// fixed and validated on decode. Reactive values encode with boxed values
// tagged as {"$$type":"ref","value":<encoded-value>} while observed wrappers
// flatten to their plain underlying value.
package protocol
