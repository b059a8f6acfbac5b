// Package errors provides structured errors for the Weft reactive core.
//
// Every failure surfaced by the public API carries a stable code (e.g.
// "WEFT_E001"), a category, and optionally a fix suggestion. Codes are
// registered in registry.go so tooling can look up details for any code
// it encounters.
//
// Tracking and triggering never produce errors; only construction-time
// misuse and malformed trees/frames do.
package errors
