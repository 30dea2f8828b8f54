// File: utils.go
// Title: Fault Inspection Helpers
// Description: Helpers for top-level handlers to recover fault information
//              from arbitrary, possibly wrapped, errors.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-13
// Modified: 2026-10-13
//
// Change History:
// - 2026-10-13 v0.1.0: Initial implementation

package exception

import "errors"

// As returns the first fault in err's chain
func As(err error) (Fault, bool) {
	if err == nil {
		return nil, false
	}
	var f Fault
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// HasCategory checks if err carries a fault with the given category
func HasCategory(err error, category Category) bool {
	f, ok := As(err)
	return ok && f.Category() == category
}

// CategoryOf returns the fault category of err, or CategoryNone
func CategoryOf(err error) Category {
	if f, ok := As(err); ok {
		return f.Category()
	}
	return CategoryNone
}

// LocationOf returns the raise site of the fault carried by err
func LocationOf(err error) (Location, bool) {
	if f, ok := As(err); ok {
		return f.Location(), true
	}
	return Location{}, false
}

// IsComponent checks if err carries a component fault
func IsComponent(err error) bool {
	var ce *ComponentError
	return errors.As(err, &ce)
}
