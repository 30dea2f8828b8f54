// File: component.go
// Title: Component Fault
// Description: Fault kind for component related errors. Identical in shape to
//              the base exception with the category fixed to "Component".
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-12
//
// Change History:
// - 2026-10-12 v0.1.0: Initial implementation

package exception

// ComponentError is a fault raised for component errors
type ComponentError struct {
	Exception
}

// NewComponent creates a component fault with an explicit source location
func NewComponent(message, file, function string, line int) *ComponentError {
	return newComponentError(message, Location{File: file, Function: function, Line: line})
}

func newComponentError(message string, loc Location) *ComponentError {
	return &ComponentError{Exception: *newException(message, CategoryComponent, loc)}
}

// As lets errors.As match a component fault against *Exception
func (e *ComponentError) As(target interface{}) bool {
	if t, ok := target.(**Exception); ok {
		*t = &e.Exception
		return true
	}
	return false
}
