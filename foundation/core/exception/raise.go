// File: raise.go
// Title: Located Raise Helpers
// Description: Raise and Throw build a fault of any kind at the caller's
//              source location, so call sites only provide the kind and the
//              message. Catch turns a thrown fault back into an error value.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-12 v0.1.0: Initial implementation with Raise and Raisef
// - 2026-10-16 v0.1.0: Throw and Catch

package exception

import (
	"errors"
	"fmt"
)

// Kind constructs a fault of one exception kind at a given location
type Kind func(message string, loc Location) Fault

// Generic builds a base fault with an empty category
func Generic(message string, loc Location) Fault {
	return newException(message, CategoryNone, loc)
}

// Component builds a component fault
func Component(message string, loc Location) Fault {
	return newComponentError(message, loc)
}

// Categorized returns a Kind producing base faults with the given category
func Categorized(category Category) Kind {
	return func(message string, loc Location) Fault {
		return newException(message, category, loc)
	}
}

// Raise creates a fault of the given kind located at the caller of Raise
func Raise(kind Kind, message string) Fault {
	return kind(message, Caller(1))
}

// Raisef is Raise with a formatted message
func Raisef(kind Kind, format string, args ...interface{}) Fault {
	return kind(fmt.Sprintf(format, args...), Caller(1))
}

// Throw panics with a fault of the given kind located at the caller of Throw.
// The panic is meant to be recovered by Catch further up the stack.
func Throw(kind Kind, message string) {
	panic(kind(message, Caller(1)))
}

// Throwf is Throw with a formatted message
func Throwf(kind Kind, format string, args ...interface{}) {
	panic(kind(fmt.Sprintf(format, args...), Caller(1)))
}

// Catch runs fn and returns its error. A fault thrown anywhere below fn is
// recovered and returned unchanged; any other panic is re-raised.
func Catch(fn func() error) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(error); ok {
			var f Fault
			if errors.As(e, &f) {
				err = e
				return
			}
		}
		panic(r)
	}()
	return fn()
}
