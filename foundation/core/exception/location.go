// File: location.go
// Title: Source Location Capture
// Description: Captures the file, fully qualified function name and line of a
//              call site using runtime frame introspection.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-12
//
// Change History:
// - 2026-10-12 v0.1.0: Initial implementation

package exception

import (
	"runtime"
	"strconv"
)

// Location identifies the point in the source where a fault was raised
type Location struct {
	File     string `json:"file"`
	Function string `json:"function"`
	Line     int    `json:"line"`
}

// unknownFunction is reported when the runtime cannot resolve a frame
const unknownFunction = "unknown"

// String returns "file:line in function"
func (l Location) String() string {
	return l.File + ":" + strconv.Itoa(l.Line) + " in " + l.Function
}

// IsZero reports whether no location information is present
func (l Location) IsZero() bool {
	return l.File == "" && l.Function == "" && l.Line == 0
}

// Here returns the location of its caller
func Here() Location {
	return Caller(1)
}

// Caller returns the location of the frame skip levels above its caller.
// Caller(0) is the function calling Caller, Caller(1) that function's caller.
func Caller(skip int) Location {
	var pcs [4]uintptr
	// runtime.Callers counts itself and Caller
	n := runtime.Callers(skip+2, pcs[:])
	if n == 0 {
		return Location{Function: unknownFunction}
	}

	frame, _ := runtime.CallersFrames(pcs[:n]).Next()
	loc := Location{
		File:     frame.File,
		Function: frame.Function,
		Line:     frame.Line,
	}
	if loc.Function == "" {
		loc.Function = unknownFunction
	}
	return loc
}
