// File: exception.go
// Title: Exception Value
// Description: Implements the immutable base fault carrying a message, a
//              category tag and the source location of the raise site. The
//              diagnostic text is derived from these five fields once, at
//              construction, and is returned unchanged by every later call.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-12 v0.1.0: Initial implementation
// - 2026-10-14 v0.1.0: JSON representation for structured logging

package exception

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Category tags the logical kind of a fault
type Category string

const (
	// CategoryNone is used by generic faults
	CategoryNone Category = ""

	// CategoryComponent is the fixed category of component faults
	CategoryComponent Category = "Component"
)

// String returns the category tag
func (c Category) String() string {
	return string(c)
}

// Fault is implemented by every exception kind
type Fault interface {
	error
	Message() string
	Category() Category
	Location() Location
	Describe() string
}

// Exception is the base fault value. All fields are fixed at construction.
type Exception struct {
	message    string
	category   Category
	file       string
	function   string
	line       int
	diagnostic string
}

// New creates a generic fault located at the caller of New
func New(message string) *Exception {
	return newException(message, CategoryNone, Caller(1))
}

// NewCategory creates a fault with the given category located at the caller
func NewCategory(category Category, message string) *Exception {
	return newException(message, category, Caller(1))
}

// NewAt creates a fault with an explicit source location.
// No input is validated; empty strings and any line number are accepted.
func NewAt(message string, category Category, file, function string, line int) *Exception {
	return newException(message, category, Location{File: file, Function: function, Line: line})
}

func newException(message string, category Category, loc Location) *Exception {
	e := Exception{
		message:  message,
		category: category,
		file:     loc.File,
		function: loc.Function,
		line:     loc.Line,
	}
	e.diagnostic = describe(e.category, e.message, loc)
	return &e
}

// describe assembles "[category] message (file:line in function)"
func describe(category Category, message string, loc Location) string {
	var b strings.Builder
	b.Grow(len(category) + len(message) + len(loc.File) + len(loc.Function) + 24)
	b.WriteByte('[')
	b.WriteString(string(category))
	b.WriteString("] ")
	b.WriteString(message)
	b.WriteString(" (")
	b.WriteString(loc.File)
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(loc.Line))
	b.WriteString(" in ")
	b.WriteString(loc.Function)
	b.WriteByte(')')
	return b.String()
}

// Message returns the fault message
func (e *Exception) Message() string {
	return e.message
}

// Category returns the category tag
func (e *Exception) Category() Category {
	return e.category
}

// File returns the source file of the raise site
func (e *Exception) File() string {
	return e.file
}

// Function returns the fully qualified function of the raise site
func (e *Exception) Function() string {
	return e.function
}

// Line returns the source line of the raise site
func (e *Exception) Line() int {
	return e.line
}

// Location returns file, function and line as one value
func (e *Exception) Location() Location {
	return Location{File: e.file, Function: e.function, Line: e.line}
}

// Describe returns the diagnostic text
func (e *Exception) Describe() string {
	return e.diagnostic
}

// Error implements the error interface with the diagnostic text
func (e *Exception) Error() string {
	return e.diagnostic
}

// String returns the diagnostic text
func (e *Exception) String() string {
	return e.diagnostic
}

// MarshalJSON implements json.Marshaler for structured logging
func (e *Exception) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Message    string   `json:"message"`
		Category   Category `json:"category"`
		File       string   `json:"file"`
		Function   string   `json:"function"`
		Line       int      `json:"line"`
		Diagnostic string   `json:"diagnostic"`
	}{
		Message:    e.message,
		Category:   e.category,
		File:       e.file,
		Function:   e.function,
		Line:       e.line,
		Diagnostic: e.diagnostic,
	})
}
