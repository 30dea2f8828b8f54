// ============================================================================
// ecsfault - Fault Reporting for the mDW ECS Toolkit
// ============================================================================
//
// Package:     journal
// Description: Persistent journal of handled faults
// Author:      Mike Stoffels
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package journal

import (
	"time"

	"github.com/google/uuid"

	"github.com/msto63/ecsfault/foundation/core/exception"
)

// Record is a handled fault as stored in the journal
type Record struct {
	ID         string    `json:"id"`
	Seq        int64     `json:"seq"` // insertion order, assigned by the store
	Timestamp  time.Time `json:"timestamp"`
	Source     string    `json:"source"`
	Category   string    `json:"category"`
	Severity   string    `json:"severity"`
	Message    string    `json:"message"`
	File       string    `json:"file"`
	Function   string    `json:"function"`
	Line       int       `json:"line"`
	Diagnostic string    `json:"diagnostic"`
}

// NewRecord copies the fields of f into a new record for source
func NewRecord(source string, f exception.Fault) *Record {
	loc := f.Location()
	return &Record{
		ID:         uuid.NewString(),
		Timestamp:  time.Now().UTC(),
		Source:     source,
		Category:   f.Category().String(),
		Severity:   exception.SeverityFor(f.Category()).String(),
		Message:    f.Message(),
		File:       loc.File,
		Function:   loc.Function,
		Line:       loc.Line,
		Diagnostic: f.Describe(),
	}
}

// Fault rebuilds the fault value described by the record
func (r *Record) Fault() exception.Fault {
	if exception.Category(r.Category) == exception.CategoryComponent {
		return exception.NewComponent(r.Message, r.File, r.Function, r.Line)
	}
	return exception.NewAt(r.Message, exception.Category(r.Category), r.File, r.Function, r.Line)
}

// Location returns the raise site stored in the record
func (r *Record) Location() exception.Location {
	return exception.Location{File: r.File, Function: r.Function, Line: r.Line}
}

// Filter defines criteria for querying records
type Filter struct {
	Source   string
	Category string
	Since    time.Time
	Until    time.Time
	Contains string // substring of the message, compared after Unicode lower-casing
	AfterSeq int64  // only records inserted after this sequence number
	Limit    int
	Offset   int
}

// Stats summarises the journal contents
type Stats struct {
	Total      int64            `json:"total"`
	ByCategory map[string]int64 `json:"by_category"`
	BySource   map[string]int64 `json:"by_source"`
	Last       time.Time        `json:"last,omitempty"`
	LastSeq    int64            `json:"last_seq"`
}
