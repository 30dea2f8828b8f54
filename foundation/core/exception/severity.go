// File: severity.go
// Title: Fault Severity
// Description: Severity levels used to classify faults for logging and
//              alerting, derived from the fault category.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-13
// Modified: 2026-10-13
//
// Change History:
// - 2026-10-13 v0.1.0: Initial implementation

package exception

import "strings"

// Severity represents the impact of a fault
type Severity int

const (
	// SeverityLow indicates a fault the caller can ignore or retry
	SeverityLow Severity = iota

	// SeverityMedium indicates a fault that aborts the current operation
	SeverityMedium

	// SeverityHigh indicates a fault that leaves world state inconsistent,
	// e.g. a missing or malformed component
	SeverityHigh

	// SeverityCritical indicates a fault that makes the world unusable
	SeverityCritical
)

// String returns the string representation of the severity
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true for high and critical faults
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// ParseSeverity parses a severity name, defaulting to medium
func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return SeverityLow
	case "high":
		return SeverityHigh
	case "critical":
		return SeverityCritical
	default:
		return SeverityMedium
	}
}

// SeverityFor returns the severity associated with a category
func SeverityFor(category Category) Severity {
	switch category {
	case CategoryComponent:
		return SeverityHigh
	default:
		return SeverityMedium
	}
}

// SeverityOf returns the severity of the fault carried by err.
// Errors without a fault are treated as medium.
func SeverityOf(err error) Severity {
	if f, ok := As(err); ok {
		return SeverityFor(f.Category())
	}
	return SeverityMedium
}
