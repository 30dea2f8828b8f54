// ============================================================================
// ecsfault - Fault Reporting for the mDW ECS Toolkit
// ============================================================================
//
// Package:     faultviewer
// Description: Message types for async operations in FaultViewer
// Author:      Mike Stoffels
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package faultviewer

import (
	"time"

	"github.com/msto63/ecsfault/internal/journal"
)

// recordsLoadedMsg is sent when records are loaded from the journal
type recordsLoadedMsg struct {
	records []*journal.Record
	err     error
}

// statsLoadedMsg is sent when journal stats are loaded
type statsLoadedMsg struct {
	stats *journal.Stats
	err   error
}

// tickMsg is used for periodic updates
type tickMsg time.Time
