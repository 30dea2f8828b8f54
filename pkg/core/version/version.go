// ============================================================================
// ecsfault - Fault Reporting for the mDW ECS Toolkit
// ============================================================================
//
// Package:     version
// Description: Central version and build information
// Author:      Mike Stoffels
// Created:     2026-10-13
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Version constants for the toolkit components
const (
	Toolkit = "0.1.0"

	Exception = "0.1.0"
	Journal   = "0.1.0"
	Feed      = "0.1.0"
)

// Build information, set via -ldflags at build time
var (
	GitCommit = "development"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "exception":
		return Exception
	case "journal":
		return Journal
	case "feed":
		return Feed
	default:
		return Toolkit
	}
}

// Info returns a multi-line description of the build
func Info(name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s v%s\n", name, Toolkit)
	fmt.Fprintf(&b, "  Git Commit: %s\n", GitCommit)
	fmt.Fprintf(&b, "  Build Date: %s\n", BuildDate)
	fmt.Fprintf(&b, "  Go Version: %s\n", runtime.Version())
	fmt.Fprintf(&b, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	return b.String()
}
