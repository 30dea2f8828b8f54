// Package exception provides the fault values raised throughout the ECS toolkit.
//
// Package: exception
// Title: ECS Exception Reporting
// Description: Immutable fault values that carry a message, a category tag and
//              the source location (file, function, line) of the point where
//              the fault was detected. Faults are ordinary Go errors: they are
//              returned up the call chain, may be wrapped, and are recovered
//              unchanged by a top-level handler.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-12 v0.1.0: Initial implementation with base and component faults
// - 2026-10-16 v0.1.0: Throw/Catch for unwinding call chains
//
// Features:
// - Call-site location capture for every fault kind
// - Deterministic diagnostic text, assembled once at construction
// - Component faults with a fixed category
// - Category based severity for logging and alerting
//
// Usage:
//   import "github.com/msto63/ecsfault/foundation/core/exception"
//
//   // Raise a component fault; file, function and line of this call are recorded
//   if !ok {
//     return exception.Raise(exception.Component, "missing Transform")
//   }
//
//   // At the top-level handler
//   if f, ok := exception.As(err); ok {
//     fmt.Println(f.Describe())
//   }
package exception
