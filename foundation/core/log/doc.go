// Package log provides structured logging for the ECS toolkit.
//
// Package: log
// Title: Structured Logging
// Description: A small structured logger with levels, persistent fields and
//              JSON, text and console formats. Faults from the exception
//              package are logged with their category and source location
//              as individual fields.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-13
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-13 v0.1.0: Initial implementation
// - 2026-10-15 v0.1.0: LogFault with severity based levels
//
// Usage:
//   import ecslog "github.com/msto63/ecsfault/foundation/core/log"
//
//   logger := ecslog.NewWithConfig(ecslog.Config{
//     Level:  ecslog.LevelInfo,
//     Format: ecslog.FormatText,
//     Name:   "world",
//   })
//
//   logger.Info("world started", ecslog.Int("entities", 128))
//
//   // Log a fault with category, file, function and line as fields
//   logger.LogFault(err)
package log
