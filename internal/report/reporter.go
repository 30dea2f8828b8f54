// ============================================================================
// ecsfault - Fault Reporting for the mDW ECS Toolkit
// ============================================================================
//
// Package:     report
// Description: Top-level fault handler: log, journal and publish
// Author:      Mike Stoffels
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package report

import (
	"context"
	"fmt"

	"github.com/msto63/ecsfault/foundation/core/exception"
	"github.com/msto63/ecsfault/foundation/core/log"
	"github.com/msto63/ecsfault/internal/journal"
)

// Publisher receives every handled fault record
type Publisher interface {
	Publish(rec *journal.Record)
}

// Options configures a Reporter
type Options struct {
	Logger    *log.Logger
	Store     journal.Store
	Publisher Publisher
	Source    string
}

// Reporter is the handler at the top of a fault's propagation path
type Reporter struct {
	logger    *log.Logger
	store     journal.Store
	publisher Publisher
	source    string
}

// New creates a new Reporter. Store and Publisher are optional.
func New(opts Options) *Reporter {
	logger := opts.Logger
	if logger == nil {
		logger = log.GetDefault()
	}
	source := opts.Source
	if source == "" {
		source = "ecsfault"
	}
	return &Reporter{
		logger:    logger.WithName("report"),
		store:     opts.Store,
		publisher: opts.Publisher,
		source:    source,
	}
}

// Source returns the source name stamped on records
func (r *Reporter) Source() string {
	return r.source
}

// Handle reports err. Errors that carry no fault are wrapped as a generic
// fault located at the caller of Handle.
func (r *Reporter) Handle(ctx context.Context, err error) (*journal.Record, error) {
	if err == nil {
		return nil, nil
	}
	return r.handle(ctx, err, exception.Caller(1))
}

// Guard runs fn and reports the fault it returns or throws
func (r *Reporter) Guard(ctx context.Context, fn func() error) (*journal.Record, error) {
	err := exception.Catch(fn)
	if err == nil {
		return nil, nil
	}
	return r.handle(ctx, err, exception.Caller(1))
}

func (r *Reporter) handle(ctx context.Context, err error, at exception.Location) (*journal.Record, error) {
	f, ok := exception.As(err)
	if !ok {
		f = exception.Generic(err.Error(), at)
		err = f
	}

	r.logger.LogFault(err, log.String("source", r.source))

	rec := journal.NewRecord(r.source, f)
	if r.store != nil {
		if storeErr := r.store.Record(ctx, rec); storeErr != nil {
			r.logger.ErrorWithErr("failed to journal fault", storeErr, log.String("fault_id", rec.ID))
			return rec, fmt.Errorf("failed to journal fault: %w", storeErr)
		}
	}

	if r.publisher != nil {
		r.publisher.Publish(rec)
	}

	return rec, nil
}
