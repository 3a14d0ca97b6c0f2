// Package repository fetches and writes call-log entries against a
// provider, gated by the caller's permissions.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/reign/calleditor/internal/calllog"
	"github.com/reign/calleditor/internal/permission"
	"github.com/rs/zerolog"
)

// DefaultLimit is the number of most recent entries fetched.
const DefaultLimit = 50

// Provider is the call-log store. *db.Store and *daemon.Client implement it.
type Provider interface {
	RecentCalls(ctx context.Context, limit int) ([]calllog.Entry, error)
	InsertCall(ctx context.Context, v calllog.Values) (string, error)
}

// Repository is the fetch/write workflow over a Provider.
type Repository struct {
	provider Provider
	limit    int
	loc      *time.Location
	log      zerolog.Logger
	metrics  *Metrics
}

// Option configures a Repository.
type Option func(*Repository)

// WithLimit sets the fetch limit.
func WithLimit(limit int) Option {
	return func(r *Repository) {
		if limit > 0 {
			r.limit = limit
		}
	}
}

// WithLocation sets the zone used to parse edit date/time strings.
func WithLocation(loc *time.Location) Option {
	return func(r *Repository) {
		if loc != nil {
			r.loc = loc
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Repository) { r.log = log }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *Metrics) Option {
	return func(r *Repository) { r.metrics = m }
}

// New creates a Repository with a 50-entry limit in the local zone.
func New(p Provider, opts ...Option) *Repository {
	r := &Repository{
		provider: p,
		limit:    DefaultLimit,
		loc:      time.Local,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With().Str("component", "repository").Logger()
	return r
}

// Limit returns the fetch limit.
func (r *Repository) Limit() int { return r.limit }

// Location returns the zone used for date/time strings.
func (r *Repository) Location() *time.Location { return r.loc }

// Fetch returns the most recent entries, newest first. Without read access
// it fails with *calllog.PermissionError before touching the provider.
// Store failures come back as *calllog.FetchError with no entries.
func (r *Repository) Fetch(ctx context.Context, gate permission.Gate) ([]calllog.Entry, error) {
	if !gate.HasRead {
		r.log.Warn().Msg("read call log permission not granted, cannot fetch")
		r.metrics.fetch(resultDenied, 0)
		return nil, &calllog.PermissionError{Capability: calllog.ReadCallLog}
	}

	entries, err := r.provider.RecentCalls(ctx, r.limit)
	if err != nil {
		r.log.Error().Err(err).Int("limit", r.limit).Msg("fetch call logs")
		r.metrics.fetch(resultError, 0)
		return nil, &calllog.FetchError{Err: err}
	}
	if len(entries) > r.limit {
		entries = entries[:r.limit]
	}

	r.log.Debug().Int("limit", r.limit).Int("count", len(entries)).Msg("fetched call logs")
	r.metrics.fetch(resultOK, len(entries))
	return entries, nil
}

// Write inserts the edit as a new record. The date and time strings are
// parsed first; a *calllog.ValidationError aborts before any write.
// Insert failures, including a missing write grant, are logged as
// *calllog.WriteError and swallowed. Callers re-fetch afterwards either way.
func (r *Repository) Write(ctx context.Context, gate permission.Gate, p calllog.EditPayload) error {
	values, err := p.Values(r.loc)
	if err != nil {
		r.log.Error().Err(err).Str("id", p.ID).Msg("invalid date/time format")
		r.metrics.write(resultInvalid)
		return err
	}

	if !gate.HasWrite {
		werr := &calllog.WriteError{Err: &calllog.PermissionError{Capability: calllog.WriteCallLog}}
		r.log.Error().Err(werr).Str("id", p.ID).Msg("failed to update call log")
		r.metrics.write(resultDenied)
		return nil
	}

	id, err := r.provider.InsertCall(ctx, values)
	if err != nil {
		werr := &calllog.WriteError{Err: err}
		r.log.Error().Err(werr).Str("id", p.ID).Msg("failed to update call log")
		r.metrics.write(resultError)
		return nil
	}

	r.log.Info().
		Str("id", p.ID).
		Str("inserted", id).
		Int64("date", values.Date).
		Stringer("type", values.Type).
		Msg("inserted call log row")
	r.metrics.write(resultOK)
	return nil
}

// IsPermission reports whether err is a permission refusal.
func IsPermission(err error) bool {
	var perr *calllog.PermissionError
	return errors.As(err, &perr)
}
