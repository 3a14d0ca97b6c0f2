// Package service exposes the call-log workflow to the non-interactive
// surfaces: the CLI commands and the MCP server.
package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/reign/calleditor/internal/calllog"
	"github.com/reign/calleditor/internal/edit"
	"github.com/reign/calleditor/internal/permission"
	"github.com/reign/calleditor/internal/repository"
)

// ErrCallNotFound is returned when an id is not among the fetched entries.
var ErrCallNotFound = errors.New("call log entry not found")

// Service runs permission-checked operations over a repository.
type Service struct {
	Repo   *repository.Repository
	Grants permission.GrantStore
	Now    func() time.Time
}

// New builds a service over repo and the grant registry.
func New(repo *repository.Repository, grants permission.GrantStore) *Service {
	return &Service{Repo: repo, Grants: grants, Now: time.Now}
}

// CallDTO is a transport-friendly projection of an entry.
type CallDTO struct {
	ID              string `json:"id"`
	Number          string `json:"number,omitempty"`
	Name            string `json:"name,omitempty"`
	DisplayName     string `json:"displayName"`
	Type            string `json:"type"`
	TypeCode        int    `json:"typeCode"`
	Date            string `json:"date"`
	DateUnixMillis  int64  `json:"dateUnixMillis"`
	DurationSeconds int64  `json:"durationSeconds"`
	Duration        string `json:"duration"`
}

// ToDTO projects an entry, formatting times in loc.
func ToDTO(e calllog.Entry, loc *time.Location) CallDTO {
	dto := CallDTO{
		ID:              e.ID,
		DisplayName:     e.DisplayName(),
		Type:            e.Type.String(),
		TypeCode:        int(e.Type),
		Date:            e.Time(loc).Format(calllog.ListLayout),
		DateUnixMillis:  e.Date,
		DurationSeconds: e.Duration,
		Duration:        calllog.FormatDuration(e.Duration),
	}
	if e.Number != nil {
		dto.Number = *e.Number
	}
	if e.Name != nil {
		dto.Name = *e.Name
	}
	return dto
}

// Gate reads the current grants.
func (s *Service) Gate(ctx context.Context) (permission.Gate, error) {
	if s.Grants == nil {
		return permission.Gate{}, errors.New("grant store is not configured")
	}
	return permission.Check(ctx, s.Grants)
}

// Entries fetches the most recent entries under the stored grants.
func (s *Service) Entries(ctx context.Context) ([]calllog.Entry, error) {
	gate, err := s.Gate(ctx)
	if err != nil {
		return nil, err
	}
	return s.Repo.Fetch(ctx, gate)
}

// ListCalls returns the most recent entries as DTOs, newest first.
func (s *Service) ListCalls(ctx context.Context) ([]CallDTO, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CallDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, ToDTO(e, s.Repo.Location()))
	}
	return out, nil
}

// GetCall finds one of the most recent entries by id.
func (s *Service) GetCall(ctx context.Context, id string) (CallDTO, error) {
	entry, err := s.find(ctx, id)
	if err != nil {
		return CallDTO{}, err
	}
	return ToDTO(*entry, s.Repo.Location()), nil
}

func (s *Service) find(ctx context.Context, id string) (*calllog.Entry, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].ID == id {
			return &entries[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrCallNotFound, id)
}

// AddCallOptions captures a submission. Empty fields keep the defaults of
// the session: the base entry's values when BaseID is set, otherwise now,
// Incoming and a zero duration.
type AddCallOptions struct {
	BaseID   string
	Name     string
	Number   string
	Date     string
	Time     string
	Duration string
	Type     string
}

// AddCall validates the submission, inserts it as a new record and
// returns the re-fetched list. Unlike the TUI, a missing write grant and a
// malformed duration are reported instead of swallowed.
func (s *Service) AddCall(ctx context.Context, opts AddCallOptions) ([]CallDTO, error) {
	gate, err := s.Gate(ctx)
	if err != nil {
		return nil, err
	}
	if !gate.HasWrite {
		return nil, &calllog.PermissionError{Capability: calllog.WriteCallLog}
	}

	var base *calllog.Entry
	if opts.BaseID != "" {
		if base, err = s.find(ctx, opts.BaseID); err != nil {
			return nil, err
		}
	}
	state := edit.New(base, s.Now(), s.Repo.Location())

	if opts.Type != "" {
		t, err := calllog.ParseCallType(opts.Type)
		if err != nil {
			return nil, &calllog.ValidationError{Field: "type", Value: opts.Type, Err: err}
		}
		if !slices.Contains(calllog.EditableTypes, t) {
			return nil, &calllog.ValidationError{Field: "type", Value: opts.Type, Err: errors.New("only incoming, outgoing and missed calls can be written")}
		}
		state.SetCallType(t)
	}
	if opts.Name != "" {
		state.Name = opts.Name
	}
	if opts.Number != "" {
		state.Number = opts.Number
	}
	if opts.Date != "" {
		state.Date = strings.TrimSpace(opts.Date)
	}
	if opts.Time != "" {
		state.Time = strings.TrimSpace(opts.Time)
	}
	if opts.Duration != "" {
		state.SetDurationText(strings.TrimSpace(opts.Duration))
		if !state.DurationValid() {
			return nil, &calllog.ValidationError{Field: "duration", Value: opts.Duration, Err: errors.New("use HH:mm:ss")}
		}
	}

	if err := s.Repo.Write(ctx, gate, state.Payload()); err != nil {
		return nil, err
	}
	return s.ListCalls(ctx)
}
