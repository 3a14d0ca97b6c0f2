// Package permission tracks the read/write call-log capabilities that gate
// every data operation.
package permission

import (
	"context"
	"fmt"

	"github.com/reign/calleditor/internal/calllog"
)

// GrantStore records capability grants, playing the platform permission
// registry. *db.Store and *daemon.Client implement it.
type GrantStore interface {
	Grants(ctx context.Context) (map[calllog.Capability]bool, error)
	SetGrants(ctx context.Context, grants map[calllog.Capability]bool) error
}

// ReadChange describes how read access moved on an update.
type ReadChange int

const (
	// ReadMissing means read is not granted after the update.
	ReadMissing ReadChange = iota
	// ReadGained means read went from false to true.
	ReadGained
	// ReadHeld means read was and still is granted.
	ReadHeld
)

// Gate holds the two capability flags.
type Gate struct {
	HasRead  bool
	HasWrite bool
}

// FromGrants builds a gate from a grant map; absent capabilities are denied.
func FromGrants(grants map[calllog.Capability]bool) Gate {
	return Gate{
		HasRead:  grants[calllog.ReadCallLog],
		HasWrite: grants[calllog.WriteCallLog],
	}
}

// NeedsRequest reports whether either capability is missing.
func (g Gate) NeedsRequest() bool {
	return !g.HasRead || !g.HasWrite
}

// Update replaces both flags at once.
func (g *Gate) Update(read, write bool) ReadChange {
	wasRead := g.HasRead
	g.HasRead = read
	g.HasWrite = write

	switch {
	case !read:
		return ReadMissing
	case !wasRead:
		return ReadGained
	default:
		return ReadHeld
	}
}

// Apply merges a request result into the gate. A capability missing from
// the result keeps its previous value.
func (g *Gate) Apply(result map[calllog.Capability]bool) ReadChange {
	read, ok := result[calllog.ReadCallLog]
	if !ok {
		read = g.HasRead
	}
	write, ok := result[calllog.WriteCallLog]
	if !ok {
		write = g.HasWrite
	}
	return g.Update(read, write)
}

// Grants returns the gate as a grant map covering both capabilities.
func (g Gate) Grants() map[calllog.Capability]bool {
	return map[calllog.Capability]bool{
		calllog.ReadCallLog:  g.HasRead,
		calllog.WriteCallLog: g.HasWrite,
	}
}

// Check reads the current gate from the store.
func Check(ctx context.Context, store GrantStore) (Gate, error) {
	grants, err := store.Grants(ctx)
	if err != nil {
		return Gate{}, fmt.Errorf("read grants: %w", err)
	}
	return FromGrants(grants), nil
}

// Answer records the outcome of one request for both capabilities and
// returns what was recorded.
func Answer(ctx context.Context, store GrantStore, read, write bool) (map[calllog.Capability]bool, error) {
	result := map[calllog.Capability]bool{
		calllog.ReadCallLog:  read,
		calllog.WriteCallLog: write,
	}
	if err := store.SetGrants(ctx, result); err != nil {
		return nil, fmt.Errorf("record grants: %w", err)
	}
	return result, nil
}
