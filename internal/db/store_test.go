package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/reign/calleditor/internal/calllog"

	_ "modernc.org/sqlite"
)

// createTestStore creates an in-memory SQLite database with the call-log schema.
func createTestStore(t *testing.T) *Store {
	t.Helper()

	rawDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	// every pooled connection would get its own empty :memory: database
	rawDB.SetMaxOpenConns(1)
	t.Cleanup(func() { rawDB.Close() })

	store := &Store{db: rawDB}
	if err := store.migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store
}

func TestRecentCallsOrderAndLimit(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	for i, date := range []int64{3000, 1000, 5000, 2000, 4000} {
		_, err := store.InsertCall(ctx, calllog.Values{
			Number:   "555-000" + string(rune('0'+i)),
			Date:     date,
			Duration: 10,
			New:      1,
			Type:     calllog.Incoming,
		})
		if err != nil {
			t.Fatalf("InsertCall: %v", err)
		}
	}

	entries, err := store.RecentCalls(ctx, 3)
	if err != nil {
		t.Fatalf("RecentCalls: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	want := []int64{5000, 4000, 3000}
	for i, e := range entries {
		if e.Date != want[i] {
			t.Errorf("entries[%d].Date = %d, want %d", i, e.Date, want[i])
		}
	}
}

func TestRecentCallsNullableColumns(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	if _, err := store.db.Exec(`INSERT INTO calls (number, date, duration, type, name)
		VALUES (NULL, 100, 0, 3, NULL)`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := store.db.Exec(`INSERT INTO calls (number, date, duration, type, name)
		VALUES ('', 50, 12, 1, '')`); err != nil {
		t.Fatalf("insert: %v", err)
	}

	entries, err := store.RecentCalls(ctx, 50)
	if err != nil {
		t.Fatalf("RecentCalls: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	unknown := entries[0]
	if unknown.Number != nil {
		t.Errorf("Number = %q, want nil", *unknown.Number)
	}
	if unknown.Name != nil {
		t.Errorf("Name = %q, want nil", *unknown.Name)
	}
	if unknown.Type != calllog.Missed {
		t.Errorf("Type = %v, want Missed", unknown.Type)
	}

	empty := entries[1]
	if empty.Number == nil || *empty.Number != "" {
		t.Errorf("Number = %v, want empty string", empty.Number)
	}
	if empty.Name == nil || *empty.Name != "" {
		t.Errorf("Name = %v, want empty string", empty.Name)
	}
}

func TestRecentCallsEmpty(t *testing.T) {
	store := createTestStore(t)

	entries, err := store.RecentCalls(context.Background(), 50)
	if err != nil {
		t.Fatalf("RecentCalls: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries, want 0", len(entries))
	}
}

func TestInsertCallAlwaysAddsRow(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	v := calllog.Values{Number: "555-0100", Date: 1000, Duration: 60, New: 1, Type: calllog.Outgoing, CachedName: "Jane"}
	id1, err := store.InsertCall(ctx, v)
	if err != nil {
		t.Fatalf("InsertCall: %v", err)
	}
	id2, err := store.InsertCall(ctx, v)
	if err != nil {
		t.Fatalf("InsertCall: %v", err)
	}
	if id1 == id2 {
		t.Errorf("ids should differ, both %q", id1)
	}

	var count, isNew int
	store.db.QueryRow(`SELECT COUNT(*), MAX(new) FROM calls`).Scan(&count, &isNew)
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	if isNew != 1 {
		t.Errorf("new = %d, want 1", isNew)
	}

	entries, _ := store.RecentCalls(ctx, 1)
	if entries[0].Name == nil || *entries[0].Name != "Jane" {
		t.Errorf("Name = %v, want Jane", entries[0].Name)
	}
}

func TestGrantsRoundTrip(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	grants, err := store.Grants(ctx)
	if err != nil {
		t.Fatalf("Grants: %v", err)
	}
	if len(grants) != 0 {
		t.Errorf("fresh store has %d grants, want 0", len(grants))
	}

	err = store.SetGrants(ctx, map[calllog.Capability]bool{
		calllog.ReadCallLog:  true,
		calllog.WriteCallLog: false,
	})
	if err != nil {
		t.Fatalf("SetGrants: %v", err)
	}
	err = store.SetGrants(ctx, map[calllog.Capability]bool{calllog.WriteCallLog: true})
	if err != nil {
		t.Fatalf("SetGrants: %v", err)
	}

	grants, err = store.Grants(ctx)
	if err != nil {
		t.Fatalf("Grants: %v", err)
	}
	if !grants[calllog.ReadCallLog] || !grants[calllog.WriteCallLog] {
		t.Errorf("grants = %v, want both true", grants)
	}
}

func TestOpenCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "calllog.sqlite")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if _, err := store.InsertCall(context.Background(), calllog.Values{Date: 1, Type: calllog.Incoming, New: 1}); err != nil {
		t.Fatalf("InsertCall: %v", err)
	}
}
