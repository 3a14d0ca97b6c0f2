package app

import (
	"fmt"
	"os"
	"testing"

	"github.com/reign/calleditor/internal/db"
	"github.com/reign/calleditor/internal/repository"
	"github.com/rs/zerolog"

	tea "github.com/charmbracelet/bubbletea"
)

// TestLiveTUIFlow runs the model against the real call-log database and
// prints the rendered views. Read-only: no prompt answers or writes.
// Skipped if the database doesn't exist.
func TestLiveTUIFlow(t *testing.T) {
	path := db.DefaultDBPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skip("no call-log database at", path)
	}

	store, err := db.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	m := New(repository.New(store), store, zerolog.Nop())

	// Simulate terminal size
	m, _ = applyUpdate(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	fmt.Println("=== Initial View ===")
	fmt.Println(m.View())

	m = settle(t, m, m.Init())
	fmt.Printf("Gate: read=%v write=%v prompting=%v\n", m.gate.HasRead, m.gate.HasWrite, m.prompting)

	if m.gate.HasRead {
		m.prompting = false
		fmt.Printf("Loaded %d entries (error=%q)\n", len(m.entries), m.errorMessage)
		if m.loading {
			t.Error("loading should be cleared after the fetch settles")
		}
	}

	fmt.Println("\n=== Final View ===")
	fmt.Println(m.View())
}
