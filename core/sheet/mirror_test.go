package sheet_test

import (
	"testing"

	"github.com/ecoone/campus/core/sheet"
)

func TestMirror_LoadAll(t *testing.T) {
	_, store, mirror, _, _ := setup(t)

	seed := [][]string{
		{"alice", "secret", "Student", "a@x.com", "555"},
		{"bob", "hunter2", "Librarian", "b@x.com", "556"},
	}
	for _, row := range seed {
		if err := store.AppendRow("users", row); err != nil {
			t.Fatalf("AppendRow() failed: %v", err)
		}
	}

	if err := mirror.LoadAll(); err != nil {
		t.Fatalf("LoadAll() failed: %v", err)
	}

	rows, err := mirror.Snapshot("users")
	if err != nil {
		t.Fatalf("Snapshot() failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Snapshot() returned %d rows, want 2", len(rows))
	}
	if got := rows[0].Get("username"); got != "alice" {
		t.Errorf("rows[0].username = %q, want %q", got, "alice")
	}
	if got := rows[1].Get("password"); got != "hunter2" {
		t.Errorf("rows[1].password = %q, want %q", got, "hunter2")
	}

	// empty tables load as empty snapshots, no error
	payments, err := mirror.Snapshot("payments")
	if err != nil {
		t.Fatalf("Snapshot(payments) failed: %v", err)
	}
	if len(payments) != 0 {
		t.Errorf("Snapshot(payments) = %v, want empty", payments)
	}
}

func TestMirror_RateLimitFallback(t *testing.T) {
	_, store, mirror, gw, logger := setup(t)

	if err := gw.AppendRow("payments", []string{"alice", "Tuition", "1200", "2024-01-05", "Pending"}); err != nil {
		t.Fatalf("AppendRow() failed: %v", err)
	}

	store.FailReadsWith("payments", sheet.ErrRateLimited)
	if err := mirror.LoadAll(); err != nil {
		t.Fatalf("LoadAll() should swallow rate limit errors, got: %v", err)
	}

	rows, _ := mirror.Snapshot("payments")
	if len(rows) != 0 {
		t.Errorf("rate-limited table should mirror as empty, got %d rows", len(rows))
	}
	if len(logger.warnings) == 0 {
		t.Error("expected a warning for the rate-limited table")
	}

	// other tables keep loading
	if _, err := mirror.Snapshot("users"); err != nil {
		t.Errorf("Snapshot(users) failed: %v", err)
	}

	// a healed table refreshes back to its real contents
	store.FailReadsWith("payments", nil)
	if err := mirror.Refresh("payments"); err != nil {
		t.Fatalf("Refresh() failed: %v", err)
	}
	rows, _ = mirror.Snapshot("payments")
	if len(rows) != 1 {
		t.Errorf("healed table should mirror 1 row, got %d", len(rows))
	}
}

func TestMirror_ShortRowsArePadded(t *testing.T) {
	_, store, mirror, _, _ := setup(t)

	// a hand-edited row missing trailing cells
	if err := store.AppendRow("students", []string{"alice", "Alice A"}); err != nil {
		t.Fatalf("AppendRow() failed: %v", err)
	}
	if err := mirror.Refresh("students"); err != nil {
		t.Fatalf("Refresh() failed: %v", err)
	}

	rows, _ := mirror.Snapshot("students")
	if len(rows) != 1 {
		t.Fatalf("want 1 row, got %d", len(rows))
	}
	if got := rows[0].Get("hostel_room"); got != "" {
		t.Errorf("missing cell should read as empty, got %q", got)
	}
	if got := rows[0].Get("name"); got != "Alice A" {
		t.Errorf("name = %q, want %q", got, "Alice A")
	}
}
