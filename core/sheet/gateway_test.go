package sheet_test

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/ecoone/campus/core/sheet"
)

func TestGateway_AppendRow(t *testing.T) {
	_, _, mirror, gw, _ := setup(t)

	if err := gw.AppendRow("users", []string{"alice", "secret", "Student", "a@x.com", "555"}); err != nil {
		t.Fatalf("AppendRow() failed: %v", err)
	}
	if err := gw.AppendRow("users", []string{"bob", "hunter2", "Faculty", "b@x.com", "556"}); err != nil {
		t.Fatalf("AppendRow() failed: %v", err)
	}

	// visible at the last mirror position without an explicit refresh
	rows, _ := mirror.Snapshot("users")
	if len(rows) != 2 {
		t.Fatalf("mirror has %d rows, want 2", len(rows))
	}
	last := rows[len(rows)-1]
	if last.Get("username") != "bob" || last.Get("role") != "Faculty" {
		t.Errorf("last row = %v, want bob/Faculty", last)
	}

	// width must match the schema exactly
	err := gw.AppendRow("users", []string{"too", "short"})
	if errors.Cause(err) != sheet.ErrRowWidth {
		t.Errorf("AppendRow() error = %v, want ErrRowWidth", err)
	}
}

func TestGateway_UpdateCell(t *testing.T) {
	_, _, mirror, gw, _ := setup(t)

	_ = gw.AppendRow("requests", []string{"bob", "Student", "Library", "Dune", "Pending", "2024-01-05 10:00:00"})
	_ = gw.AppendRow("requests", []string{"carol", "Student", "Library", "Hamlet", "Pending", "2024-01-05 10:01:00"})

	if err := gw.UpdateCell("requests", 0, "status", "Approved"); err != nil {
		t.Fatalf("UpdateCell() failed: %v", err)
	}

	rows, _ := mirror.Snapshot("requests")
	if got := rows[0].Get("status"); got != "Approved" {
		t.Errorf("rows[0].status = %q, want %q", got, "Approved")
	}
	// every other cell in the row is untouched
	if rows[0].Get("username") != "bob" || rows[0].Get("details") != "Dune" {
		t.Errorf("sibling cells changed: %v", rows[0])
	}
	// the other row is untouched
	if got := rows[1].Get("status"); got != "Pending" {
		t.Errorf("rows[1].status = %q, want %q", got, "Pending")
	}

	if err := gw.UpdateCell("requests", 0, "nope", "x"); errors.Cause(err) != sheet.ErrUnknownColumn {
		t.Errorf("UpdateCell() error = %v, want ErrUnknownColumn", err)
	}
	if err := gw.UpdateCell("requests", -1, "status", "x"); errors.Cause(err) != sheet.ErrBadPosition {
		t.Errorf("UpdateCell() error = %v, want ErrBadPosition", err)
	}
}

func TestGateway_DeleteRow(t *testing.T) {
	_, _, mirror, gw, _ := setup(t)

	names := []string{"alice", "bob", "carol"}
	for _, n := range names {
		_ = gw.AppendRow("users", []string{n, "pwd", "Student", n + "@x.com", "555"})
	}

	if err := gw.DeleteRow("users", 1); err != nil {
		t.Fatalf("DeleteRow() failed: %v", err)
	}

	rows, _ := mirror.Snapshot("users")
	if len(rows) != 2 {
		t.Fatalf("mirror has %d rows, want 2", len(rows))
	}
	// rows after the deleted position shift down by one
	if rows[0].Get("username") != "alice" || rows[1].Get("username") != "carol" {
		t.Errorf("rows after delete = [%s %s], want [alice carol]",
			rows[0].Get("username"), rows[1].Get("username"))
	}
}
