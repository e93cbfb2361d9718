package student_test

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/ecoone/campus/core/sheet"
	"github.com/ecoone/campus/core/student"
	testutil "github.com/ecoone/campus/tests"
)

func TestDecodeEncodeBooks(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want []string
	}{
		{name: "empty", cell: "", want: nil},
		{name: "blank", cell: "  ", want: nil},
		{name: "single", cell: "Dune", want: []string{"Dune"}},
		{name: "multiple", cell: "Dune,Hamlet", want: []string{"Dune", "Hamlet"}},
		{name: "leading comma", cell: ",Dune", want: []string{"Dune"}},
		{name: "spaces around titles", cell: "Dune , Hamlet", want: []string{"Dune", "Hamlet"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := student.DecodeBooks(tt.cell)
			if len(got) != len(tt.want) {
				t.Fatalf("DecodeBooks(%q) = %v, want %v", tt.cell, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("DecodeBooks(%q) = %v, want %v", tt.cell, got, tt.want)
				}
			}
		})
	}

	if got := student.EncodeBooks([]string{"Dune", "Hamlet"}); got != "Dune,Hamlet" {
		t.Errorf("EncodeBooks() = %q, want %q", got, "Dune,Hamlet")
	}
	if got := student.EncodeBooks(nil); got != "" {
		t.Errorf("EncodeBooks(nil) = %q, want empty", got)
	}
}

func TestService_AppendBook(t *testing.T) {
	_, mirror, gw := testutil.Setup(t)
	svc := student.NewService(gw)

	testutil.CreateStudent(t, gw, "bob", "Bob B", "CS", "", "")

	if err := svc.AppendBook("bob", "Dune"); err != nil {
		t.Fatalf("AppendBook() failed: %v", err)
	}
	if err := svc.AppendBook("bob", "Hamlet"); err != nil {
		t.Fatalf("AppendBook() failed: %v", err)
	}

	rows, _ := mirror.Snapshot(sheet.TableStudents)
	if got := rows[0].Get("books_issued"); got != "Dune,Hamlet" {
		t.Errorf("books_issued cell = %q, want %q", got, "Dune,Hamlet")
	}

	stu, _, err := svc.Get("bob")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if len(stu.Books) != 2 {
		t.Errorf("Books = %v, want 2 titles", stu.Books)
	}

	if err := svc.AppendBook("nobody", "Dune"); errors.Cause(err) != student.ErrNotFound {
		t.Errorf("AppendBook(nobody) error = %v, want ErrNotFound", err)
	}
}

func TestService_SetFeeStatusAndRoom(t *testing.T) {
	_, mirror, gw := testutil.Setup(t)
	svc := student.NewService(gw)

	testutil.CreateStudent(t, gw, "alice", "Alice A", "EE", "", "")
	testutil.CreateStudent(t, gw, "bob", "Bob B", "CS", "", "")

	if err := svc.SetFeeStatus("bob", "exam_fee_status", "Paid"); err != nil {
		t.Fatalf("SetFeeStatus() failed: %v", err)
	}
	if err := svc.SetHostelRoom("bob", "B-204"); err != nil {
		t.Fatalf("SetHostelRoom() failed: %v", err)
	}

	rows, _ := mirror.Snapshot(sheet.TableStudents)
	if got := rows[1].Get("exam_fee_status"); got != "Paid" {
		t.Errorf("exam_fee_status = %q, want Paid", got)
	}
	if got := rows[1].Get("hostel_room"); got != "B-204" {
		t.Errorf("hostel_room = %q, want B-204", got)
	}
	// alice untouched
	if got := rows[0].Get("exam_fee_status"); got != "Pending" {
		t.Errorf("alice exam_fee_status = %q, want Pending", got)
	}

	rooms := svc.WithRooms()
	if len(rooms) != 1 || rooms[0].Username != "bob" {
		t.Errorf("WithRooms() = %v, want [bob]", rooms)
	}
}
