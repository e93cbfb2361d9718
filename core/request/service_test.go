package request_test

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/ecoone/campus/core/activity"
	"github.com/ecoone/campus/core/request"
	"github.com/ecoone/campus/core/sheet"
	"github.com/ecoone/campus/core/student"
	"github.com/ecoone/campus/core/user"
	testutil "github.com/ecoone/campus/tests"
)

func setup(t *testing.T) (*sheet.Mirror, *sheet.Gateway, *request.Service) {
	t.Helper()
	_, mirror, gw := testutil.Setup(t)
	svc := request.NewService(gw, student.NewService(gw), activity.NewService(gw), nil)
	return mirror, gw, svc
}

var librarian = user.User{Username: "librarian", Role: user.RoleLibrarian}

func TestService_Submit(t *testing.T) {
	mirror, _, svc := setup(t)
	bob := user.User{Username: "bob", Role: user.RoleStudent}

	req, err := svc.Submit(bob, request.TypeLibrary, " Dune ")
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if req.Details != "Dune" || req.Status != request.StatusPending {
		t.Errorf("Submit() = %+v, want cleaned pending request", req)
	}

	rows, _ := mirror.Snapshot(sheet.TableRequests)
	if len(rows) != 1 {
		t.Fatalf("requests snapshot has %d rows, want 1", len(rows))
	}

	// submission is audited as the submitting user
	audit, _ := mirror.Snapshot(sheet.TableRecentActivity)
	if len(audit) != 1 || audit[0].Get("username") != "bob" {
		t.Errorf("audit log = %v, want one bob entry", audit)
	}

	if _, err := svc.Submit(bob, "Cafeteria", "x"); errors.Cause(err) != request.ErrBadType {
		t.Errorf("Submit() error = %v, want ErrBadType", err)
	}
	if _, err := svc.Submit(bob, request.TypeLibrary, "   "); err == nil {
		t.Error("Submit() with blank details should fail")
	}
}

func TestService_ApproveLibrary(t *testing.T) {
	mirror, gw, svc := setup(t)

	testutil.CreateStudent(t, gw, "bob", "Bob B", "CS", "", "")
	testutil.CreateStudent(t, gw, "carol", "Carol C", "EE", "", "")
	testutil.CreateRequest(t, gw, "bob", "Student", "Library", "Dune", "Pending", "2024-01-05 10:00:00")
	testutil.CreateRequest(t, gw, "carol", "Student", "Library", "Hamlet", "Pending", "2024-01-05 10:01:00")

	pending := svc.Pending(request.TypeLibrary)
	if len(pending) != 2 {
		t.Fatalf("Pending() returned %d requests, want 2", len(pending))
	}

	bobReq := pending[0]
	if err := svc.Approve(bobReq.Pos, librarian); err != nil {
		t.Fatalf("Approve() failed: %v", err)
	}

	// bob's request approved, book issued
	reqs, _ := mirror.Snapshot(sheet.TableRequests)
	if got := reqs[bobReq.Pos].Get("status"); got != "Approved" {
		t.Errorf("bob's request status = %q, want Approved", got)
	}
	students, _ := mirror.Snapshot(sheet.TableStudents)
	if got := students[0].Get("books_issued"); got != "Dune" {
		t.Errorf("bob's books_issued = %q, want Dune", got)
	}

	// carol untouched
	if got := reqs[1].Get("status"); got != "Pending" {
		t.Errorf("carol's request status = %q, want Pending", got)
	}
	if got := students[1].Get("books_issued"); got != "" {
		t.Errorf("carol's books_issued = %q, want empty", got)
	}

	// an already decided request cannot be re-decided
	if err := svc.Approve(bobReq.Pos, librarian); errors.Cause(err) != request.ErrNotPending {
		t.Errorf("re-Approve() error = %v, want ErrNotPending", err)
	}
}

func TestService_ApproveHostel(t *testing.T) {
	mirror, gw, svc := setup(t)
	warden := user.User{Username: "warden", Role: user.RoleWarden}

	testutil.CreateStudent(t, gw, "dave", "Dave D", "ME", "", "")
	testutil.CreateRequest(t, gw, "dave", "Student", "Hostel", "Room B-12", "Pending", "2024-01-05 10:00:00")
	testutil.CreateRequest(t, gw, "dave", "Student", "Hostel", "any room please", "Pending", "2024-01-05 10:05:00")

	// details naming a room number are assigned verbatim
	if err := svc.Approve(0, warden); err != nil {
		t.Fatalf("Approve() failed: %v", err)
	}
	students, _ := mirror.Snapshot(sheet.TableStudents)
	if got := students[0].Get("hostel_room"); got != "Room B-12" {
		t.Errorf("hostel_room = %q, want %q", got, "Room B-12")
	}

	// details without a number get a generated assignment tag
	if err := svc.Approve(1, warden); err != nil {
		t.Fatalf("Approve() failed: %v", err)
	}
	students, _ = mirror.Snapshot(sheet.TableStudents)
	if got := students[0].Get("hostel_room"); len(got) < 9 || got[:9] != "Assigned-" {
		t.Errorf("hostel_room = %q, want Assigned-<timestamp>", got)
	}
}

func TestService_Reject(t *testing.T) {
	mirror, gw, svc := setup(t)

	testutil.CreateStudent(t, gw, "bob", "Bob B", "CS", "", "")
	testutil.CreateRequest(t, gw, "bob", "Student", "Library", "Dune", "Pending", "2024-01-05 10:00:00")

	if err := svc.Reject(0, librarian); err != nil {
		t.Fatalf("Reject() failed: %v", err)
	}
	reqs, _ := mirror.Snapshot(sheet.TableRequests)
	if got := reqs[0].Get("status"); got != "Rejected" {
		t.Errorf("status = %q, want Rejected", got)
	}
	// no side effect on the student
	students, _ := mirror.Snapshot(sheet.TableStudents)
	if got := students[0].Get("books_issued"); got != "" {
		t.Errorf("books_issued = %q, want empty", got)
	}

	if err := svc.Reject(7, librarian); errors.Cause(err) != request.ErrNotFound {
		t.Errorf("Reject(7) error = %v, want ErrNotFound", err)
	}
}
