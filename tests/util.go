package testutil

import (
	"testing"

	"github.com/ecoone/campus/core/sheet"
	"github.com/ecoone/campus/core/user"
	"github.com/ecoone/campus/storage/inmem"
)

// QuietLogger drops everything below Error; tests stay silent.
type QuietLogger struct{ t *testing.T }

func NewQuietLogger(t *testing.T) QuietLogger { return QuietLogger{t: t} }

func (l QuietLogger) Debug(msg string, args ...interface{}) {}
func (l QuietLogger) Info(msg string, args ...interface{})  {}
func (l QuietLogger) Warn(msg string, args ...interface{})  {}
func (l QuietLogger) Error(msg string, args ...interface{}) { l.t.Logf("ERROR: %s %v", msg, args) }
func (l QuietLogger) Fatal(msg string, args ...interface{}) { l.t.Fatalf("FATAL: %s %v", msg, args) }

// Setup builds a ready data layer over an in-memory store: headers ensured,
// mirror loaded.
func Setup(t *testing.T) (*inmem.Store, *sheet.Mirror, *sheet.Gateway) {
	t.Helper()
	reg := sheet.NewRegistry()
	store := inmem.Open()
	if err := reg.EnsureHeaders(store); err != nil {
		t.Fatalf("EnsureHeaders() failed: %v", err)
	}
	mirror := sheet.NewMirror(reg, store, QuietLogger{t: t})
	if err := mirror.LoadAll(); err != nil {
		t.Fatalf("LoadAll() failed: %v", err)
	}
	return store, mirror, sheet.NewGateway(reg, store, mirror)
}

func CreateUser(t *testing.T, gw *sheet.Gateway, uname, pwd, role, email, phone string) user.User {
	t.Helper()
	usr := user.User{Username: uname, Password: pwd, Role: role, Email: email, Phone: phone}
	if err := gw.AppendRow(sheet.TableUsers, usr.Values()); err != nil {
		t.Fatalf("CreateUser(%s) failed: %v", uname, err)
	}
	return usr
}

// CreateStudent appends a students row with sane defaults for the fields the
// test does not care about.
func CreateStudent(t *testing.T, gw *sheet.Gateway, uname, name, department, books, room string) {
	t.Helper()
	row := []string{uname, name, department, uname + "@campus.test", "555", "80",
		"Pending", "Pending", "Pending", "Pending", books, room}
	if err := gw.AppendRow(sheet.TableStudents, row); err != nil {
		t.Fatalf("CreateStudent(%s) failed: %v", uname, err)
	}
}

func CreateRequest(t *testing.T, gw *sheet.Gateway, uname, role, reqType, details, status, ts string) {
	t.Helper()
	if err := gw.AppendRow(sheet.TableRequests, []string{uname, role, reqType, details, status, ts}); err != nil {
		t.Fatalf("CreateRequest(%s) failed: %v", uname, err)
	}
}

func CreatePayment(t *testing.T, gw *sheet.Gateway, uname, feeType, amount, date, status string) {
	t.Helper()
	if err := gw.AppendRow(sheet.TablePayments, []string{uname, feeType, amount, date, status}); err != nil {
		t.Fatalf("CreatePayment(%s) failed: %v", uname, err)
	}
}
