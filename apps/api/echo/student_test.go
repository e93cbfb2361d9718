package echoapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ecoone/campus/core/request"
	"github.com/ecoone/campus/core/sheet"
	"github.com/ecoone/campus/core/user"
	testutil "github.com/ecoone/campus/tests"
)

func Test_studentApi_dashboard(t *testing.T) {
	app := setupApp(t)
	alice := testutil.CreateUser(t, app.gw, "alice", "secret", user.RoleStudent, "", "")
	bob := testutil.CreateUser(t, app.gw, "bob", "hunter22", user.RoleStudent, "", "")
	testutil.CreateStudent(t, app.gw, "alice", "Alice A", "EE", "Dune", "A-1")
	if err := app.gw.AppendRow(sheet.TableNotifications, []string{"Holiday on Friday", "2024-01-05"}); err != nil {
		t.Fatalf("appending notification: %v", err)
	}

	rec := app.do(t, http.MethodGet, "/v1/student/dashboard", getToken(t, alice))
	checkCode(t, rec, http.StatusOK)
	var resp DashboardResponse
	decodeBody(t, rec, &resp)
	if assert.NotNil(t, resp.Student) {
		assert.Equal(t, "Alice A", resp.Student.Name)
		assert.Equal(t, []string{"Dune"}, resp.Student.Books)
		assert.Equal(t, "A-1", resp.Student.HostelRoom)
	}
	if assert.Len(t, resp.Notifications, 1) {
		assert.Equal(t, "Holiday on Friday", resp.Notifications[0].Text)
	}

	// an account without a students row still gets the notice board
	rec = app.do(t, http.MethodGet, "/v1/student/dashboard", getToken(t, bob))
	checkCode(t, rec, http.StatusOK)
	resp = DashboardResponse{}
	decodeBody(t, rec, &resp)
	assert.Nil(t, resp.Student)
	assert.Len(t, resp.Notifications, 1)
}

func Test_studentApi_submitRequest(t *testing.T) {
	app := setupApp(t)
	alice := testutil.CreateUser(t, app.gw, "alice", "secret", user.RoleStudent, "", "")
	librarian := testutil.CreateUser(t, app.gw, "lib", "pass123", user.RoleLibrarian, "", "")
	token := getToken(t, alice)

	rec := app.do(t, http.MethodPost, "/v1/student/requests", token,
		NewRequestPayload{Type: request.TypeLibrary, Details: " Dune "})
	checkCode(t, rec, http.StatusCreated)
	var req request.Request
	decodeBody(t, rec, &req)
	assert.Equal(t, "Dune", req.Details)
	assert.Equal(t, request.StatusPending, req.Status)
	assert.Equal(t, "alice", req.Username)

	rows, _ := app.mirror.Snapshot(sheet.TableRequests)
	assert.Len(t, rows, 1)

	// bad payloads
	rec = app.do(t, http.MethodPost, "/v1/student/requests", token,
		NewRequestPayload{Type: "Cafeteria", Details: "x"})
	checkCode(t, rec, http.StatusBadRequest)
	rec = app.do(t, http.MethodPost, "/v1/student/requests", token,
		NewRequestPayload{Type: request.TypeLibrary})
	checkCode(t, rec, http.StatusBadRequest)

	// the desk staff cannot file student requests
	rec = app.do(t, http.MethodPost, "/v1/student/requests", getToken(t, librarian),
		NewRequestPayload{Type: request.TypeLibrary, Details: "Dune"})
	checkCode(t, rec, http.StatusForbidden)
}
