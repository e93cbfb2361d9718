package echoapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ecoone/campus/core/sheet"
	"github.com/ecoone/campus/core/user"
	testutil "github.com/ecoone/campus/tests"
)

func Test_userApi_login(t *testing.T) {
	app := setupApp(t)
	testutil.CreateUser(t, app.gw, "Alice", "secret", user.RoleStudent, "alice@example.com", "")

	tests := []struct {
		name     string
		body     LoginRequest
		wantCode int
	}{
		{name: "exact credentials", body: LoginRequest{Username: "Alice", Password: "secret"}, wantCode: http.StatusOK},
		{name: "case and whitespace forgiven", body: LoginRequest{Username: "  aLiCe ", Password: " secret "}, wantCode: http.StatusOK},
		{name: "wrong password", body: LoginRequest{Username: "Alice", Password: "Secret"}, wantCode: http.StatusBadRequest},
		{name: "unknown user", body: LoginRequest{Username: "bob", Password: "secret"}, wantCode: http.StatusBadRequest},
		{name: "missing fields", body: LoginRequest{}, wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(t, http.MethodPost, "/v1/users/login", "", tt.body)
			checkCode(t, rec, tt.wantCode)

			if tt.wantCode == http.StatusOK {
				var resp LoginResponse
				decodeBody(t, rec, &resp)
				assert.NotEmpty(t, resp.Token)

				// the token carries the canonical stored username
				me := app.do(t, http.MethodGet, "/v1/users/me", resp.Token)
				checkCode(t, me, http.StatusOK)
				var usr user.User
				decodeBody(t, me, &usr)
				assert.Equal(t, "Alice", usr.Username)
				assert.Equal(t, user.RoleStudent, usr.Role)
			}
		})
	}
}

func Test_userApi_signup(t *testing.T) {
	app := setupApp(t)
	testutil.CreateUser(t, app.gw, "dave", "hunter22", user.RoleStudent, "", "")

	t.Run("creates account", func(t *testing.T) {
		body := user.NewUser{Username: "erin", Password: "wildf1re", Role: user.RoleFaculty, Email: "erin@example.com"}
		rec := app.do(t, http.MethodPost, "/v1/users/signup", "", body)
		checkCode(t, rec, http.StatusCreated)

		rows, _ := app.mirror.Snapshot(sheet.TableUsers)
		assert.Len(t, rows, 2)
		assert.Equal(t, "erin", rows[1].Get("username"))
	})

	t.Run("duplicate username modulo case", func(t *testing.T) {
		body := user.NewUser{Username: " DAVE", Password: "wildf1re", Role: user.RoleStudent}
		rec := app.do(t, http.MethodPost, "/v1/users/signup", "", body)
		checkCode(t, rec, http.StatusBadRequest)
	})

	t.Run("unknown role", func(t *testing.T) {
		body := user.NewUser{Username: "mallory", Password: "wildf1re", Role: "Janitor"}
		rec := app.do(t, http.MethodPost, "/v1/users/signup", "", body)
		checkCode(t, rec, http.StatusBadRequest)
	})
}

func Test_userApi_me_requiresAuth(t *testing.T) {
	app := setupApp(t)

	rec := app.do(t, http.MethodGet, "/v1/users/me", "")
	checkCode(t, rec, http.StatusUnauthorized)
}
