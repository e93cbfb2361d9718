package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/ecoone/campus/core/activity"
	"github.com/ecoone/campus/core/notification"
	"github.com/ecoone/campus/core/payment"
	"github.com/ecoone/campus/core/request"
	"github.com/ecoone/campus/core/sheet"
	"github.com/ecoone/campus/core/student"
	"github.com/ecoone/campus/core/user"
	testutil "github.com/ecoone/campus/tests"
)

type testApp struct {
	server Server
	mirror *sheet.Mirror
	gw     *sheet.Gateway
	users  *user.Service
}

func setupApp(t *testing.T) *testApp {
	t.Helper()
	_, mirror, gw := testutil.Setup(t)

	usrSvc := user.NewService(gw)
	stuSvc := student.NewService(gw)
	auditSvc := activity.NewService(gw)
	noteSvc := notification.NewService(gw, nil, "")
	reqSvc := request.NewService(gw, stuSvc, auditSvc, noteSvc)
	paySvc := payment.NewService(mirror)

	server := NewServer(&Options{
		Address:         ":0",
		DisableReqLogs:  true,
		Logger:          testutil.NewQuietLogger(t),
		UserSvc:         usrSvc,
		StudentSvc:      stuSvc,
		RequestSvc:      reqSvc,
		PaymentSvc:      paySvc,
		ActivitySvc:     auditSvc,
		NotificationSvc: noteSvc,
	})
	return &testApp{server: server, mirror: mirror, gw: gw, users: usrSvc}
}

func (app *testApp) do(t *testing.T, method, path, token string, data ...interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if len(data) > 0 {
		if err := json.NewEncoder(&body).Encode(data[0]); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.server.ServeHTTP(rec, req)
	return rec
}

func getToken(t *testing.T, usr user.User) string {
	t.Helper()
	token, err := GenerateToken(GetUserClaims(usr))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decoding %q: %v", rec.Body.String(), err)
	}
}

func checkCode(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("code = %d, want %d; body: %s", rec.Code, want, rec.Body.String())
	}
}
