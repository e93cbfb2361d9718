package notification_test

import (
	"testing"

	"github.com/ecoone/campus/core"
	"github.com/ecoone/campus/core/notification"
	"github.com/ecoone/campus/core/sheet"
	emailsvc "github.com/ecoone/campus/services/email"
	testutil "github.com/ecoone/campus/tests"
)

func TestService_Post(t *testing.T) {
	_, mirror, gw := testutil.Setup(t)
	mailSvc := emailsvc.NewConsoleServiceMock(core.Conf)
	svc := notification.NewService(gw, mailSvc, "office@example.com")

	sentBefore := len(emailsvc.SentMessages)
	if err := svc.Post("Exam week starts Monday"); err != nil {
		t.Fatalf("Post() failed: %v", err)
	}

	rows, _ := mirror.Snapshot(sheet.TableNotifications)
	if len(rows) != 1 || rows[0].Get("notification") != "Exam week starts Monday" {
		t.Errorf("notifications snapshot = %v, want the posted notice", rows)
	}
	if rows[0].Get("date") == "" {
		t.Error("posted notice has no date")
	}

	// the notice is fanned out to the office inbox
	sent := emailsvc.SentMessages[sentBefore:]
	if len(sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(sent))
	}
	if got := sent[0].To[0].Address; got != "office@example.com" {
		t.Errorf("email to = %q, want office@example.com", got)
	}
	if sent[0].Body != "Exam week starts Monday" {
		t.Errorf("email body = %q", sent[0].Body)
	}

	notes := svc.All()
	if len(notes) != 1 || notes[0].Text != "Exam week starts Monday" {
		t.Errorf("All() = %v", notes)
	}
}

func TestService_Post_noInboxConfigured(t *testing.T) {
	_, _, gw := testutil.Setup(t)
	mailSvc := emailsvc.NewConsoleServiceMock(core.Conf)
	svc := notification.NewService(gw, mailSvc, "")

	sentBefore := len(emailsvc.SentMessages)
	if err := svc.Post("Holiday on Friday"); err != nil {
		t.Fatalf("Post() failed: %v", err)
	}
	if got := len(emailsvc.SentMessages); got != sentBefore {
		t.Errorf("sent %d emails, want none", got-sentBefore)
	}
}
