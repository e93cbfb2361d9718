// Package notification posts campus-wide notices and fans them out to the
// configured office inbox.
package notification

import (
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/ecoone/campus/core"
	"github.com/ecoone/campus/core/sheet"
)

const dateLayout = "2006-01-02"

type Notification struct {
	Text string `json:"notification"`
	Date string `json:"date"`
}

type Service struct {
	gw     *sheet.Gateway
	mirror *sheet.Mirror
	mail   core.EmailService
	inbox  string // empty disables the email fan-out

	nowFunc func() time.Time
}

func NewService(gw *sheet.Gateway, mailSvc core.EmailService, inbox string) *Service {
	return &Service{gw: gw, mirror: gw.Mirror(), mail: mailSvc, inbox: inbox, nowFunc: time.Now}
}

// Post appends a notice and emails it to the office inbox when configured.
func (svc *Service) Post(text string) error {
	date := svc.nowFunc().Format(dateLayout)
	if err := svc.gw.AppendRow(sheet.TableNotifications, []string{text, date}); err != nil {
		return errors.Wrap(err, "posting notification")
	}
	if svc.mail != nil && svc.inbox != "" {
		svc.mail.SendMessages(&core.EmailMessage{
			To:      []mail.Address{{Address: svc.inbox}},
			Subject: "Notification",
			Body:    text,
		})
	}
	return nil
}

// All returns every notice in the current snapshot.
func (svc *Service) All() []Notification {
	rows, _ := svc.mirror.Snapshot(sheet.TableNotifications)
	notes := make([]Notification, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, Notification{Text: row.Get("notification"), Date: row.Get("date")})
	}
	return notes
}
