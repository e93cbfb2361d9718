// Package activity maintains the append-only recent_activity audit log.
package activity

import (
	"time"

	"github.com/pkg/errors"

	"github.com/ecoone/campus/core/sheet"
)

// TimeLayout is the timestamp format used across the store.
const TimeLayout = "2006-01-02 15:04:05"

type Entry struct {
	Username  string `json:"username"`
	Role      string `json:"role"`
	Action    string `json:"action"`
	Timestamp string `json:"timestamp"`
}

type Service struct {
	gw     *sheet.Gateway
	mirror *sheet.Mirror

	nowFunc func() time.Time // mockable
}

func NewService(gw *sheet.Gateway) *Service {
	return &Service{gw: gw, mirror: gw.Mirror(), nowFunc: time.Now}
}

// Log appends one audit entry.
func (svc *Service) Log(username, role, action string) error {
	ts := svc.nowFunc().Format(TimeLayout)
	err := svc.gw.AppendRow(sheet.TableRecentActivity, []string{username, role, action, ts})
	return errors.Wrap(err, "logging activity")
}

// Recent returns the full audit log from the current snapshot, oldest first.
func (svc *Service) Recent() []Entry {
	rows, _ := svc.mirror.Snapshot(sheet.TableRecentActivity)
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, Entry{
			Username:  row.Get("username"),
			Role:      row.Get("role"),
			Action:    row.Get("action"),
			Timestamp: row.Get("timestamp"),
		})
	}
	return entries
}
