package request

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/ecoone/campus/core"
	"github.com/ecoone/campus/core/activity"
	"github.com/ecoone/campus/core/notification"
	"github.com/ecoone/campus/core/sheet"
	"github.com/ecoone/campus/core/student"
	"github.com/ecoone/campus/core/user"
)

var (
	ErrNotFound   = errors.New("request not found")
	ErrNotPending = errors.New("request is not pending")
	ErrBadType    = errors.New("unknown request type")
)

type Service struct {
	gw       *sheet.Gateway
	mirror   *sheet.Mirror
	students *student.Service
	audit    *activity.Service
	notes    *notification.Service

	nowFunc func() time.Time
}

func NewService(gw *sheet.Gateway, students *student.Service, audit *activity.Service, notes *notification.Service) *Service {
	return &Service{
		gw:       gw,
		mirror:   gw.Mirror(),
		students: students,
		audit:    audit,
		notes:    notes,
		nowFunc:  time.Now,
	}
}

// Submit files a new pending request for the user.
func (svc *Service) Submit(usr user.User, reqType, details string) (Request, error) {
	if !ValidType(reqType) {
		return Request{}, errors.Wrap(ErrBadType, reqType)
	}
	details = core.CleanString(details)
	if details == "" {
		return Request{}, core.NewValidationError(errors.New("request details are required"),
			core.FieldError{Field: "details", Error: "this field is required"})
	}

	req := Request{
		Username:  usr.Username,
		Role:      usr.Role,
		Type:      reqType,
		Details:   details,
		Status:    StatusPending,
		Timestamp: svc.nowFunc().Format(activity.TimeLayout),
	}
	if err := svc.gw.AppendRow(sheet.TableRequests, req.Values()); err != nil {
		return Request{}, errors.Wrap(err, "submitting request")
	}
	svc.logActivity(usr.Username, usr.Role, fmt.Sprintf("Submitted %s request: %s", reqType, details))
	return req, nil
}

// Pending returns all pending requests of the given type, with the mirror
// positions a decision call needs. Positions go stale as soon as the requests
// table changes; recompute via Pending right before deciding.
func (svc *Service) Pending(reqType string) []PendingRequest {
	rows, _ := svc.mirror.Snapshot(sheet.TableRequests)
	var out []PendingRequest
	for i, row := range rows {
		req := FromRow(row)
		if req.Type == reqType && req.Status == StatusPending {
			out = append(out, PendingRequest{Pos: i, Request: req})
		}
	}
	return out
}

// Approve marks the request at pos approved and applies its side effect:
// a Library request appends the requested title to the student's issued
// books; a Hostel request assigns the requested room, or a generated tag
// when the details name no room number. The two writes hit different tables
// through independent gateway calls; there is no rollback if the second one
// fails.
func (svc *Service) Approve(pos int, actor user.User) error {
	req, err := svc.pendingAt(pos)
	if err != nil {
		return err
	}
	if err = svc.gw.UpdateCell(sheet.TableRequests, pos, "status", StatusApproved); err != nil {
		return errors.Wrap(err, "approving request")
	}

	switch req.Type {
	case TypeLibrary:
		if err = svc.students.AppendBook(req.Username, req.Details); err != nil && errors.Cause(err) != student.ErrNotFound {
			return errors.Wrap(err, "issuing book")
		}
	case TypeHostel:
		room := req.Details
		if !strings.ContainsAny(room, "0123456789") {
			room = "Assigned-" + svc.nowFunc().Format("20060102150405")
		}
		if err = svc.students.SetHostelRoom(req.Username, room); err != nil && errors.Cause(err) != student.ErrNotFound {
			return errors.Wrap(err, "assigning room")
		}
	}

	svc.logActivity(actor.Username, actor.Role, fmt.Sprintf("Approved %s request %s", strings.ToLower(req.Type), req.Username))
	svc.notify(fmt.Sprintf("%s request of %s approved: %s", req.Type, req.Username, req.Details))
	return nil
}

// Reject marks the request at pos rejected.
func (svc *Service) Reject(pos int, actor user.User) error {
	req, err := svc.pendingAt(pos)
	if err != nil {
		return err
	}
	if err = svc.gw.UpdateCell(sheet.TableRequests, pos, "status", StatusRejected); err != nil {
		return errors.Wrap(err, "rejecting request")
	}
	svc.logActivity(actor.Username, actor.Role, fmt.Sprintf("Rejected %s request %s", strings.ToLower(req.Type), req.Username))
	svc.notify(fmt.Sprintf("%s request of %s rejected", req.Type, req.Username))
	return nil
}

// At returns the request at the mirror position, whatever its status.
func (svc *Service) At(pos int) (Request, error) {
	rows, err := svc.mirror.Snapshot(sheet.TableRequests)
	if err != nil {
		return Request{}, err
	}
	if pos < 0 || pos >= len(rows) {
		return Request{}, ErrNotFound
	}
	return FromRow(rows[pos]), nil
}

func (svc *Service) pendingAt(pos int) (Request, error) {
	rows, err := svc.mirror.Snapshot(sheet.TableRequests)
	if err != nil {
		return Request{}, err
	}
	if pos < 0 || pos >= len(rows) {
		return Request{}, ErrNotFound
	}
	req := FromRow(rows[pos])
	if req.Status != StatusPending {
		return Request{}, errors.Wrap(ErrNotPending, req.Status)
	}
	return req, nil
}

// audit log and notifications are best effort; a decision must not fail
// because of them
func (svc *Service) logActivity(username, role, action string) {
	_ = svc.audit.Log(username, role, action)
}

func (svc *Service) notify(text string) {
	if svc.notes != nil {
		_ = svc.notes.Post(text)
	}
}
