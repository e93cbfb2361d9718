package request

import (
	"github.com/ecoone/campus/core/sheet"
)

// Request types
const (
	TypeLibrary = "Library"
	TypeHostel  = "Hostel"
)

// Statuses
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

func ValidType(t string) bool {
	return t == TypeLibrary || t == TypeHostel
}

// Request is one row of the requests table.
type Request struct {
	Username  string `json:"username"`
	Role      string `json:"role"`
	Type      string `json:"request_type"`
	Details   string `json:"details"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// PendingRequest carries the mirror position the decision endpoints need.
// The position is only valid against the snapshot it was computed from.
type PendingRequest struct {
	Pos int `json:"pos"`
	Request
}

func FromRow(r sheet.Row) Request {
	return Request{
		Username:  r.Get("username"),
		Role:      r.Get("role"),
		Type:      r.Get("request_type"),
		Details:   r.Get("details"),
		Status:    r.Get("status"),
		Timestamp: r.Get("timestamp"),
	}
}

// Values returns the row cells in requests schema order.
func (r Request) Values() []string {
	return []string{r.Username, r.Role, r.Type, r.Details, r.Status, r.Timestamp}
}
