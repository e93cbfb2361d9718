package echoapi

import (
	"github.com/ecoone/campus/core"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (lr *LoginRequest) Validate() error {
	lr.Username = core.CleanString(lr.Username, true)
	return core.Validate.Struct(lr)
}

type LoginResponse struct {
	Token string `json:"token"`
}

type SuccessResponse struct {
	Success string `json:"success"`
}

// NewRequestPayload is a student's library or hostel request submission.
type NewRequestPayload struct {
	Type    string `json:"request_type" validate:"required"`
	Details string `json:"details" validate:"required"`
}

func (rp *NewRequestPayload) Validate() error {
	rp.Type = core.CleanString(rp.Type)
	rp.Details = core.CleanString(rp.Details)
	return core.Validate.Struct(rp)
}

type NotificationPayload struct {
	Text string `json:"notification" validate:"required"`
}

func (np *NotificationPayload) Validate() error {
	np.Text = core.CleanString(np.Text)
	return core.Validate.Struct(np)
}
