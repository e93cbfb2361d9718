package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ecoone/campus/core/notification"
	"github.com/ecoone/campus/core/request"
	"github.com/ecoone/campus/core/student"
	"github.com/ecoone/campus/core/user"
)

type studentApi struct {
	users    *user.Service
	students *student.Service
	requests *request.Service
	notes    *notification.Service
}

// DashboardResponse is everything the student portal renders: the student's
// row (zero when the admin has not filled it in yet) and the notice board.
type DashboardResponse struct {
	Student       *student.Student            `json:"student"`
	Notifications []notification.Notification `json:"notifications"`
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := studentApi{
		users:    opts.UserSvc,
		students: opts.StudentSvc,
		requests: opts.RequestSvc,
		notes:    opts.NotificationSvc,
	}

	sg := g.Group("/student", jwt, roleMiddleware(user.RoleStudent))
	sg.GET("/dashboard", api.dashboard)
	sg.POST("/requests", api.submitRequest)
}

// Handlers

func (api *studentApi) dashboard(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	resp := DashboardResponse{Notifications: api.notes.All()}
	if stu, _, err := api.students.Get(claims.Username); err == nil {
		resp.Student = &stu
	} else if errors.Cause(err) != student.ErrNotFound {
		return errors.Wrap(err, "loading student details")
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *studentApi) submitRequest(ctx echo.Context) error {
	var data NewRequestPayload
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRequestPayload")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	usr, err := getContextUser(ctx, api.users)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	req, err := api.requests.Submit(usr, data.Type, data.Details)
	if err != nil {
		if errors.Cause(err) == request.ErrBadType {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown request type")
		}
		return err
	}
	return ctx.JSON(http.StatusCreated, req)
}
