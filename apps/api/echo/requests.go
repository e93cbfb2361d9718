package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ecoone/campus/core/request"
	"github.com/ecoone/campus/core/student"
	"github.com/ecoone/campus/core/user"
)

// requestDeskApi serves one approval desk: the librarian's over library
// requests, the warden's over hostel requests. Same endpoints, different
// request type and overview.
type requestDeskApi struct {
	reqType  string
	users    *user.Service
	students *student.Service
	requests *request.Service
	overview func() []student.Student
}

func registerLibrarianAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := requestDeskApi{
		reqType:  request.TypeLibrary,
		users:    opts.UserSvc,
		students: opts.StudentSvc,
		requests: opts.RequestSvc,
		overview: opts.StudentSvc.WithBooks,
	}
	api.register(g.Group("/librarian", jwt, roleMiddleware(user.RoleLibrarian)))
}

func registerWardenAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := requestDeskApi{
		reqType:  request.TypeHostel,
		users:    opts.UserSvc,
		students: opts.StudentSvc,
		requests: opts.RequestSvc,
		overview: opts.StudentSvc.WithRooms,
	}
	api.register(g.Group("/warden", jwt, roleMiddleware(user.RoleWarden)))
}

func (api *requestDeskApi) register(dg *echo.Group) {
	dg.GET("/requests", api.queryPending)
	dg.POST("/requests/:pos/approve", api.approve)
	dg.POST("/requests/:pos/reject", api.reject)
	dg.GET("/overview", api.queryOverview)
}

// Handlers

func (api *requestDeskApi) queryPending(ctx echo.Context) error {
	pending := api.requests.Pending(api.reqType)
	if pending == nil {
		pending = []request.PendingRequest{}
	}
	return ctx.JSON(http.StatusOK, pending)
}

func (api *requestDeskApi) approve(ctx echo.Context) error {
	return api.decide(ctx, api.requests.Approve)
}

func (api *requestDeskApi) reject(ctx echo.Context) error {
	return api.decide(ctx, api.requests.Reject)
}

func (api *requestDeskApi) decide(ctx echo.Context, decision func(int, user.User) error) error {
	pos, err := strconv.Atoi(ctx.Param("pos"))
	if err != nil {
		return errHttpNotFound
	}

	// only decide requests of this desk's type
	req, err := api.requests.At(pos)
	if err != nil || req.Type != api.reqType {
		return errHttpNotFound
	}

	actor, err := getContextUser(ctx, api.users)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	if err = decision(pos, actor); err != nil {
		switch errors.Cause(err) {
		case request.ErrNotFound:
			return errHttpNotFound
		case request.ErrNotPending:
			return echo.NewHTTPError(http.StatusConflict, "request already decided")
		}
		return err
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "request decided"})
}

func (api *requestDeskApi) queryOverview(ctx echo.Context) error {
	students := api.overview()
	if students == nil {
		students = []student.Student{}
	}
	return ctx.JSON(http.StatusOK, students)
}
