package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ecoone/campus/core/activity"
	"github.com/ecoone/campus/core/notification"
	"github.com/ecoone/campus/core/payment"
	"github.com/ecoone/campus/core/user"
)

type adminApi struct {
	users    *user.Service
	payments *payment.Service
	audit    *activity.Service
	notes    *notification.Service
}

func registerAdminAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := adminApi{
		users:    opts.UserSvc,
		payments: opts.PaymentSvc,
		audit:    opts.ActivitySvc,
		notes:    opts.NotificationSvc,
	}

	ag := g.Group("/admin", jwt, adminMiddleware())
	ag.GET("/overview", api.overview)
	ag.GET("/users", api.queryUsers)
	ag.POST("/users", api.createUser)
	ag.DELETE("/users/:username", api.destroyUser)
	ag.GET("/activity", api.queryActivity)
	ag.GET("/payments/pending", api.queryPendingPayments)
	ag.GET("/notifications", api.queryNotifications)
	ag.POST("/notifications", api.createNotification)
}

// Handlers

func (api *adminApi) overview(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.payments.Overview())
}

func (api *adminApi) queryUsers(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.users.All())
}

func (api *adminApi) createUser(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}

	usr, err := api.users.SignUp(data)
	if err != nil {
		return err
	}

	ctxUsr, err := getContextUser(ctx, api.users)
	if err == nil {
		_ = api.audit.Log(ctxUsr.Username, ctxUsr.Role, "Added user "+usr.Username)
	}
	return ctx.JSON(http.StatusCreated, usr)
}

func (api *adminApi) destroyUser(ctx echo.Context) error {
	username := ctx.Param("username")
	if err := api.users.Delete(username); err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting user")
	}

	ctxUsr, err := getContextUser(ctx, api.users)
	if err == nil {
		_ = api.audit.Log(ctxUsr.Username, ctxUsr.Role, "Deleted user "+username)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *adminApi) queryActivity(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.audit.Recent())
}

func (api *adminApi) queryPendingPayments(ctx echo.Context) error {
	payments := api.payments.Pending()
	if payments == nil {
		payments = []payment.PendingPayment{}
	}
	return ctx.JSON(http.StatusOK, payments)
}

func (api *adminApi) queryNotifications(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.notes.All())
}

func (api *adminApi) createNotification(ctx echo.Context) error {
	var data NotificationPayload
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NotificationPayload")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	if err := api.notes.Post(data.Text); err != nil {
		return errors.Wrap(err, "posting notification")
	}
	return ctx.JSON(http.StatusCreated, SuccessResponse{Success: "notification posted"})
}
