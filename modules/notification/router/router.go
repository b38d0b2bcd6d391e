package router

import (
	"github.com/labstack/echo/v4"

	"caseload-api/core/middleware"
	"caseload-api/modules/notification/controller"
)

// NotificationRouter handles notification routes.
type NotificationRouter struct {
	NotificationController *controller.NotificationController
}

func NewNotificationRouter(notificationController *controller.NotificationController) *NotificationRouter {
	return &NotificationRouter{NotificationController: notificationController}
}

// Setup registers notification routes.
func (r *NotificationRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	group := privateRoutes.Group("/notifications", mw.AuthMiddleware())
	group.GET("", r.NotificationController.GetMyNotifications)
	group.GET("/unread-count", r.NotificationController.CountUnread)
	group.PUT("/mark-read", r.NotificationController.MarkAsRead)
	group.PUT("/mark-all-read", r.NotificationController.MarkAllAsRead)
	group.DELETE("/:id", r.NotificationController.Delete)
}
