package router

import (
	"github.com/labstack/echo/v4"

	"caseload-api/core/middleware"
	"caseload-api/modules/activity/controller"
)

// ActivityRouter handles activity and play-session routes.
type ActivityRouter struct {
	ActivityController *controller.ActivityController
}

func NewActivityRouter(activityController *controller.ActivityController) *ActivityRouter {
	return &ActivityRouter{
		ActivityController: activityController,
	}
}

// Setup registers activity routes.
func (r *ActivityRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	activityRoutes := privateRoutes.Group("/activities", mw.AuthMiddleware())
	activityRoutes.POST("", r.ActivityController.Create)
	activityRoutes.GET("", r.ActivityController.List)
	activityRoutes.GET("/shared/:code", r.ActivityController.GetByShareCode)
	activityRoutes.GET("/:id", r.ActivityController.Get)
	activityRoutes.PUT("/:id", r.ActivityController.Update)
	activityRoutes.DELETE("/:id", r.ActivityController.Delete)
	activityRoutes.POST("/:id/sessions", r.ActivityController.StartSession)

	sessionRoutes := privateRoutes.Group("/activity-sessions", mw.AuthMiddleware())
	sessionRoutes.GET("/:id", r.ActivityController.GetSessionSummary)
	sessionRoutes.POST("/:id/submit", r.ActivityController.SubmitSession)

	studentRoutes := privateRoutes.Group("/students", mw.AuthMiddleware())
	studentRoutes.GET("/:studentId/activity-sessions", r.ActivityController.ListSessionsByStudent)
}
