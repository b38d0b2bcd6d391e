package router

import (
	"github.com/labstack/echo/v4"

	"caseload-api/core/middleware"
	"caseload-api/modules/goal/controller"
)

// GoalRouter handles IEP goal routes.
type GoalRouter struct {
	GoalController *controller.GoalController
}

func NewGoalRouter(goalController *controller.GoalController) *GoalRouter {
	return &GoalRouter{
		GoalController: goalController,
	}
}

// Setup registers goal routes.
func (r *GoalRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	goalRoutes := privateRoutes.Group("/goals", mw.AuthMiddleware())
	goalRoutes.POST("", r.GoalController.Create)
	goalRoutes.GET("/:id", r.GoalController.Get)
	goalRoutes.PUT("/:id", r.GoalController.Update)
	goalRoutes.DELETE("/:id", r.GoalController.Delete)
	goalRoutes.POST("/:id/progress", r.GoalController.AddProgress)

	studentRoutes := privateRoutes.Group("/students", mw.AuthMiddleware())
	studentRoutes.GET("/:studentId/goals", r.GoalController.ListByStudent)
}
