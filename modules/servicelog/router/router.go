package router

import (
	"github.com/labstack/echo/v4"

	"caseload-api/core/middleware"
	"caseload-api/modules/servicelog/controller"
)

// ServiceLogRouter handles service-hour logging routes.
type ServiceLogRouter struct {
	ServiceLogController *controller.ServiceLogController
}

func NewServiceLogRouter(serviceLogController *controller.ServiceLogController) *ServiceLogRouter {
	return &ServiceLogRouter{
		ServiceLogController: serviceLogController,
	}
}

// Setup registers service log routes.
func (r *ServiceLogRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	logRoutes := privateRoutes.Group("/service-logs", mw.AuthMiddleware())
	logRoutes.POST("", r.ServiceLogController.Create)
	logRoutes.GET("/:id", r.ServiceLogController.Get)
	logRoutes.PUT("/:id", r.ServiceLogController.Update)
	logRoutes.DELETE("/:id", r.ServiceLogController.Delete)

	studentRoutes := privateRoutes.Group("/students", mw.AuthMiddleware())
	studentRoutes.GET("/:studentId/service-logs", r.ServiceLogController.ListByStudent)
	studentRoutes.GET("/:studentId/service-logs/monthly", r.ServiceLogController.MonthlyTotals)
}
