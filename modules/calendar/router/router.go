package router

import (
	"github.com/labstack/echo/v4"

	"caseload-api/core/middleware"
	"caseload-api/modules/calendar/controller"
)

// CalendarRouter handles calendar event routes.
type CalendarRouter struct {
	CalendarController *controller.CalendarController
}

func NewCalendarRouter(calendarController *controller.CalendarController) *CalendarRouter {
	return &CalendarRouter{
		CalendarController: calendarController,
	}
}

// Setup registers calendar routes.
func (r *CalendarRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	eventRoutes := privateRoutes.Group("/events", mw.AuthMiddleware())

	eventRoutes.POST("", r.CalendarController.CreateEvent)
	eventRoutes.GET("", r.CalendarController.GetRange)
	eventRoutes.GET("/day/:date", r.CalendarController.GetDay)
	eventRoutes.POST("/check-conflict", r.CalendarController.CheckConflict)
	eventRoutes.GET("/:id", r.CalendarController.GetEvent)
	eventRoutes.PUT("/:id", r.CalendarController.UpdateEvent)
	eventRoutes.DELETE("/:id", r.CalendarController.DeleteEvent)
	eventRoutes.GET("/:id/occurrences", r.CalendarController.PreviewOccurrences)

	studentRoutes := privateRoutes.Group("/students", mw.AuthMiddleware())
	studentRoutes.GET("/:studentId/events", r.CalendarController.ListStudentEvents)
}
