package calendar

import (
	"github.com/labstack/echo/v4"

	"caseload-api/core/cache"
	"caseload-api/core/database"
	"caseload-api/core/middleware"
	"caseload-api/core/worker"
	"caseload-api/modules/calendar/controller"
	"caseload-api/modules/calendar/repository"
	"caseload-api/modules/calendar/router"
	"caseload-api/modules/calendar/service"
)

// Init initializes the calendar module and registers routes. The returned
// service is shared with modules that link events (service logs).
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, c *cache.Cache, wc *worker.Client) service.CalendarServiceInterface {
	repo := repository.NewEventRepository(db)
	svc := service.NewCalendarService(repo, c, wc)
	ctrl := controller.NewCalendarController(svc)
	rtr := router.NewCalendarRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}

// NewReminderHandler exposes the reminder task handler for the worker setup.
func NewReminderHandler(notifier service.Notifier, c *cache.Cache) *service.ReminderHandler {
	return service.NewReminderHandler(notifier, c)
}
