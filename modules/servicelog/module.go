package servicelog

import (
	"github.com/labstack/echo/v4"

	"caseload-api/core/database"
	"caseload-api/core/middleware"
	"caseload-api/modules/servicelog/controller"
	"caseload-api/modules/servicelog/repository"
	"caseload-api/modules/servicelog/router"
	"caseload-api/modules/servicelog/service"
)

// Init initializes the service-hour logging module and registers routes.
// events verifies that linked calendar events belong to the caller.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, events service.EventSource) {
	repo := repository.NewServiceLogRepository(db)
	svc := service.NewServiceLogService(repo, events)
	ctrl := controller.NewServiceLogController(svc)
	rtr := router.NewServiceLogRouter(ctrl)

	rtr.Setup(e, mw)
}
