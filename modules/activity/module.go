package activity

import (
	"github.com/labstack/echo/v4"

	"caseload-api/core/database"
	"caseload-api/core/middleware"
	"caseload-api/modules/activity/controller"
	"caseload-api/modules/activity/repository"
	"caseload-api/modules/activity/router"
	"caseload-api/modules/activity/service"
)

// Init initializes the activity module and registers routes.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) {
	repo := repository.NewActivityRepository(db)
	svc := service.NewActivityService(repo)
	ctrl := controller.NewActivityController(svc)
	rtr := router.NewActivityRouter(ctrl)

	rtr.Setup(e, mw)
}
