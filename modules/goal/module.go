package goal

import (
	"github.com/labstack/echo/v4"

	"caseload-api/core/database"
	"caseload-api/core/middleware"
	"caseload-api/modules/goal/controller"
	"caseload-api/modules/goal/repository"
	"caseload-api/modules/goal/router"
	"caseload-api/modules/goal/service"
)

// Init initializes the IEP goal module and registers routes.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) {
	repo := repository.NewGoalRepository(db)
	svc := service.NewGoalService(repo)
	ctrl := controller.NewGoalController(svc)
	rtr := router.NewGoalRouter(ctrl)

	rtr.Setup(e, mw)
}
