package student

import (
	"github.com/labstack/echo/v4"

	"caseload-api/core/database"
	"caseload-api/core/middleware"
	"caseload-api/modules/student/controller"
	"caseload-api/modules/student/repository"
	"caseload-api/modules/student/router"
	"caseload-api/modules/student/service"
)

// Init initializes the student module and registers routes.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) {
	repo := repository.NewStudentRepository(db)
	svc := service.NewStudentService(repo)
	ctrl := controller.NewStudentController(svc)
	rtr := router.NewStudentRouter(ctrl)

	rtr.Setup(e, mw)
}
