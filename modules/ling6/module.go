package ling6

import (
	"github.com/labstack/echo/v4"

	"caseload-api/core/database"
	"caseload-api/core/middleware"
	"caseload-api/modules/ling6/controller"
	"caseload-api/modules/ling6/repository"
	"caseload-api/modules/ling6/router"
	"caseload-api/modules/ling6/service"
)

// Init initializes the Ling 6 module and registers routes.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) {
	repo := repository.NewSessionRepository(db)
	svc := service.NewLing6Service(repo)
	ctrl := controller.NewLing6Controller(svc)
	rtr := router.NewLing6Router(ctrl)

	rtr.Setup(e, mw)
}
