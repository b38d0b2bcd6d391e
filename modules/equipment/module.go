package equipment

import (
	"github.com/labstack/echo/v4"

	"caseload-api/core/database"
	"caseload-api/core/middleware"
	"caseload-api/core/storage"
	"caseload-api/modules/equipment/controller"
	"caseload-api/modules/equipment/repository"
	"caseload-api/modules/equipment/router"
	"caseload-api/modules/equipment/service"
)

// Init initializes the equipment tracking module and registers routes.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, store *storage.Storage, notifier service.Notifier) {
	repo := repository.NewEquipmentRepository(db)
	svc := service.NewEquipmentService(repo, store, notifier)
	ctrl := controller.NewEquipmentController(svc)
	rtr := router.NewEquipmentRouter(ctrl)

	rtr.Setup(e, mw)
}
