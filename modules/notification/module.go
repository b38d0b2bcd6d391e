package notification

import (
	"github.com/labstack/echo/v4"

	"caseload-api/core/database"
	"caseload-api/core/middleware"
	"caseload-api/modules/notification/controller"
	"caseload-api/modules/notification/repository"
	"caseload-api/modules/notification/router"
	"caseload-api/modules/notification/service"
)

// Init initializes the notification module and registers routes. The service
// is returned so the reminder worker and the equipment module can create
// notifications directly.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) *service.NotificationService {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo)
	ctrl := controller.NewNotificationController(svc)
	rtr := router.NewNotificationRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
