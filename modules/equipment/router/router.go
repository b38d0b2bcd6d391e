package router

import (
	"github.com/labstack/echo/v4"

	"caseload-api/core/middleware"
	"caseload-api/modules/equipment/controller"
)

// EquipmentRouter handles equipment tracking routes.
type EquipmentRouter struct {
	EquipmentController *controller.EquipmentController
}

func NewEquipmentRouter(equipmentController *controller.EquipmentController) *EquipmentRouter {
	return &EquipmentRouter{
		EquipmentController: equipmentController,
	}
}

// Setup registers equipment routes.
func (r *EquipmentRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	equipmentRoutes := privateRoutes.Group("/equipment", mw.AuthMiddleware())
	equipmentRoutes.POST("", r.EquipmentController.Create)
	equipmentRoutes.GET("", r.EquipmentController.List)
	equipmentRoutes.GET("/:id", r.EquipmentController.Get)
	equipmentRoutes.PUT("/:id", r.EquipmentController.Update)
	equipmentRoutes.DELETE("/:id", r.EquipmentController.Delete)
	equipmentRoutes.POST("/:id/assign", r.EquipmentController.Assign)
	equipmentRoutes.POST("/:id/return", r.EquipmentController.Return)
	equipmentRoutes.POST("/:id/attachments", r.EquipmentController.CreateAttachment)
	equipmentRoutes.GET("/attachments/:attachmentId", r.EquipmentController.GetAttachment)
	equipmentRoutes.DELETE("/attachments/:attachmentId", r.EquipmentController.DeleteAttachment)

	studentRoutes := privateRoutes.Group("/students", mw.AuthMiddleware())
	studentRoutes.GET("/:studentId/equipment", r.EquipmentController.ListByStudent)
}
