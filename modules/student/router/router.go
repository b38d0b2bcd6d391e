package router

import (
	"github.com/labstack/echo/v4"

	"caseload-api/core/middleware"
	"caseload-api/modules/student/controller"
)

// StudentRouter handles caseload student routes.
type StudentRouter struct {
	StudentController *controller.StudentController
}

func NewStudentRouter(studentController *controller.StudentController) *StudentRouter {
	return &StudentRouter{
		StudentController: studentController,
	}
}

// Setup registers student routes.
func (r *StudentRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	studentRoutes := privateRoutes.Group("/students", mw.AuthMiddleware())
	studentRoutes.POST("", r.StudentController.Create)
	studentRoutes.GET("", r.StudentController.List)
	studentRoutes.GET("/:id", r.StudentController.Get)
	studentRoutes.PUT("/:id", r.StudentController.Update)
	studentRoutes.DELETE("/:id", r.StudentController.Delete)
}
