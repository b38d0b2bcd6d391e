package router

import (
	"github.com/labstack/echo/v4"

	"caseload-api/core/middleware"
	"caseload-api/modules/ling6/controller"
)

// Ling6Router handles listening check routes.
type Ling6Router struct {
	Ling6Controller *controller.Ling6Controller
}

func NewLing6Router(ling6Controller *controller.Ling6Controller) *Ling6Router {
	return &Ling6Router{
		Ling6Controller: ling6Controller,
	}
}

// Setup registers Ling 6 routes.
func (r *Ling6Router) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	sessionRoutes := privateRoutes.Group("/ling6-sessions", mw.AuthMiddleware())
	sessionRoutes.POST("", r.Ling6Controller.CreateSession)
	sessionRoutes.GET("/:id", r.Ling6Controller.GetSession)
	sessionRoutes.DELETE("/:id", r.Ling6Controller.DeleteSession)

	studentRoutes := privateRoutes.Group("/students", mw.AuthMiddleware())
	studentRoutes.GET("/:studentId/ling6-sessions", r.Ling6Controller.ListByStudent)
}
