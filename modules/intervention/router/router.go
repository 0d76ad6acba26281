package router

import (
	"github.com/labstack/echo/v4"

	"syndic-api/core/middleware"
	"syndic-api/modules/intervention/controller"
)

// InterventionRouter handles intervention routes
type InterventionRouter struct {
	InterventionController *controller.InterventionController
}

// NewInterventionRouter creates a new router
func NewInterventionRouter(interventionController *controller.InterventionController) *InterventionRouter {
	return &InterventionRouter{
		InterventionController: interventionController,
	}
}

// Setup registers intervention routes
func (r *InterventionRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	interventionRoutes := privateRoutes.Group("/interventions", mw.AuthMiddleware())

	interventionRoutes.POST("", r.InterventionController.CreateIntervention)
	interventionRoutes.GET("", r.InterventionController.GetMyInterventions)
	interventionRoutes.GET("/reference/:reference", r.InterventionController.GetInterventionByReference)
	interventionRoutes.GET("/:id", r.InterventionController.GetIntervention)

	interventionRoutes.POST("/:id/participants", r.InterventionController.AddParticipant)
	interventionRoutes.DELETE("/:id/participants/:userId", r.InterventionController.RemoveParticipant)
}
