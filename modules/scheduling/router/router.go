package router

import (
	"github.com/labstack/echo/v4"

	"syndic-api/core/middleware"
	"syndic-api/modules/scheduling/controller"
)

// SchedulingRouter handles the scheduling workflow routes
type SchedulingRouter struct {
	SchedulingController *controller.SchedulingController
}

// NewSchedulingRouter creates a new router
func NewSchedulingRouter(schedulingController *controller.SchedulingController) *SchedulingRouter {
	return &SchedulingRouter{
		SchedulingController: schedulingController,
	}
}

// Setup registers the scheduling routes under the intervention resource
func (r *SchedulingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	schedulingRoutes := privateRoutes.Group("/interventions", mw.AuthMiddleware())

	schedulingRoutes.GET("/:id/availabilities", r.SchedulingController.GetAvailabilityData)
	schedulingRoutes.POST("/:id/availabilities", r.SchedulingController.SubmitAvailabilities)
	schedulingRoutes.POST("/:id/matching", r.SchedulingController.RunMatching)
	schedulingRoutes.PUT("/:id/slot", r.SchedulingController.SelectSlot)
}
