package scheduling

import (
	"github.com/labstack/echo/v4"

	"syndic-api/core/cache"
	"syndic-api/core/database"
	"syndic-api/core/middleware"
	availabilityrepo "syndic-api/modules/availability/repository"
	availabilityservice "syndic-api/modules/availability/service"
	interventionrepo "syndic-api/modules/intervention/repository"
	notificationservice "syndic-api/modules/notification/service"
	"syndic-api/modules/scheduling/controller"
	"syndic-api/modules/scheduling/repository"
	"syndic-api/modules/scheduling/router"
	"syndic-api/modules/scheduling/service"
)

// Init initializes the scheduling module and registers routes. It owns the
// whole workflow surface, including availability submission, so the
// availability module has no routes of its own.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, resultCache *cache.Cache, notifier notificationservice.EnqueuerInterface) {
	interventionRepo := interventionrepo.NewInterventionRepository(db)
	availRepo := availabilityrepo.NewAvailabilityRepository(db)
	availSvc := availabilityservice.NewAvailabilityService(availRepo, interventionRepo)

	repo := repository.NewSchedulingRepository(db)
	svc := service.NewSchedulingService(&db, repo, interventionRepo, availRepo, availSvc, resultCache, notifier)
	ctrl := controller.NewSchedulingController(svc)

	router.NewSchedulingRouter(ctrl).Setup(e, mw)
}
