package intervention

import (
	"github.com/labstack/echo/v4"

	"syndic-api/core/database"
	"syndic-api/core/middleware"
	"syndic-api/modules/intervention/controller"
	"syndic-api/modules/intervention/repository"
	"syndic-api/modules/intervention/router"
	"syndic-api/modules/intervention/service"
)

// Init initializes the intervention module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) {
	repo := repository.NewInterventionRepository(db)
	svc := service.NewInterventionService(repo)
	ctrl := controller.NewInterventionController(svc)
	rtr := router.NewInterventionRouter(ctrl)

	rtr.Setup(e, mw)
}
