package notification

import (
	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"

	"syndic-api/core/database"
	"syndic-api/core/middleware"
	"syndic-api/modules/notification/controller"
	"syndic-api/modules/notification/repository"
	"syndic-api/modules/notification/router"
	"syndic-api/modules/notification/service"
)

// Init initializes the notification module: HTTP routes, the asynq task
// handler, and the enqueuer handed to the scheduling module.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, client *asynq.Client, mux *asynq.ServeMux) service.EnqueuerInterface {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo)
	ctrl := controller.NewNotificationController(svc)

	router.NewNotificationRouter(ctrl).Setup(e, mw)
	mux.HandleFunc(service.TypeSlotSelected, svc.HandleSlotSelectedTask)

	return service.NewEnqueuer(client)
}
