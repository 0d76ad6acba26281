package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"syndic-api/core/cache"
	"syndic-api/core/config"
	"syndic-api/core/database"
	"syndic-api/core/logger"
	"syndic-api/core/middleware"
	"syndic-api/modules/intervention"
	"syndic-api/modules/notification"
	"syndic-api/modules/scheduling"
)

const shutdownTimeout = 10 * time.Second

// Run wires the whole application: config, database, redis, the asynq worker
// and every module's routes. It blocks until SIGINT/SIGTERM and then shuts
// down gracefully.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Init(cfg.LogLevel)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return fmt.Errorf("init redis: %w", err)
	}
	defer redisClient.Close()

	resultCache := cache.NewCache(redisClient)

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	asynqClient := asynq.NewClient(redisOpt)
	defer asynqClient.Close()

	asynqServer := asynq.NewServer(redisOpt, asynq.Config{Concurrency: 10})
	mux := asynq.NewServeMux()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())

	mw := middleware.NewMiddleware(cfg)

	notifier := notification.Init(e, db, mw, asynqClient, mux)
	intervention.Init(e, db, mw)
	scheduling.Init(e, db, mw, resultCache, notifier)

	go func() {
		if err := asynqServer.Run(mux); err != nil {
			logger.Error("Server:Run asynq worker stopped", err)
		}
	}()

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server:Run http server stopped", err)
		}
	}()

	logger.Info("Server started", "port", cfg.Server.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")

	asynqServer.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return nil
}
