package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"caseload-api/core/cache"
	"caseload-api/core/config"
	"caseload-api/core/database"
	"caseload-api/core/logger"
	"caseload-api/core/middleware"
	"caseload-api/core/storage"
	"caseload-api/core/worker"
	"caseload-api/modules/activity"
	"caseload-api/modules/calendar"
	"caseload-api/modules/equipment"
	"caseload-api/modules/goal"
	"caseload-api/modules/ling6"
	"caseload-api/modules/notification"
	"caseload-api/modules/servicelog"
	"caseload-api/modules/student"
)

// CustomValidator adapts validator/v10 to echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// Run boots the API: config, logger, database, cache, storage, HTTP routes
// and the reminder worker. Blocks until SIGINT/SIGTERM.
func Run() error {
	cfg, err := config.Init()
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}

	c, err := cache.Init(cfg.Redis)
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}

	store, err := storage.Init(cfg.Storage)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}

	mw := middleware.NewMiddleware(cfg)
	mw.Setup(e)

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/health", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	workerClient := worker.NewClient(cfg.Redis)

	// Module wiring. Notification comes first so the reminder handler and
	// equipment module can publish through it.
	notifSvc := notification.Init(e, db, mw)
	calSvc := calendar.Init(e, db, mw, c, workerClient)
	ling6.Init(e, db, mw)
	student.Init(e, db, mw)
	goal.Init(e, db, mw)
	servicelog.Init(e, db, mw, calSvc)
	equipment.Init(e, db, mw, store, notifSvc)
	activity.Init(e, db, mw)

	reminderHandler := calendar.NewReminderHandler(notifSvc, c)
	workerSrv := worker.StartServer(cfg.Redis, reminderHandler)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server:Run:Start", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server:Run:ShuttingDown")
	workerSrv.Shutdown()
	if err := workerClient.Close(); err != nil {
		logger.Warn("Server:Run:WorkerClose", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(ctx)
}
