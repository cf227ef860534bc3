package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/config"
	"github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/database"
	"github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/handler"
	"github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/logger"
	"github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/metrics"
	"github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/repository"
	"github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/router"
	"github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/service/eventpublisher"

	echomw "github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/middleware"
)

const serviceName = "timesheet-platform-backend"

func main() {
	// .env is optional; real deployments set variables in the environment.
	_ = godotenv.Load()

	cfg := config.Load()

	if err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
		ServiceName: serviceName,
	}); err != nil {
		log.Fatalf("logger init: %v", err)
	}
	zlog := logger.GetLogger()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		zlog.Fatal("database connect failed", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		zlog.Fatal("schema setup failed", zap.Error(err))
	}
	cancel()

	// Optional collaborators: a nil redis client disables response
	// caching, an empty broker URL disables event publishing.
	rdb := config.NewRedisClient()
	if rdb == nil {
		zlog.Warn("redis unavailable, version response cache disabled")
	}
	events := eventpublisher.New(cfg.AMQPURL)
	if events == nil {
		zlog.Info("no broker configured, event publishing disabled")
	}

	agencyRepo := repository.NewAgencyRepo(db)
	settingRepo := repository.NewSettingRepo(db)
	licenseRepo := repository.NewLicenseRepo(db)
	versionRepo := repository.NewVersionRepo(db)

	httpMetrics := metrics.NewHTTPMetrics(serviceName)
	adminHandler := handler.NewAdminHandler(agencyRepo, settingRepo, licenseRepo, versionRepo, events)
	clientHandler := handler.NewClientHandler(licenseRepo, versionRepo, events, httpMetrics)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.RequestID())
	e.Use(logger.Middleware())
	e.Use(httpMetrics.Middleware())

	router.RegisterRoutes(e)
	router.RegisterAdmin(e, adminHandler, cfg.SuperAdminKey)
	router.RegisterClient(e, clientHandler, agencyRepo, config.LoadCacheConfig(), rdb)

	addr := ":" + cfg.Port
	zlog.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))

	if err := e.Start(addr); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
