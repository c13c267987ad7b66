package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinema-dashboard/internal/apiclient"
	"github.com/iliyamo/cinema-dashboard/internal/config"
	"github.com/iliyamo/cinema-dashboard/internal/database"
	"github.com/iliyamo/cinema-dashboard/internal/handler"
	"github.com/iliyamo/cinema-dashboard/internal/middleware"
	"github.com/iliyamo/cinema-dashboard/internal/queue"
	"github.com/iliyamo/cinema-dashboard/internal/repository"
	"github.com/iliyamo/cinema-dashboard/internal/router"
	"github.com/iliyamo/cinema-dashboard/internal/service"
	"github.com/iliyamo/cinema-dashboard/internal/view"
)

func main() {
	cfg := config.Load()
	log := config.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	renderer, err := view.New()
	if err != nil {
		log.WithError(err).Fatal("parse templates")
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unavailable; rate limiting and page cache disabled")
	} else {
		defer rdb.Close()
	}

	api := apiclient.New(cfg.APIBaseURL, cfg.APITimeout)

	var auditor handler.Auditor = handler.NopAuditor{}
	if cfg.Audit.Enabled {
		auditor = service.NewAuditPublisher(cfg.Audit.AMQPURL, cfg.Audit.Queue, log)
	}
	if cfg.Audit.ConsumerEnabled {
		startAuditConsumer(ctx, cfg.Audit, log)
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.HTTPErrorHandler = view.ErrorHandler(log)
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(middleware.LoadSession(cfg.JWTSecret, log))

	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, log)
	cache := middleware.NewPageCache(config.LoadCacheConfig(), rdb, log)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(api, cfg.JWTSecret, cfg.CookieSecure, log), limit)
	router.RegisterPublic(e, handler.NewCatalogHandler(api, log), cache, limit)
	router.RegisterDashboard(e, handler.NewDashboardHandler(api, auditor, log), limit)

	addr := ":" + cfg.Port
	go func() {
		log.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env, "api": cfg.APIBaseURL}).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown")
	}
}

// startAuditConsumer opens MySQL and stores audit events in the
// background until ctx ends.  Failing to reach the database only
// disables the consumer.
func startAuditConsumer(ctx context.Context, cfg config.AuditConfig, log *logrus.Logger) {
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.WithError(err).Error("audit consumer disabled: mysql unavailable")
		return
	}
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.WithError(err).Error("audit consumer disabled: schema")
		_ = db.Close()
		return
	}
	store := repository.NewAuditRepo(db)
	clog := log.WithField("component", "audit-consumer")
	go func() {
		defer db.Close()
		if err := queue.StartAuditConsumer(ctx, cfg.AMQPURL, cfg.Queue, store, clog); err != nil && !errors.Is(err, context.Canceled) {
			clog.WithError(err).Error("stopped")
		}
	}()
}
