package server

import (
	"club-api/core/cache"
	"club-api/core/config"
	"club-api/core/constants"
	"club-api/core/database"
	"club-api/core/logger"
	"club-api/core/mail"
	appMiddleware "club-api/core/middleware"
	"club-api/core/realtime"
	"club-api/core/storage"
	"club-api/core/worker"
	"club-api/modules/auth"
	"club-api/modules/coach"
	"club-api/modules/event"
	"club-api/modules/team"
	"club-api/modules/timesheet"
	"context"
	stdErrors "errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"
)

// Run loads configuration, wires every module and serves until SIGINT or
// SIGTERM. The HTTP server, the task worker and the digest scheduler share one
// lifetime: when any of them fails the others are stopped.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Log.Level, cfg.Server.Env)
	loc := cfg.Server.Location()

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.Close()

	redisCache := cache.NewCache(cfg.Redis)
	pingCtx, cancel := context.WithTimeout(context.Background(), constants.DefaultTimeout)
	err = redisCache.Ping(pingCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}

	queue := worker.NewClient(cfg.Redis)
	defer queue.Close()

	hub := realtime.NewHub(cfg.CORS.Origins)
	e := newEcho(cfg, redisCache)
	mw := appMiddleware.NewMiddleware(redisCache)

	auth.Init(e, db, redisCache, mw, queue)
	coach.Init(e, db, mw, storage.New(cfg.S3))
	team.Init(e, db, mw, hub, loc)
	timesheet.Init(e, db, mw, loc)
	events := event.Init(e, db, mw, hub, loc)

	processor := worker.NewProcessor(mail.NewSMTPSender(cfg.SMTP), events, queue, loc)
	tasks := worker.NewServer(cfg.Redis, cfg.Worker, processor)
	scheduler, err := worker.NewScheduler(cfg.Worker.DigestCron, loc, queue)
	if err != nil {
		return fmt.Errorf("schedule digest %q: %w", cfg.Worker.DigestCron, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		logger.Info("Server:Start", "addr", addr, "timezone", loc.String())
		if err := e.Start(addr); err != nil && !stdErrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()
		logger.Info("Server:Shutdown")
		return e.Shutdown(shutdownCtx)
	})
	g.Go(func() error { return tasks.Run(ctx) })
	g.Go(func() error { return scheduler.Run(ctx) })

	return g.Wait()
}

func newEcho(cfg *config.Config, c cache.Cache) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORS.Origins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("HTTP", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency, "request_id", v.RequestID)
			return nil
		},
	}))
	if cfg.RateLimit.RPS > 0 {
		e.Use(appMiddleware.NewMiddleware(c).RateLimiter(cfg.RateLimit))
	}

	e.GET("/health", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	return e
}
