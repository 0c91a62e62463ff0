// Package server boots every Velora subsystem and runs the HTTP server
// until a shutdown signal arrives.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/gorm"

	"github.com/velora-shop/velora/app/jobs"
	"github.com/velora-shop/velora/app/listeners"
	"github.com/velora-shop/velora/app/routes"
	"github.com/velora-shop/velora/config"
	"github.com/velora-shop/velora/pkg/cache"
	"github.com/velora-shop/velora/pkg/database"
	grpcserver "github.com/velora-shop/velora/pkg/grpc"
	"github.com/velora-shop/velora/pkg/logger"
	"github.com/velora-shop/velora/pkg/metrics"
	"github.com/velora-shop/velora/pkg/middleware"
	"github.com/velora-shop/velora/pkg/migration"
	"github.com/velora-shop/velora/pkg/queue"
	"github.com/velora-shop/velora/pkg/reqid"
	"github.com/velora-shop/velora/pkg/router"
	"github.com/velora-shop/velora/pkg/schedule"
	"github.com/velora-shop/velora/pkg/storage"
)

// Run boots the application and blocks until SIGINT/SIGTERM.
//
// Boot order: config → log shipping → database (+migrations) → cache →
// storage → queue → listeners → scheduler → gRPC → HTTP.
func Run() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("server: load config: %w", err)
	}

	if config.LogMongoURI() != "" {
		h, err := logger.ConnectMongo()
		if err != nil {
			logger.Warn("server: mongo log shipping disabled", "error", err)
		} else {
			defer h.Close() //nolint:errcheck
		}
	}

	if err := database.Connect(); err != nil {
		return fmt.Errorf("server: connect database: %w", err)
	}
	if err := migration.New(database.DB).Run(); err != nil {
		return fmt.Errorf("server: run migrations: %w", err)
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("server: cache unavailable, serving from database", "error", err)
	}
	storage.Connect()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootQueue(ctx)
	listeners.Register()
	bootSchedule(ctx)

	grpcSrv, _, err := grpcserver.Start(config.GRPCPort())
	if err != nil {
		logger.Warn("server: grpc disabled", "error", err)
	}

	httpSrv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           buildHandler(database.DB),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("velora running", "addr", httpSrv.Addr, "env", config.AppEnv())
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("server: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server: http shutdown", "error", err)
	}
	grpcserver.Stop(grpcSrv)
	return nil
}

// buildHandler assembles the global middleware stack and the API routes.
func buildHandler(db *gorm.DB) http.Handler {
	r := router.New()

	// Outermost → innermost:
	//  1. Prometheus metrics — outermost for accurate total latency
	//  2. Recovery          — catches panics before they kill the request
	//  3. Request ID        — inject unique ID before anything logs
	//  4. Logger            — logs request_id from context
	//  5. CORS
	//  6. Rate limiter
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(200, time.Minute))

	// Prometheus scrape endpoint — no auth, no rate limit concerns at this volume.
	r.HandleFunc("/metrics", metrics.Handler())

	// Locally stored uploads.
	if config.StorageDisk() == "local" {
		r.Static("/storage", config.StorageLocalRoot())
	}

	routes.Register(r, db)
	return r.Handler()
}

// bootQueue selects the queue driver, wires failed-job persistence, and
// starts the in-process workers.
func bootQueue(ctx context.Context) {
	if config.QueueDriver() == "redis" && cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	queue.UseDB(database.DB)
	jobs.RegisterAll()
	queue.StartWorkers(ctx, 4)
}

// bootSchedule registers recurring tasks and starts the scheduler.
func bootSchedule(ctx context.Context) {
	schedule.Daily().At("07:00").Name("low-stock-digest").WithoutOverlapping().Run(func() {
		if err := queue.Dispatch(&jobs.LowStockDigestJob{}); err != nil {
			logger.Error("server: dispatch low-stock digest", "error", err)
		}
	})
	schedule.Start(ctx)
}
