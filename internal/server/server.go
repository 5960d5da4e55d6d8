// Package server owns the process lifecycle: boot every subsystem in
// order, serve HTTP, and shut down gracefully on SIGINT/SIGTERM.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Akibsaiyad14/clothsbillingandinventory/app/jobs"
	"github.com/Akibsaiyad14/clothsbillingandinventory/config"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/cache"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/database"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/event"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/logger"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/queue"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/schedule"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/sse"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/storage"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/workerpool"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/ws"
)

// Start boots the application and serves HTTP until a shutdown signal.
// buildHandler runs after the database is connected so auto-migrations and
// route construction see a live connection.
func Start(buildHandler func() http.Handler) error {
	if err := config.Load(); err != nil {
		return err
	}
	if err := logger.EnableMongoSink(); err != nil {
		logger.Warn("mongo log sink disabled", "error", err)
	}
	defer logger.Shutdown()

	if err := database.Connect(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		logger.Warn("cache unavailable, continuing without redis", "error", err)
	}
	storage.Connect()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bootJobs(ctx)
	bootEvents()
	bootSchedule(ctx)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           buildHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// bootJobs wires the queue: redis driver when available, DB-persisted
// failures, registered job types, and the worker goroutines.
func bootJobs(ctx context.Context) {
	if rdb := cache.Client(); rdb != nil {
		queue.SetDriver(queue.NewRedisDriver(rdb))
	}
	queue.UseDB(database.DB)
	jobs.Register()
	queue.StartWorkers(ctx, 4)
}

// bootEvents fans application events out to the dashboard feeds (WebSocket
// and the SSE fallback) through a bounded worker pool.
func bootEvents() {
	pool := workerpool.New(8)
	event.UsePool(pool)

	forward := func(name string) event.Handler {
		return func(payload interface{}) {
			ws.PublishEvent(name, payload)
			sse.PublishEvent(name, payload)
		}
	}
	event.Listen(event.BillCreated, forward(event.BillCreated))
	event.Listen(event.StockAdjusted, forward(event.StockAdjusted))
	event.Listen(event.StockLow, forward(event.StockLow))
	event.Listen(event.ItemCreated, forward(event.ItemCreated))
	event.Listen(event.ItemDeleted, forward(event.ItemDeleted))

	// Audit trail for every committed bill.
	event.Listen(event.BillCreated, func(payload interface{}) {
		if b, err := json.Marshal(payload); err == nil {
			logger.Debug("bill event", "payload", string(b))
		}
	})
}

// bootSchedule registers recurring tasks and starts the scheduler.
func bootSchedule(ctx context.Context) {
	schedule.Daily().Name("low-stock-sweep").WithoutOverlapping().Run(func() {
		if err := queue.Dispatch(&jobs.LowStockSweepJob{}); err != nil {
			logger.Error("schedule: dispatch low stock sweep", "error", err)
		}
	})
	schedule.Start(ctx)
}
