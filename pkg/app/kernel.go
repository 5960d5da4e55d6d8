package app

// pkg/app/kernel.go — builds an http.Handler from the Application config.
// This file has NO imports of project-specific code (models, routes, etc).
// All project dependencies are injected via the Application builder methods.

import (
	"net/http"
	"time"

	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/database"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/metrics"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/middleware"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/reqid"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/router"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/session"
)

// buildHandler constructs the HTTP handler from the Application config.
// It sets up the global middleware stack, runs auto-migrations, then calls
// the route-registration callbacks.
func buildHandler(a *Application) http.Handler {
	if database.DB != nil && len(a.models) > 0 {
		database.DB.AutoMigrate(a.models...)
	}

	r := router.New()

	// Global middleware stack (outermost → innermost):
	//  1. Prometheus metrics — outermost for accurate total latency
	//  2. Recovery          — catches panics before they kill the goroutine
	//  3. Request ID        — inject unique ID before anything logs
	//  4. Logger            — logs request_id from context
	//  5. Session           — load/create session cookie via Redis
	//  6. CORS              — set CORS headers
	//  7. Rate limiter      — reject abusers early
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(session.Middleware(session.DefaultOptions()))
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(300, time.Minute))

	// Prometheus /metrics endpoint — no auth, no rate limit.
	r.HandleFunc("/metrics", metrics.Handler())

	for _, fn := range a.routesFns {
		fn(r)
	}

	return r.Handler()
}
