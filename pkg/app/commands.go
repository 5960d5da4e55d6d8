package app

// pkg/app/commands.go — implementations for all CLI sub-commands.
// These are called from Application.Run() and use only framework packages.

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Akibsaiyad14/clothsbillingandinventory/config"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/cache"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/database"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/logger"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/migration"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/queue"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/router"
)

// cmdServe boots the HTTP server using the Application's handler.
func cmdServe(a *Application) error {
	for _, fn := range a.jobsFns {
		fn()
	}
	return startServer(a)
}

// cmdMigrate runs all pending migrations.
func cmdMigrate() error {
	if err := bootDB(); err != nil {
		return err
	}
	return migration.New(database.DB).Run()
}

// cmdMigrateRollback reverses the last migration batch.
func cmdMigrateRollback() error {
	if err := bootDB(); err != nil {
		return err
	}
	return migration.New(database.DB).Rollback()
}

// cmdMigrateStatus prints migration status.
func cmdMigrateStatus() error {
	if err := bootDB(); err != nil {
		return err
	}
	return migration.New(database.DB).Status()
}

// cmdSeed runs all registered seeders (global + per-application).
func cmdSeed(seeders []SeederFunc) error {
	if err := bootDB(); err != nil {
		return err
	}
	if len(seeders) == 0 {
		fmt.Println("No seeders registered. Use app.RegisterSeeder() or .Seeders() on Application.")
		return nil
	}
	for _, fn := range seeders {
		if err := fn(); err != nil {
			return err
		}
	}
	fmt.Printf("✅ Seeding complete (%d seeders ran)\n", len(seeders))
	return nil
}

// cmdQueueWork runs queue workers in the foreground without the HTTP
// server, for deploying delivery workers separately from the API.
func cmdQueueWork(a *Application) error {
	if err := bootDB(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		logger.Warn("cache unavailable, using in-memory queue", "error", err)
	} else if rdb := cache.Client(); rdb != nil {
		queue.SetDriver(queue.NewRedisDriver(rdb))
	}
	queue.UseDB(database.DB)

	for _, fn := range a.jobsFns {
		fn()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	queue.StartWorkers(ctx, 4)
	fmt.Println("Queue workers running. Ctrl-C to stop.")
	<-ctx.Done()
	return nil
}

// cmdRouteList prints all registered routes.
func cmdRouteList(a *Application) error {
	r := router.New()
	for _, fn := range a.routesFns {
		fn(r)
	}

	routes := r.Routes()
	if len(routes) == 0 {
		fmt.Println("No routes registered.")
		return nil
	}

	fmt.Printf("%-8s  %-50s  %s\n", "METHOD", "PATH", "NAME")
	fmt.Println(strings.Repeat("-", 80))
	for _, ri := range routes {
		fmt.Printf("%-8s  %-50s  %s\n", ri.Method, ri.Path, ri.Name)
	}
	return nil
}

// bootDB loads config and connects to the database.
func bootDB() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return database.Connect()
}
