package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Akibsaiyad14/clothsbillingandinventory/app/jobs"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/cache"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/database"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/queue"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/schedule"
)

var queueWorkersFlag int

// clothshop queue:work — run delivery workers without the HTTP server.
var queueWorkCmd = &cobra.Command{
	Use:   "queue:work",
	Short: "Start the queue workers",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		if err := cache.Connect(); err != nil {
			fmt.Println("cache unavailable, using in-memory queue:", err)
		}
		if rdb := cache.Client(); rdb != nil {
			queue.SetDriver(queue.NewRedisDriver(rdb))
		}
		queue.UseDB(database.DB)
		jobs.Register()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		workers := queueWorkersFlag
		if workers < 1 {
			workers = 4
		}

		fmt.Printf("Queue workers started (%d). Press Ctrl+C to stop.\n", workers)
		queue.StartWorkers(ctx, workers)

		<-ctx.Done()
		fmt.Println("\nQueue workers stopped.")
		return nil
	},
}

// clothshop schedule:run — run the recurring low-stock sweep standalone.
var scheduleRunCmd = &cobra.Command{
	Use:   "schedule:run",
	Short: "Start the task scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		queue.UseDB(database.DB)
		jobs.Register()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		schedule.Daily().Name("low-stock-sweep").WithoutOverlapping().Run(func() {
			if err := queue.Dispatch(&jobs.LowStockSweepJob{}); err != nil {
				fmt.Println("dispatch low stock sweep:", err)
			}
		})

		tasks := schedule.List()
		fmt.Println("Registered scheduled tasks:")
		for _, t := range tasks {
			fmt.Println("  •", t)
		}

		fmt.Println("Scheduler started. Press Ctrl+C to stop.")
		schedule.Start(ctx)
		queue.StartWorkers(ctx, 1)

		<-ctx.Done()
		fmt.Println("\nScheduler stopped.")
		return nil
	},
}

func init() {
	queueWorkCmd.Flags().IntVarP(&queueWorkersFlag, "workers", "w", 4, "Number of concurrent workers")
}
