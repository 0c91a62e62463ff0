package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/velora-shop/velora/app/jobs"
	"github.com/velora-shop/velora/config"
	"github.com/velora-shop/velora/pkg/cache"
	"github.com/velora-shop/velora/pkg/database"
	"github.com/velora-shop/velora/pkg/logger"
	"github.com/velora-shop/velora/pkg/queue"
	"github.com/velora-shop/velora/pkg/schedule"
)

var workerCount int

// velora queue:work
var queueWorkCmd = &cobra.Command{
	Use:   "queue:work",
	Short: "Process queued jobs until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if config.QueueDriver() == "redis" {
			if err := cache.Connect(); err != nil {
				logger.Warn("queue: redis unavailable, falling back to memory driver", "error", err)
			} else {
				queue.SetDriver(queue.NewRedisDriver(cache.RDB))
			}
		}
		queue.UseDB(database.DB)
		jobs.RegisterAll()

		fmt.Printf("Processing jobs with %d workers. Press Ctrl+C to stop.\n", workerCount)
		queue.StartWorkers(ctx, workerCount)
		<-ctx.Done()
		fmt.Println("\nShutting down workers…")
		return nil
	},
}

// velora schedule:run
var scheduleRunCmd = &cobra.Command{
	Use:   "schedule:run",
	Short: "Run the task scheduler until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		queue.UseDB(database.DB)
		jobs.RegisterAll()
		queue.StartWorkers(ctx, 2)

		schedule.Daily().At("07:00").Name("low-stock-digest").WithoutOverlapping().Run(func() {
			if err := queue.Dispatch(&jobs.LowStockDigestJob{}); err != nil {
				logger.Error("schedule: dispatch low stock digest", "error", err)
			}
		})

		for _, name := range schedule.List() {
			fmt.Println("scheduled:", name)
		}
		fmt.Println("Scheduler running. Press Ctrl+C to stop.")
		schedule.Start(ctx)
		<-ctx.Done()
		return nil
	},
}

func init() {
	queueWorkCmd.Flags().IntVarP(&workerCount, "workers", "w", 5, "number of concurrent workers")
}
