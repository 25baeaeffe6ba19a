package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finmirror/internal/interfaces/scheduler"
	"finmirror/internal/shared/config"
	"finmirror/internal/shared/telemetry"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Initialize telemetry (if enabled)
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Init(ctx, telemetry.Config{
			ServiceName:  cfg.Telemetry.ServiceName,
			Environment:  cfg.Telemetry.Environment,
			OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
			MetricsPort:  cfg.Telemetry.MetricsPort,
		})
		if err != nil {
			log.Printf("Warning: Failed to initialize telemetry: %v", err)
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := shutdown(shutdownCtx); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	// Initialize dependencies
	deps, err := NewDependencies(ctx, cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	// Initialize scheduler (if enabled)
	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched, err = scheduler.New(scheduler.Config{
			ScheduleTimes: cfg.Scheduler.ScheduleTimes,
			WorkerCount:   cfg.Scheduler.WorkerCount,
			JobDelay:      cfg.Scheduler.JobDelay,
			QueueSize:     cfg.Scheduler.QueueSize,
			RunOnStartup:  cfg.Scheduler.RunOnStartup,
			JobProvider: func(ctx context.Context) ([]scheduler.Job, error) {
				return []scheduler.Job{scheduler.NewMirrorSyncJob(deps.Orchestrator)}, nil
			},
		})
		if err != nil {
			return err
		}

		sched.Start()
		log.Printf("Scheduler started with times: %v", cfg.Scheduler.ScheduleTimes)
	} else {
		log.Println("Scheduler is disabled")
	}

	// Configure routes and start the server
	handler := SetupRoutes(deps)
	srv := StartServer(cfg.Server.Host+":"+cfg.Server.Port, handler)

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	GracefulShutdown(srv, sched, 30*time.Second)
	return nil
}
