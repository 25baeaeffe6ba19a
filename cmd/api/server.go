package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"finmirror/internal/interfaces/scheduler"
)

// StartServer creates the HTTP server and starts it in the background.
func StartServer(addr string, handler http.Handler) *http.Server {
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("HTTP server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	return srv
}

// GracefulShutdown stops the scheduler and the HTTP server.
func GracefulShutdown(srv *http.Server, sched *scheduler.Scheduler, timeout time.Duration) {
	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop the scheduler first so no new mirror runs start mid-shutdown
	if sched != nil {
		sched.Shutdown(timeout)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error shutting down HTTP server: %v", err)
	}

	log.Println("Server stopped")
}
