package entrypoint

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/reeflog/reeflog/internal/backend"
	"github.com/reeflog/reeflog/internal/binding"
	"github.com/reeflog/reeflog/internal/config"
)

// Run resolves the backend for the configured mode and keeps the
// process alive until an interrupt. In remote mode it also runs the
// offline queue drain schedule.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting ReefLog v%s (%s mode)", version, cfg.App.Mode)

	var binder binding.Binder
	rt, err := binder.Initialize(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize backend: %v", err)
	}

	rt.Client.SetAuthExpiredHandler(func() {
		log.Printf("Session expired; sign in again to continue")
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if rt.Backend.Mode == backend.ModeRemote {
		log.Printf("Offline queue drain schedule: %s", cfg.Queue.DrainSchedule)
		if err := rt.Scheduler.Start(ctx, cfg.Queue.DrainSchedule); err != nil {
			log.Fatalf("Failed to start queue scheduler: %v", err)
		}
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second
	log.Printf("Shutting down, waiting up to %v", timeout)

	done := make(chan struct{})
	go func() {
		if rt.Scheduler != nil {
			rt.Scheduler.Stop()
		}
		if err := rt.Close(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		log.Printf("Shutdown timed out")
	}

	log.Println("ReefLog exiting")
}
