package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/quantarc/option-engine/config"
	"github.com/quantarc/option-engine/internal/sim"
	"github.com/quantarc/option-engine/internal/stream"
	"github.com/quantarc/option-engine/pkg/api"
	"github.com/quantarc/option-engine/pkg/metrics"
	"github.com/quantarc/option-engine/pkg/utils/logger"
)

const systemMetricsInterval = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.GetLogger("api.main").Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg.App.LogLevel, cfg.App.Environment)
	log := logger.GetLogger("api.main")
	log.Infof("Starting %s API server", cfg.App.Name)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	recorder := metrics.NewRecorder()
	simulator := sim.NewSimulator()
	hub := stream.NewHub(recorder)

	handlers := api.CreateHandlers(simulator, hub, recorder, api.HandlersConfig{
		DefaultSteps: cfg.Simulation.DefaultSteps,
		MaxSteps:     cfg.Simulation.MaxSteps,
	})

	server := api.NewServer(api.Config{
		Host:           cfg.API.Host,
		Port:           cfg.API.Port,
		ReadTimeout:    cfg.API.ReadTimeout,
		WriteTimeout:   cfg.API.WriteTimeout,
		Environment:    cfg.App.Environment,
		MetricsEnabled: cfg.Metrics.Enabled,
	}, handlers, recorder)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})

	g.Go(func() error {
		return server.Start()
	})

	g.Go(func() error {
		ticker := time.NewTicker(systemMetricsInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				recorder.UpdateSystemMetrics()
			}
		}
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Infof("Received signal %v, initiating shutdown", sig)
	case <-gctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.API.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Stop(shutdownCtx); err != nil {
		log.Errorf("API server shutdown error: %v", err)
	}

	cancel()
	if err := g.Wait(); err != nil {
		log.Errorf("Component error during shutdown: %v", err)
	}

	log.Info("Shutdown complete")
}
