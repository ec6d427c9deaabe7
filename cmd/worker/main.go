package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/quantarc/option-engine/config"
	"github.com/quantarc/option-engine/internal/kafka"
	"github.com/quantarc/option-engine/internal/sim"
	"github.com/quantarc/option-engine/pkg/metrics"
	"github.com/quantarc/option-engine/pkg/models"
	"github.com/quantarc/option-engine/pkg/utils/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.GetLogger("worker.main").Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg.App.LogLevel, cfg.App.Environment)
	log := logger.GetLogger("worker.main")
	log.Infof("Starting %s simulation worker", cfg.App.Name)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	recorder := metrics.NewRecorder()
	simulator := sim.NewSimulator()

	kafkaClient, err := kafka.NewClient(&kafka.Config{
		Brokers: cfg.Kafka.Brokers,
		GroupID: cfg.Kafka.GroupID,
	})
	if err != nil {
		log.Fatalf("Failed to create Kafka client: %v", err)
	}

	requestConsumer, err := kafkaClient.NewConsumer(cfg.Kafka.Topics.SimRequests, cfg.Kafka.GroupID)
	if err != nil {
		log.Fatalf("Failed to create request consumer: %v", err)
	}

	resultProducer, err := kafkaClient.NewProducer(cfg.Kafka.Topics.SimResults)
	if err != nil {
		log.Fatalf("Failed to create result producer: %v", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return runWorker(gctx, log, simulator, recorder, requestConsumer, resultProducer, cfg.Simulation.MaxSteps)
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Infof("Received signal %v, initiating shutdown", sig)
	case <-gctx.Done():
	}

	cancel()
	if err := g.Wait(); err != nil && err != context.Canceled {
		log.Errorf("Worker error during shutdown: %v", err)
	}

	if err := requestConsumer.Close(); err != nil {
		log.Errorf("Request consumer shutdown error: %v", err)
	}
	if err := resultProducer.Close(); err != nil {
		log.Errorf("Result producer shutdown error: %v", err)
	}

	log.Info("Shutdown complete")
}

// runWorker consumes simulation requests, runs them and produces results
// until ctx is cancelled. Malformed or invalid requests are logged and
// skipped; they never stop the loop.
func runWorker(
	ctx context.Context,
	log *logger.Logger,
	simulator *sim.Simulator,
	recorder *metrics.Recorder,
	consumer *kafka.Consumer,
	producer *kafka.Producer,
	maxSteps int,
) error {
	log.Info("Simulation worker loop started")

	for {
		message, err := consumer.ConsumeMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Errorf("Error consuming simulation request: %v", err)
			continue
		}

		var req models.SimulationRequest
		if err := json.Unmarshal(message.Value, &req); err != nil {
			log.Errorf("Failed to unmarshal simulation request: %v", err)
			continue
		}

		if req.Steps > maxSteps {
			log.Warnf("Rejecting simulation %s: %d steps exceeds limit %d", req.ID, req.Steps, maxSteps)
			continue
		}

		start := time.Now()
		result, err := simulator.Simulate(req)
		if err != nil {
			log.Errorf("Simulation %s failed: %v", req.ID, err)
			continue
		}
		recorder.RecordSimulation(req.OptionType.String(), req.Steps, time.Since(start))

		if err := producer.ProduceJSON(ctx, []byte(req.ID), result); err != nil {
			log.Errorf("Failed to produce result for simulation %s: %v", req.ID, err)
			continue
		}

		log.Infof("Completed simulation %s: %d steps, terminal spot %.4f",
			req.ID, req.Steps, result.Spots[req.Steps])
	}
}
