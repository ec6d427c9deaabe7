package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder handles metrics recording and exposure
type Recorder struct {
	// API metrics
	apiRequestCounter   *prometheus.CounterVec
	apiLatencyHistogram *prometheus.HistogramVec

	// Pricing metrics
	pricingCalcCounter  *prometheus.CounterVec
	pricingCalcLatency  *prometheus.HistogramVec
	pricingErrorCounter *prometheus.CounterVec

	// Simulation metrics
	simulationCounter *prometheus.CounterVec
	simulationLatency *prometheus.HistogramVec
	simulationSteps   prometheus.Histogram

	// Stream metrics
	streamClientsGauge  prometheus.Gauge
	streamFramesCounter prometheus.Counter

	// System metrics
	goroutineCountGauge prometheus.Gauge
}

// NewRecorder creates a new metrics recorder
func NewRecorder() *Recorder {
	return &Recorder{
		apiRequestCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oe_api_requests_total",
				Help: "The total number of API requests",
			},
			[]string{"method", "path", "status"},
		),
		apiLatencyHistogram: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "oe_api_latency_seconds",
				Help:    "API request latency distribution",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
			},
			[]string{"method", "path"},
		),

		pricingCalcCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oe_pricing_calculations_total",
				Help: "The total number of pricing calculations",
			},
			[]string{"operation", "option_type"},
		),
		pricingCalcLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "oe_pricing_latency_seconds",
				Help:    "Pricing calculation latency distribution",
				Buckets: prometheus.ExponentialBuckets(0.000001, 4, 10),
			},
			[]string{"operation"},
		),
		pricingErrorCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oe_pricing_errors_total",
				Help: "The total number of rejected pricing requests",
			},
			[]string{"operation"},
		),

		simulationCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oe_simulations_total",
				Help: "The total number of path simulations",
			},
			[]string{"option_type"},
		),
		simulationLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "oe_simulation_latency_seconds",
				Help:    "Path simulation latency distribution",
				Buckets: prometheus.ExponentialBuckets(0.0001, 2, 15),
			},
			[]string{"option_type"},
		),
		simulationSteps: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "oe_simulation_steps",
				Help:    "Distribution of requested simulation step counts",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
		),

		streamClientsGauge: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "oe_stream_clients",
				Help: "Number of connected websocket stream clients",
			},
		),
		streamFramesCounter: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "oe_stream_frames_total",
				Help: "The total number of simulation frames broadcast",
			},
		),

		goroutineCountGauge: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "oe_goroutines",
				Help: "Number of running goroutines",
			},
		),
	}
}

// RecordAPIRequest records an API request with its status and latency
func (r *Recorder) RecordAPIRequest(method, path string, status int, latency time.Duration) {
	r.apiRequestCounter.WithLabelValues(method, path, statusLabel(status)).Inc()
	r.apiLatencyHistogram.WithLabelValues(method, path).Observe(latency.Seconds())
}

// RecordPricingCalc records a completed pricing calculation
func (r *Recorder) RecordPricingCalc(operation, optionType string, latency time.Duration) {
	r.pricingCalcCounter.WithLabelValues(operation, optionType).Inc()
	r.pricingCalcLatency.WithLabelValues(operation).Observe(latency.Seconds())
}

// RecordPricingError records a rejected pricing request
func (r *Recorder) RecordPricingError(operation string) {
	r.pricingErrorCounter.WithLabelValues(operation).Inc()
}

// RecordSimulation records a completed path simulation
func (r *Recorder) RecordSimulation(optionType string, steps int, latency time.Duration) {
	r.simulationCounter.WithLabelValues(optionType).Inc()
	r.simulationLatency.WithLabelValues(optionType).Observe(latency.Seconds())
	r.simulationSteps.Observe(float64(steps))
}

// RecordStreamClientConnect records a websocket client connecting
func (r *Recorder) RecordStreamClientConnect() {
	r.streamClientsGauge.Inc()
}

// RecordStreamClientDisconnect records a websocket client disconnecting
func (r *Recorder) RecordStreamClientDisconnect() {
	r.streamClientsGauge.Dec()
}

// RecordStreamFrame records one broadcast simulation frame
func (r *Recorder) RecordStreamFrame() {
	r.streamFramesCounter.Inc()
}

// UpdateSystemMetrics refreshes process-level gauges
func (r *Recorder) UpdateSystemMetrics() {
	r.goroutineCountGauge.Set(float64(runtime.NumGoroutine()))
}

func statusLabel(status int) string {
	switch {
	case status < 300:
		return "2xx"
	case status < 400:
		return "3xx"
	case status < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
