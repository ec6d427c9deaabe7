package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quantarc/option-engine/internal/pricing"
	"github.com/quantarc/option-engine/internal/sim"
	"github.com/quantarc/option-engine/internal/stream"
	"github.com/quantarc/option-engine/pkg/metrics"
	"github.com/quantarc/option-engine/pkg/models"
	"github.com/quantarc/option-engine/pkg/utils/errors"
	"github.com/quantarc/option-engine/pkg/utils/logger"
)

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	simulator    *sim.Simulator
	hub          *stream.Hub
	recorder     *metrics.Recorder
	defaultSteps int
	maxSteps     int
	log          *logger.Logger
}

// HandlersConfig bounds what a single request may ask for
type HandlersConfig struct {
	DefaultSteps int
	MaxSteps     int
}

// CreateHandlers creates new API handlers
func CreateHandlers(
	simulator *sim.Simulator,
	hub *stream.Hub,
	recorder *metrics.Recorder,
	cfg HandlersConfig,
) *Handlers {
	if cfg.DefaultSteps < 1 {
		cfg.DefaultSteps = 20
	}
	if cfg.MaxSteps < 1 {
		cfg.MaxSteps = 100000
	}

	return &Handlers{
		simulator:    simulator,
		hub:          hub,
		recorder:     recorder,
		defaultSteps: cfg.DefaultSteps,
		maxSteps:     cfg.MaxSteps,
		log:          logger.GetLogger("api.handlers"),
	}
}

// PricingResponse pairs the evaluated parameters with their Greeks bundle
type PricingResponse struct {
	Params models.OptionParams `json:"params"`
	Greeks models.Greeks       `json:"greeks"`
}

// HealthCheckHandler handles health check requests
func (h *Handlers) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// PriceHandler prices one option and returns the full Greeks bundle
func (h *Handlers) PriceHandler(c *gin.Context) {
	var params models.OptionParams
	if err := c.ShouldBindJSON(&params); err != nil {
		h.recorder.RecordPricingError("evaluate")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	start := time.Now()
	greeks, err := pricing.Evaluate(params)
	if err != nil {
		h.recorder.RecordPricingError("evaluate")
		h.log.Warnf("Rejected pricing request: %v", err)
		c.JSON(statusFor(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	h.recorder.RecordPricingCalc("evaluate", params.Type.String(), time.Since(start))
	c.JSON(http.StatusOK, PricingResponse{Params: params, Greeks: greeks})
}

// SimulateHandler runs one path simulation and returns the aligned
// sequences. The finished path is also broadcast to stream clients.
func (h *Handlers) SimulateHandler(c *gin.Context) {
	var req models.SimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	if req.Steps == 0 {
		req.Steps = h.defaultSteps
	}
	if req.Steps > h.maxSteps {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": errors.Newf("steps must not exceed %d", h.maxSteps).Error(),
		})
		return
	}

	start := time.Now()
	result, err := h.simulator.Simulate(req)
	if err != nil {
		h.log.Warnf("Rejected simulation request: %v", err)
		c.JSON(statusFor(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	h.recorder.RecordSimulation(req.OptionType.String(), req.Steps, time.Since(start))
	go h.hub.BroadcastResult(result)

	c.JSON(http.StatusOK, result)
}

// StreamHandler upgrades the connection and attaches it to the hub
func (h *Handlers) StreamHandler(c *gin.Context) {
	h.hub.ServeWS(c.Writer, c.Request)
}

// statusFor maps an application error to an HTTP status code
func statusFor(err error) int {
	switch errors.TypeOf(err) {
	case errors.ErrorTypeInvalidArgument:
		return http.StatusBadRequest
	case errors.ErrorTypeNotFound:
		return http.StatusNotFound
	case errors.ErrorTypeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
