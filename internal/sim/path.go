package sim

import (
	"math"
	"math/rand"
	"time"

	"github.com/quantarc/option-engine/internal/pricing"
	"github.com/quantarc/option-engine/pkg/models"
	"github.com/quantarc/option-engine/pkg/utils/errors"
	"github.com/quantarc/option-engine/pkg/utils/logger"
)

// Simulator drives a single geometric Brownian motion path of the
// underlying and re-prices the option at every step with the remaining
// time to expiry. Each Simulate call owns its generator, so concurrent
// simulations never share random state.
type Simulator struct {
	log *logger.Logger
}

// NewSimulator creates a new path simulator.
func NewSimulator() *Simulator {
	return &Simulator{
		log: logger.GetLogger("sim.path"),
	}
}

func validateRequest(req models.SimulationRequest) error {
	if !req.OptionType.Valid() {
		return errors.InvalidArgument("option type must be call or put")
	}
	if req.Spot <= 0 {
		return errors.InvalidArgument("initial spot must be positive")
	}
	if req.Strike <= 0 {
		return errors.InvalidArgument("strike price must be positive")
	}
	if req.Sigma <= 0 {
		return errors.InvalidArgument("volatility must be positive")
	}
	if req.Steps < 1 {
		return errors.InvalidArgument("steps must be at least 1")
	}
	return nil
}

// Simulate runs one path of steps+1 inclusive time points over [0, T] and
// returns the index-aligned spot and Greeks sequences. A non-nil seed
// makes the draw sequence fully reproducible; a nil seed draws a fresh
// time-derived one. An expiry at or below zero is not an error: the path
// collapses to a constant spot priced at its intrinsic boundary.
func (s *Simulator) Simulate(req models.SimulationRequest) (*models.PathResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	T := req.Expiry
	if T < 0 {
		T = 0
	}

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	n := req.Steps + 1
	result := &models.PathResult{
		Request: req,
		Times:   make([]float64, n),
		Spots:   make([]float64, n),
		Prices:  make([]float64, n),
		Deltas:  make([]float64, n),
		Gammas:  make([]float64, n),
		Vegas:   make([]float64, n),
		Thetas:  make([]float64, n),
		Rhos:    make([]float64, n),
	}

	dt := T / float64(req.Steps)
	driftTerm := (req.Rate - 0.5*req.Sigma*req.Sigma) * dt
	volTerm := req.Sigma * math.Sqrt(dt)

	result.Spots[0] = req.Spot
	for i := 0; i < req.Steps; i++ {
		z := rng.NormFloat64()
		result.Spots[i+1] = result.Spots[i] * math.Exp(driftTerm+volTerm*z)
	}

	for i := 0; i < n; i++ {
		// The i/steps form lands the last point on T exactly, which in
		// turn makes the final remaining expiry exactly zero.
		t := T * float64(i) / float64(req.Steps)
		result.Times[i] = t

		g, err := pricing.Evaluate(models.OptionParams{
			Type:   req.OptionType,
			Spot:   result.Spots[i],
			Strike: req.Strike,
			Expiry: math.Max(T-t, 0),
			Rate:   req.Rate,
			Sigma:  req.Sigma,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "pricing failed at step %d", i)
		}

		result.Prices[i] = g.Price
		result.Deltas[i] = g.Delta
		result.Gammas[i] = g.Gamma
		result.Vegas[i] = g.Vega
		result.Thetas[i] = g.Theta
		result.Rhos[i] = g.Rho
	}

	s.log.Debugf("Simulated %d-step %s path: S0=%.4f terminal=%.4f",
		req.Steps, req.OptionType, req.Spot, result.Spots[req.Steps])

	return result, nil
}
