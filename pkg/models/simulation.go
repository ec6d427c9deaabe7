package models

// SimulationRequest describes one path simulation. Seed is optional: nil
// means draw a fresh seed, non-nil makes the path fully reproducible.
type SimulationRequest struct {
	ID         string     `json:"id,omitempty"`
	OptionType OptionType `json:"option_type"`
	Spot       float64    `json:"spot"`
	Strike     float64    `json:"strike"`
	Expiry     float64    `json:"expiry"`
	Rate       float64    `json:"rate"`
	Sigma      float64    `json:"sigma"`
	Steps      int        `json:"steps"`
	Seed       *int64     `json:"seed,omitempty"`
}

// PathResult holds the simulated path and the per-point pricing output.
// All sequences have length Steps+1 and are index-aligned; the result is
// created once per simulation and not mutated afterwards.
type PathResult struct {
	Request SimulationRequest `json:"request"`

	Times  []float64 `json:"times"`
	Spots  []float64 `json:"spots"`
	Prices []float64 `json:"prices"`
	Deltas []float64 `json:"deltas"`
	Gammas []float64 `json:"gammas"`
	Vegas  []float64 `json:"vegas"`
	Thetas []float64 `json:"thetas"`
	Rhos   []float64 `json:"rhos"`
}

// PathPoint is one time slice of a PathResult, used for streaming a
// simulation frame by frame.
type PathPoint struct {
	SimulationID string  `json:"simulation_id,omitempty"`
	Step         int     `json:"step"`
	Time         float64 `json:"time"`
	Spot         float64 `json:"spot"`
	Greeks       Greeks  `json:"greeks"`
}

// PointAt returns the time slice at index i.
func (r *PathResult) PointAt(i int) PathPoint {
	return PathPoint{
		SimulationID: r.Request.ID,
		Step:         i,
		Time:         r.Times[i],
		Spot:         r.Spots[i],
		Greeks: Greeks{
			Price: r.Prices[i],
			Delta: r.Deltas[i],
			Gamma: r.Gammas[i],
			Vega:  r.Vegas[i],
			Theta: r.Thetas[i],
			Rho:   r.Rhos[i],
		},
	}
}

// Len returns the number of time points in the path.
func (r *PathResult) Len() int {
	return len(r.Times)
}
