package pricing

import (
	"math"

	"github.com/quantarc/option-engine/pkg/models"
	"github.com/quantarc/option-engine/pkg/utils/errors"
)

// D1 returns the first standardized distance of the Black-Scholes model.
// Precondition: T > 0 and sigma > 0. The exported pricing operations guard
// this internally; direct callers are responsible for it themselves.
func D1(S, K, T, r, sigma float64) float64 {
	return (math.Log(S/K) + (r+0.5*sigma*sigma)*T) / (sigma * math.Sqrt(T))
}

// D2 returns the second standardized distance, d1 - sigma*sqrt(T).
// Same precondition as D1.
func D2(S, K, T, r, sigma float64) float64 {
	return D1(S, K, T, r, sigma) - sigma*math.Sqrt(T)
}

// validateInputs rejects parameter sets that would send log or sqrt a
// non-positive argument. Volatility is only constrained while the option
// is alive; at T <= 0 the boundary formulas never touch it.
func validateInputs(S, K, T, sigma float64) error {
	if S <= 0 {
		return errors.InvalidArgument("spot price must be positive")
	}
	if K <= 0 {
		return errors.InvalidArgument("strike price must be positive")
	}
	if T > 0 && sigma <= 0 {
		return errors.InvalidArgument("volatility must be positive when the option is alive")
	}
	return nil
}

// Price returns the Black-Scholes price of a European option. At T <= 0 it
// returns the intrinsic payoff, the terminal boundary condition of the
// pricing PDE: no discounting, no volatility dependence.
func Price(optionType models.OptionType, S, K, T, r, sigma float64) (float64, error) {
	if !optionType.Valid() {
		return 0, errors.InvalidArgument("option type must be call or put")
	}
	if err := validateInputs(S, K, T, sigma); err != nil {
		return 0, err
	}

	if T <= 0 {
		if optionType == models.OptionTypeCall {
			return math.Max(S-K, 0), nil
		}
		return math.Max(K-S, 0), nil
	}

	d1 := D1(S, K, T, r, sigma)
	d2 := d1 - sigma*math.Sqrt(T)
	if optionType == models.OptionTypeCall {
		return S*NormCDF(d1) - K*math.Exp(-r*T)*NormCDF(d2), nil
	}
	return K*math.Exp(-r*T)*NormCDF(-d2) - S*NormCDF(-d1), nil
}

// Delta returns the sensitivity of the option price to the spot. At expiry
// delta is a step function; at the exact boundary S == K both variants
// return 0.0, and that convention is part of the contract.
func Delta(optionType models.OptionType, S, K, T, r, sigma float64) (float64, error) {
	if !optionType.Valid() {
		return 0, errors.InvalidArgument("option type must be call or put")
	}
	if err := validateInputs(S, K, T, sigma); err != nil {
		return 0, err
	}

	if T <= 0 {
		if optionType == models.OptionTypeCall {
			if S > K {
				return 1.0, nil
			}
			return 0.0, nil
		}
		if S < K {
			return -1.0, nil
		}
		return 0.0, nil
	}

	d1 := D1(S, K, T, r, sigma)
	if optionType == models.OptionTypeCall {
		return NormCDF(d1), nil
	}
	return NormCDF(d1) - 1, nil
}

// Gamma returns the curvature of the option price in the spot. Gamma is
// identical for calls and puts and vanishes at expiry.
func Gamma(S, K, T, r, sigma float64) (float64, error) {
	if err := validateInputs(S, K, T, sigma); err != nil {
		return 0, err
	}
	if T <= 0 {
		return 0.0, nil
	}
	d1 := D1(S, K, T, r, sigma)
	return NormPDF(d1) / (S * sigma * math.Sqrt(T)), nil
}

// Vega returns the sensitivity of the option price to volatility, per unit
// of volatility. Identical for calls and puts; zero at expiry.
func Vega(S, K, T, r, sigma float64) (float64, error) {
	if err := validateInputs(S, K, T, sigma); err != nil {
		return 0, err
	}
	if T <= 0 {
		return 0.0, nil
	}
	d1 := D1(S, K, T, r, sigma)
	return S * NormPDF(d1) * math.Sqrt(T), nil
}

// Theta returns the sensitivity of the option price to the passage of time,
// per year. Zero at expiry.
func Theta(optionType models.OptionType, S, K, T, r, sigma float64) (float64, error) {
	if !optionType.Valid() {
		return 0, errors.InvalidArgument("option type must be call or put")
	}
	if err := validateInputs(S, K, T, sigma); err != nil {
		return 0, err
	}
	if T <= 0 {
		return 0.0, nil
	}

	d1 := D1(S, K, T, r, sigma)
	d2 := d1 - sigma*math.Sqrt(T)
	term1 := -(S * NormPDF(d1) * sigma) / (2 * math.Sqrt(T))
	if optionType == models.OptionTypeCall {
		return term1 - r*K*math.Exp(-r*T)*NormCDF(d2), nil
	}
	return term1 + r*K*math.Exp(-r*T)*NormCDF(-d2), nil
}

// Rho returns the sensitivity of the option price to the risk-free rate,
// per unit of rate. Zero at expiry.
func Rho(optionType models.OptionType, S, K, T, r, sigma float64) (float64, error) {
	if !optionType.Valid() {
		return 0, errors.InvalidArgument("option type must be call or put")
	}
	if err := validateInputs(S, K, T, sigma); err != nil {
		return 0, err
	}
	if T <= 0 {
		return 0.0, nil
	}

	d2 := D2(S, K, T, r, sigma)
	if optionType == models.OptionTypeCall {
		return K * T * math.Exp(-r*T) * NormCDF(d2), nil
	}
	return -K * T * math.Exp(-r*T) * NormCDF(-d2), nil
}

// Evaluate computes the price and all five Greeks for one parameter set,
// sharing the d1/d2 evaluation across the bundle.
func Evaluate(p models.OptionParams) (models.Greeks, error) {
	if !p.Type.Valid() {
		return models.Greeks{}, errors.InvalidArgument("option type must be call or put")
	}
	if err := validateInputs(p.Spot, p.Strike, p.Expiry, p.Sigma); err != nil {
		return models.Greeks{}, err
	}

	S, K, T, r, sigma := p.Spot, p.Strike, p.Expiry, p.Rate, p.Sigma

	if T <= 0 {
		g := models.Greeks{}
		if p.Type == models.OptionTypeCall {
			g.Price = math.Max(S-K, 0)
			if S > K {
				g.Delta = 1.0
			}
		} else {
			g.Price = math.Max(K-S, 0)
			if S < K {
				g.Delta = -1.0
			}
		}
		return g, nil
	}

	sqrtT := math.Sqrt(T)
	disc := math.Exp(-r * T)
	d1 := D1(S, K, T, r, sigma)
	d2 := d1 - sigma*sqrtT
	pdf1 := NormPDF(d1)

	g := models.Greeks{
		Gamma: pdf1 / (S * sigma * sqrtT),
		Vega:  S * pdf1 * sqrtT,
	}
	if p.Type == models.OptionTypeCall {
		g.Price = S*NormCDF(d1) - K*disc*NormCDF(d2)
		g.Delta = NormCDF(d1)
		g.Theta = -(S*pdf1*sigma)/(2*sqrtT) - r*K*disc*NormCDF(d2)
		g.Rho = K * T * disc * NormCDF(d2)
	} else {
		g.Price = K*disc*NormCDF(-d2) - S*NormCDF(-d1)
		g.Delta = NormCDF(d1) - 1
		g.Theta = -(S*pdf1*sigma)/(2*sqrtT) + r*K*disc*NormCDF(-d2)
		g.Rho = -K * T * disc * NormCDF(-d2)
	}
	return g, nil
}
