package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantarc/option-engine/pkg/models"
	"github.com/quantarc/option-engine/pkg/utils/errors"
)

// Reference parameters used throughout: S=100, K=100, T=1, r=0.05, sigma=0.2.
const (
	refS     = 100.0
	refK     = 100.0
	refT     = 1.0
	refR     = 0.05
	refSigma = 0.2
)

func TestDistances(t *testing.T) {
	d1 := D1(refS, refK, refT, refR, refSigma)
	d2 := D2(refS, refK, refT, refR, refSigma)

	assert.InDelta(t, 0.35, d1, 1e-12)
	assert.InDelta(t, 0.15, d2, 1e-12)
	assert.InDelta(t, d1-refSigma*math.Sqrt(refT), d2, 1e-12)
}

func TestPriceReferenceCase(t *testing.T) {
	call, err := Price(models.OptionTypeCall, refS, refK, refT, refR, refSigma)
	require.NoError(t, err)
	put, err := Price(models.OptionTypePut, refS, refK, refT, refR, refSigma)
	require.NoError(t, err)

	assert.InEpsilon(t, 10.4506, call, 1e-4)
	assert.InEpsilon(t, 5.5735, put, 1e-4)
}

func TestPutCallParity(t *testing.T) {
	for _, S := range []float64{60, 90, 100, 110, 150} {
		for _, T := range []float64{0.1, 0.5, 1, 2} {
			for _, sigma := range []float64{0.05, 0.2, 0.6} {
				call, err := Price(models.OptionTypeCall, S, refK, T, refR, sigma)
				require.NoError(t, err)
				put, err := Price(models.OptionTypePut, S, refK, T, refR, sigma)
				require.NoError(t, err)

				parity := S - refK*math.Exp(-refR*T)
				assert.InDelta(t, parity, call-put, math.Abs(parity)*1e-6+1e-9,
					"S=%v T=%v sigma=%v", S, T, sigma)
			}
		}
	}
}

func TestPriceExpiryBoundary(t *testing.T) {
	call, err := Price(models.OptionTypeCall, 105, 100, 0, refR, refSigma)
	require.NoError(t, err)
	assert.Equal(t, 5.0, call)

	put, err := Price(models.OptionTypePut, 105, 100, 0, refR, refSigma)
	require.NoError(t, err)
	assert.Equal(t, 0.0, put)

	// The boundary value is volatility-free: any sigma gives the same payoff.
	sameCall, err := Price(models.OptionTypeCall, 105, 100, 0, refR, 0)
	require.NoError(t, err)
	assert.Equal(t, call, sameCall)
}

func TestPriceConvergesToIntrinsic(t *testing.T) {
	intrinsic := 5.0
	for _, T := range []float64{0.1, 0.01, 0.001, 0.00001} {
		call, err := Price(models.OptionTypeCall, 105, 100, T, refR, refSigma)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, call, intrinsic-1e-9)
	}

	call, err := Price(models.OptionTypeCall, 105, 100, 1e-9, refR, refSigma)
	require.NoError(t, err)
	assert.InDelta(t, intrinsic, call, 1e-3)
}

func TestDeltaReferenceAndBounds(t *testing.T) {
	callDelta, err := Delta(models.OptionTypeCall, refS, refK, refT, refR, refSigma)
	require.NoError(t, err)
	assert.InDelta(t, 0.6368306, callDelta, 1e-6)

	putDelta, err := Delta(models.OptionTypePut, refS, refK, refT, refR, refSigma)
	require.NoError(t, err)
	assert.InDelta(t, callDelta-1, putDelta, 1e-12)

	for _, S := range []float64{1, 50, 100, 200, 1000} {
		for _, T := range []float64{0, 0.5, 3} {
			cd, err := Delta(models.OptionTypeCall, S, refK, T, refR, refSigma)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, cd, 0.0)
			assert.LessOrEqual(t, cd, 1.0)

			pd, err := Delta(models.OptionTypePut, S, refK, T, refR, refSigma)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, pd, -1.0)
			assert.LessOrEqual(t, pd, 0.0)
		}
	}
}

func TestDeltaExpiryStepFunction(t *testing.T) {
	cases := []struct {
		optType models.OptionType
		S       float64
		want    float64
	}{
		{models.OptionTypeCall, 105, 1.0},
		{models.OptionTypeCall, 95, 0.0},
		{models.OptionTypeCall, 100, 0.0}, // at-the-money convention
		{models.OptionTypePut, 95, -1.0},
		{models.OptionTypePut, 105, 0.0},
		{models.OptionTypePut, 100, 0.0}, // at-the-money convention
	}

	for _, tc := range cases {
		got, err := Delta(tc.optType, tc.S, 100, 0, refR, refSigma)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s S=%v", tc.optType, tc.S)
	}
}

func TestGammaVega(t *testing.T) {
	gamma, err := Gamma(refS, refK, refT, refR, refSigma)
	require.NoError(t, err)
	assert.InDelta(t, 0.0187620, gamma, 1e-6)

	vega, err := Vega(refS, refK, refT, refR, refSigma)
	require.NoError(t, err)
	assert.InDelta(t, 37.5240, vega, 1e-3)

	for _, S := range []float64{50, 100, 180} {
		for _, T := range []float64{0, 0.5, 2} {
			g, err := Gamma(S, refK, T, refR, refSigma)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, g, 0.0)

			v, err := Vega(S, refK, T, refR, refSigma)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, v, 0.0)
		}
	}

	gammaAtExpiry, err := Gamma(refS, refK, 0, refR, refSigma)
	require.NoError(t, err)
	assert.Equal(t, 0.0, gammaAtExpiry)

	vegaAtExpiry, err := Vega(refS, refK, 0, refR, refSigma)
	require.NoError(t, err)
	assert.Equal(t, 0.0, vegaAtExpiry)
}

func TestThetaRho(t *testing.T) {
	callTheta, err := Theta(models.OptionTypeCall, refS, refK, refT, refR, refSigma)
	require.NoError(t, err)
	assert.InDelta(t, -6.4140, callTheta, 1e-3)

	putTheta, err := Theta(models.OptionTypePut, refS, refK, refT, refR, refSigma)
	require.NoError(t, err)
	assert.InDelta(t, -1.6579, putTheta, 1e-3)

	callRho, err := Rho(models.OptionTypeCall, refS, refK, refT, refR, refSigma)
	require.NoError(t, err)
	assert.InDelta(t, 53.2325, callRho, 1e-3)

	putRho, err := Rho(models.OptionTypePut, refS, refK, refT, refR, refSigma)
	require.NoError(t, err)
	assert.InDelta(t, -41.8905, putRho, 1e-3)

	for _, optType := range []models.OptionType{models.OptionTypeCall, models.OptionTypePut} {
		th, err := Theta(optType, refS, refK, 0, refR, refSigma)
		require.NoError(t, err)
		assert.Equal(t, 0.0, th)

		rh, err := Rho(optType, refS, refK, 0, refR, refSigma)
		require.NoError(t, err)
		assert.Equal(t, 0.0, rh)
	}
}

func TestPriceMonotonicInSpot(t *testing.T) {
	var prevCall, prevPut float64
	for i, S := range []float64{50, 70, 90, 100, 110, 130, 160} {
		call, err := Price(models.OptionTypeCall, S, refK, refT, refR, refSigma)
		require.NoError(t, err)
		put, err := Price(models.OptionTypePut, S, refK, refT, refR, refSigma)
		require.NoError(t, err)

		if i > 0 {
			assert.GreaterOrEqual(t, call, prevCall)
			assert.LessOrEqual(t, put, prevPut)
		}
		prevCall, prevPut = call, put
	}
}

func TestInvalidOptionType(t *testing.T) {
	bad := models.OptionType(7)

	_, err := Price(bad, refS, refK, refT, refR, refSigma)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = Delta(bad, refS, refK, refT, refR, refSigma)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = Theta(bad, refS, refK, refT, refR, refSigma)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = Rho(bad, refS, refK, refT, refR, refSigma)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestInvalidNumericDomain(t *testing.T) {
	cases := []struct {
		name           string
		S, K, T, sigma float64
	}{
		{"non-positive spot", -1, refK, refT, refSigma},
		{"zero spot", 0, refK, refT, refSigma},
		{"non-positive strike", refS, 0, refT, refSigma},
		{"zero volatility alive", refS, refK, refT, 0},
		{"negative volatility alive", refS, refK, refT, -0.3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Price(models.OptionTypeCall, tc.S, tc.K, tc.T, refR, tc.sigma)
			assert.True(t, errors.IsInvalidArgument(err))

			_, err = Gamma(tc.S, tc.K, tc.T, refR, tc.sigma)
			assert.True(t, errors.IsInvalidArgument(err))

			_, err = Vega(tc.S, tc.K, tc.T, refR, tc.sigma)
			assert.True(t, errors.IsInvalidArgument(err))
		})
	}

	// sigma is irrelevant once the option has expired
	_, err := Price(models.OptionTypeCall, refS, refK, 0, refR, 0)
	assert.NoError(t, err)
}

func TestEvaluateMatchesIndividualOperations(t *testing.T) {
	for _, optType := range []models.OptionType{models.OptionTypeCall, models.OptionTypePut} {
		for _, T := range []float64{0, 0.25, 1} {
			params := models.OptionParams{
				Type: optType, Spot: 95, Strike: refK, Expiry: T, Rate: refR, Sigma: refSigma,
			}
			bundle, err := Evaluate(params)
			require.NoError(t, err)

			price, _ := Price(optType, 95, refK, T, refR, refSigma)
			delta, _ := Delta(optType, 95, refK, T, refR, refSigma)
			gamma, _ := Gamma(95, refK, T, refR, refSigma)
			vega, _ := Vega(95, refK, T, refR, refSigma)
			theta, _ := Theta(optType, 95, refK, T, refR, refSigma)
			rho, _ := Rho(optType, 95, refK, T, refR, refSigma)

			assert.InDelta(t, price, bundle.Price, 1e-12)
			assert.InDelta(t, delta, bundle.Delta, 1e-12)
			assert.InDelta(t, gamma, bundle.Gamma, 1e-12)
			assert.InDelta(t, vega, bundle.Vega, 1e-12)
			assert.InDelta(t, theta, bundle.Theta, 1e-12)
			assert.InDelta(t, rho, bundle.Rho, 1e-12)
		}
	}
}

func TestGammaVegaTypeIndependent(t *testing.T) {
	callBundle, err := Evaluate(models.OptionParams{
		Type: models.OptionTypeCall, Spot: 110, Strike: refK, Expiry: 0.7, Rate: refR, Sigma: 0.35,
	})
	require.NoError(t, err)

	putBundle, err := Evaluate(models.OptionParams{
		Type: models.OptionTypePut, Spot: 110, Strike: refK, Expiry: 0.7, Rate: refR, Sigma: 0.35,
	})
	require.NoError(t, err)

	assert.Equal(t, callBundle.Gamma, putBundle.Gamma)
	assert.Equal(t, callBundle.Vega, putBundle.Vega)
}
