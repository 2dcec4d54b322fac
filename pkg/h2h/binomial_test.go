package h2h

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinomialPMFKnownValue(t *testing.T) {
	// C(10,5) * 0.5^10 = 252/1024
	prob, err := BinomialPMF(10, 0.5, 5)
	require.NoError(t, err)
	assert.InDelta(t, 0.24609375, prob, 1e-9)
}

func TestBinomialPMFSymmetry(t *testing.T) {
	// P(X=k; n, p) == P(X=n-k; n, 1-p) for integer n
	n := 12
	p := 0.3
	for k := 0; k <= n; k++ {
		a, err := BinomialPMF(float64(n), p, k)
		require.NoError(t, err)
		b, err := BinomialPMF(float64(n), 1-p, n-k)
		require.NoError(t, err)
		assert.InDelta(t, a, b, 1e-12, "k=%d", k)
	}
}

func TestBinomialPMFSumsToOne(t *testing.T) {
	n := 9
	p := 0.65
	total := 0.0
	for k := 0; k <= n; k++ {
		mass, err := BinomialPMF(float64(n), p, k)
		require.NoError(t, err)
		total += mass
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestBinomialPMFDegenerateProbabilities(t *testing.T) {
	prob, err := BinomialPMF(5, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, prob)

	prob, err = BinomialPMF(5, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, prob)

	prob, err = BinomialPMF(5, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 1.0, prob)

	prob, err = BinomialPMF(5, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 0.0, prob)
}

func TestBinomialPMFFractionalTrials(t *testing.T) {
	// The continuous extension must be finite, non-negative and defined
	// for every admissible k when the trial count is fractional
	trials := 3.7
	for k := 0; k <= int(math.Ceil(trials)); k++ {
		mass, err := BinomialPMF(trials, 0.4, k)
		require.NoError(t, err, "k=%d", k)
		assert.False(t, math.IsNaN(mass))
		assert.GreaterOrEqual(t, mass, 0.0)
		assert.LessOrEqual(t, mass, 1.0)
	}
}

func TestBinomialPMFRoundTrialsConfig(t *testing.T) {
	orig := Config.RoundTrials
	defer func() { Config.RoundTrials = orig }()

	Config.RoundTrials = true
	rounded, err := BinomialPMF(9.6, 0.5, 5)
	require.NoError(t, err)

	Config.RoundTrials = false
	exact, err := BinomialPMF(10, 0.5, 5)
	require.NoError(t, err)

	// 9.6 rounds to 10, so the two evaluations agree
	assert.InDelta(t, exact, rounded, 1e-12)
}

func TestBinomialPMFInvalidParameters(t *testing.T) {
	_, err := BinomialPMF(10, -0.1, 5)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = BinomialPMF(10, 1.1, 5)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = BinomialPMF(10, 0.5, -1)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = BinomialPMF(10, 0.5, 11)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = BinomialPMF(-1, 0.5, 0)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = BinomialPMF(10, math.NaN(), 5)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
