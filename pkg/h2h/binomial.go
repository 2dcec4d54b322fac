package h2h

import (
	"fmt"
	"math"
)

// BinomialPMF evaluates P(X = k) for k successes in trials independent
// attempts of success probability p.
//
// The trial count arrives as a sum of two means and is generally not an
// integer, so the coefficient is evaluated through the gamma function:
//
//	C(n, k) = Γ(n+1) / (Γ(k+1) Γ(n-k+1))
//
// which agrees with the ordinary binomial coefficient whenever n is a
// non-negative integer. Setting Config.RoundTrials rounds n to the nearest
// integer first instead, which changes the output for fractional n; the
// continuous extension is the default.
func BinomialPMF(trials, p float64, k int) (float64, error) {
	if math.IsNaN(trials) || trials < 0 {
		return 0, fmt.Errorf("trial count %f: %w", trials, ErrInvalidParameter)
	}
	if p < 0 || p > 1 || math.IsNaN(p) {
		return 0, fmt.Errorf("probability %f outside [0, 1]: %w", p, ErrInvalidParameter)
	}
	if Config.RoundTrials {
		trials = math.Round(trials)
	}
	if k < 0 || float64(k) > math.Ceil(trials) {
		return 0, fmt.Errorf("target score %d outside 0..%d: %w", k, int(math.Ceil(trials)), ErrInvalidParameter)
	}

	// Degenerate probabilities make the log-space evaluation blow up, so
	// handle them directly
	if p == 0 {
		if k == 0 {
			return 1, nil
		}
		return 0, nil
	}
	if p == 1 {
		if float64(k) == trials {
			return 1, nil
		}
		return 0, nil
	}

	kf := float64(k)
	logCoeff := lgamma(trials+1) - lgamma(kf+1) - lgamma(trials-kf+1)
	logMass := logCoeff + kf*math.Log(p) + (trials-kf)*math.Log(1-p)
	mass := math.Exp(logMass)

	// Floating point slop can push the mass a hair over 1 for tiny trial
	// counts; clamp rather than surprise the caller
	if mass > 1 {
		mass = 1
	}
	return mass, nil
}

func lgamma(x float64) float64 {
	v, _ := math.Lgamma(x)
	return v
}
