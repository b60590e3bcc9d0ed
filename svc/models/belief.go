package models

import "math"

// BeliefState is the decision-maker's current normal belief about one
// alternative's unknown mean effect, parameterized by posterior mean,
// posterior precision (inverse variance) and the number of observations
// folded in so far.
type BeliefState struct {
	Mu   float64 `json:"mu"`
	Beta float64 `json:"beta"`
	N    int     `json:"n"`
}

// NewBeliefState initializes a belief from the configured prior. The prior
// standard deviation must already have been validated as positive.
func NewBeliefState(prior Prior) BeliefState {
	return BeliefState{
		Mu:   prior.Mean,
		Beta: 1 / (prior.Std * prior.Std),
	}
}

// Update folds one noisy observation into the belief using the conjugate
// normal-normal rule. betaW is the observation precision 1/sigma_W^2.
// Precisions add; the posterior mean is the precision-weighted average of
// the prior mean and the observation.
func (b BeliefState) Update(observation, betaW float64) BeliefState {
	posterior := b.Beta + betaW
	return BeliefState{
		Mu:   (b.Beta*b.Mu + betaW*observation) / posterior,
		Beta: posterior,
		N:    b.N + 1,
	}
}

// StdDev returns the posterior standard deviation, 1/sqrt(beta).
func (b BeliefState) StdDev() float64 {
	return 1 / math.Sqrt(b.Beta)
}
