package models

import (
	"fmt"
	"math/rand"
)

type DistributionKind string

const (
	DistributionPoint   DistributionKind = "point"
	DistributionUniform DistributionKind = "uniform"
	DistributionNormal  DistributionKind = "normal"
)

// Distribution is the configured sampling spec for an alternative's ground
// truth. A point distribution (or a zero-width uniform) models a fixed,
// known truth; uniform and normal model population uncertainty.
type Distribution struct {
	Kind  DistributionKind `yaml:"kind" json:"kind"`
	Value float64          `yaml:"value,omitempty" json:"value,omitempty"`
	Low   float64          `yaml:"low,omitempty" json:"low,omitempty"`
	High  float64          `yaml:"high,omitempty" json:"high,omitempty"`
	Mean  float64          `yaml:"mean,omitempty" json:"mean,omitempty"`
	Std   float64          `yaml:"std,omitempty" json:"std,omitempty"`
}

// Validate rejects malformed distribution specs. It is called once at
// configuration time; Draw never fails after Validate passes.
func (d Distribution) Validate() error {
	switch d.Kind {
	case DistributionPoint:
		return nil
	case DistributionUniform:
		if d.High < d.Low {
			return fmt.Errorf("uniform distribution has high %v below low %v", d.High, d.Low)
		}
		return nil
	case DistributionNormal:
		if d.Std < 0 {
			return fmt.Errorf("normal distribution has negative std %v", d.Std)
		}
		return nil
	default:
		return fmt.Errorf("unknown distribution kind %q", d.Kind)
	}
}

// Draw samples one ground-truth value from the configured distribution using
// the provided random source.
func (d Distribution) Draw(rng *rand.Rand) float64 {
	switch d.Kind {
	case DistributionUniform:
		return d.Low + rng.Float64()*(d.High-d.Low)
	case DistributionNormal:
		return d.Mean + rng.NormFloat64()*d.Std
	default:
		return d.Value
	}
}
