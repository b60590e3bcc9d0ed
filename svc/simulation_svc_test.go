package svc_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trialsim-core/svc"
	"trialsim-core/svc/models"
)

func twoDrugConfig() models.ModelConfig {
	return models.ModelConfig{
		Alternatives: []string{"A", "B"},
		Priors: map[string]models.Prior{
			"A": {Mean: 0.3, Std: 0.1},
			"B": {Mean: 0.2, Std: 0.1},
		},
		Truths: map[string]models.Distribution{
			"A": {Kind: models.DistributionPoint, Value: 0.3},
			"B": {Kind: models.DistributionPoint, Value: 0.2},
		},
		SigmaW:  0.05,
		Horizon: 5,
	}
}

func TestNewSimulationModelConfigurationErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.ModelConfig)
	}{
		{"empty alternative set", func(cfg *models.ModelConfig) { cfg.Alternatives = nil }},
		{"zero sigma_w", func(cfg *models.ModelConfig) { cfg.SigmaW = 0 }},
		{"negative sigma_w", func(cfg *models.ModelConfig) { cfg.SigmaW = -0.05 }},
		{"zero horizon", func(cfg *models.ModelConfig) { cfg.Horizon = 0 }},
		{"duplicate alternative", func(cfg *models.ModelConfig) {
			cfg.Alternatives = []string{"A", "A"}
		}},
		{"missing prior", func(cfg *models.ModelConfig) { delete(cfg.Priors, "B") }},
		{"zero prior std", func(cfg *models.ModelConfig) {
			cfg.Priors["A"] = models.Prior{Mean: 0.3, Std: 0}
		}},
		{"missing truth", func(cfg *models.ModelConfig) { delete(cfg.Truths, "A") }},
		{"invalid truth distribution", func(cfg *models.ModelConfig) {
			cfg.Truths["A"] = models.Distribution{Kind: models.DistributionNormal, Std: -1}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := twoDrugConfig()
			tc.mutate(&cfg)

			model, err := svc.NewSimulationModel(cfg, 1)
			require.Error(t, err)
			assert.True(t, errors.Is(err, svc.ErrConfiguration), "want ErrConfiguration, got %v", err)
			assert.Nil(t, model)
		})
	}
}

func TestObserveRequiresActiveReplication(t *testing.T) {
	model, err := svc.NewSimulationModel(twoDrugConfig(), 1)
	require.NoError(t, err)

	_, err = model.Observe("A")
	require.Error(t, err)
	assert.True(t, errors.Is(err, svc.ErrUsage))
}

func TestObserveUnknownAlternative(t *testing.T) {
	model, err := svc.NewSimulationModel(twoDrugConfig(), 1)
	require.NoError(t, err)
	model.Reset()

	before := model.Beliefs()
	_, err = model.Observe("C")
	require.Error(t, err)
	assert.True(t, errors.Is(err, svc.ErrUsage))
	assert.Equal(t, before, model.Beliefs(), "failed Observe must not mutate beliefs")
}

func TestObserveBeyondHorizonIsUsageError(t *testing.T) {
	model, err := svc.NewSimulationModel(twoDrugConfig(), 1)
	require.NoError(t, err)
	model.Reset()

	for i := 0; i < 5; i++ {
		_, err := model.Observe("A")
		require.NoError(t, err)
	}
	before := model.Beliefs()

	_, err = model.Observe("A")
	require.Error(t, err)
	assert.True(t, errors.Is(err, svc.ErrUsage))
	assert.Equal(t, before, model.Beliefs())

	// A Reset makes the model playable again.
	model.Reset()
	record, err := model.Observe("A")
	require.NoError(t, err)
	assert.Equal(t, 1, record.Replication)
	assert.Equal(t, 0, record.Trial)
}

func TestObserveUpdatesOnlyChosenAlternative(t *testing.T) {
	model, err := svc.NewSimulationModel(twoDrugConfig(), 1)
	require.NoError(t, err)
	model.Reset()

	betaW := 1 / (0.05 * 0.05)
	priorBeta := 1 / (0.1 * 0.1)

	record, err := model.Observe("A")
	require.NoError(t, err)

	assert.Equal(t, 1, record.Beliefs["A"].N)
	assert.InDelta(t, priorBeta+betaW, record.Beliefs["A"].Beta, 1e-9,
		"chosen alternative's precision grows by exactly 1/sigma_w^2")

	assert.Equal(t, 0, record.Beliefs["B"].N)
	assert.Equal(t, 0.2, record.Beliefs["B"].Mu)
	assert.InDelta(t, priorBeta, record.Beliefs["B"].Beta, 1e-9,
		"non-chosen alternative is untouched")
}

func TestBetaNonDecreasingAndCountsExact(t *testing.T) {
	model, err := svc.NewSimulationModel(twoDrugConfig(), 3)
	require.NoError(t, err)
	model.Reset()

	betaW := 1 / (0.05 * 0.05)
	pulls := []string{"A", "B", "A", "A", "B"}
	counts := map[string]int{}
	lastBeta := map[string]float64{}
	for alt, belief := range model.Beliefs() {
		lastBeta[alt] = belief.Beta
	}

	for _, chosen := range pulls {
		record, err := model.Observe(chosen)
		require.NoError(t, err)
		counts[chosen]++

		for alt, belief := range record.Beliefs {
			assert.GreaterOrEqual(t, belief.Beta, lastBeta[alt], "beta must be non-decreasing")
			if alt == chosen {
				assert.InDelta(t, lastBeta[alt]+betaW, belief.Beta, 1e-9)
			} else {
				assert.Equal(t, lastBeta[alt], belief.Beta)
			}
			lastBeta[alt] = belief.Beta
		}
		assert.Equal(t, counts[chosen], record.Beliefs[chosen].N)
	}
}

func TestObservationsReproducibleAcrossModels(t *testing.T) {
	pulls := []string{"A", "B", "A", "B", "A"}

	play := func() []models.TrialRecord {
		model, err := svc.NewSimulationModel(twoDrugConfig(), 42)
		require.NoError(t, err)
		var records []models.TrialRecord
		model.Reset()
		for _, chosen := range pulls {
			record, err := model.Observe(chosen)
			require.NoError(t, err)
			records = append(records, record)
		}
		return records
	}

	assert.Equal(t, play(), play(), "identical config and seed must replay identically")
}

func TestSampleObservationUsesProvidedSource(t *testing.T) {
	first := svc.SampleObservation(rand.New(rand.NewSource(5)), 0.3, 0.05)
	second := svc.SampleObservation(rand.New(rand.NewSource(5)), 0.3, 0.05)
	assert.Equal(t, first, second)
	assert.InDelta(t, 0.3, first, 0.5)
}
