package svc

import (
	"fmt"

	"trialsim-core/db"
	"trialsim-core/svc/models"
)

// SweepService grid-searches a policy's theta parameter against a fixed
// scenario. It constructs a fresh model per theta so every run replays the
// same seeded randomness, stores each trajectory in the RunStore, and
// reports a summary per theta. It consumes nothing but the trial records.
type SweepService struct {
	store *db.RunStore
}

// NewSweepService initializes and returns a new SweepService.
func NewSweepService(store *db.RunStore) *SweepService {
	return &SweepService{store: store}
}

// SweepPoint summarizes one theta setting of a sweep.
type SweepPoint struct {
	Theta           float64
	RunID           string
	MeanObservation float64
}

// Sweep runs the given policy kind once per theta and returns one summary
// point per theta, in input order.
func (s *SweepService) Sweep(cfg models.ModelConfig, seed int64, kind PolicyKind, thetas []float64, nReplications int) ([]SweepPoint, error) {
	if len(thetas) == 0 {
		return nil, fmt.Errorf("%w: sweep requires at least one theta", ErrConfiguration)
	}
	points := make([]SweepPoint, 0, len(thetas))
	for _, theta := range thetas {
		model, err := NewSimulationModel(cfg, seed)
		if err != nil {
			return nil, err
		}

		var policy *Policy
		switch kind {
		case PolicyUCB:
			policy, err = NewUCBPolicy(model, theta)
		case PolicyIntervalEstimation:
			policy, err = NewIntervalEstimationPolicy(model, theta)
		default:
			return nil, fmt.Errorf("%w: unknown policy kind %q", ErrConfiguration, kind)
		}
		if err != nil {
			return nil, err
		}

		result, err := policy.Run(nReplications)
		if err != nil {
			return nil, err
		}
		if err := s.store.StoreRun(result); err != nil {
			return nil, fmt.Errorf("failed to store run for theta %v: %w", theta, err)
		}
		points = append(points, SweepPoint{
			Theta:           theta,
			RunID:           result.RunID,
			MeanObservation: meanObservation(result.Records),
		})
	}
	return points, nil
}

func meanObservation(records []models.TrialRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	total := 0.0
	for _, record := range records {
		total += record.Observation
	}
	return total / float64(len(records))
}
