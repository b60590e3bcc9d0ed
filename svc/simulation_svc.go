package svc

import (
	"fmt"
	"log"
	"math/rand"

	"trialsim-core/svc/models"
)

const (
	LogLevelDebug = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

var currentLogLevel = LogLevelInfo

func logf(level int, format string, args ...interface{}) {
	if level >= currentLogLevel {
		log.Printf(format, args...)
	}
}

// replicationSeedStride separates per-replication rng streams derived from
// the master seed (golden-ratio increment, as in splitmix-style seeding).
const replicationSeedStride int64 = 0x9e3779b9

// SimulationModel owns every alternative's belief state for the current
// replication. It turns a policy's choice into one noisy observation of that
// alternative's hidden ground truth and the matching Bayesian belief update,
// and hands back a snapshot of all beliefs.
//
// The model is a two-state machine: Idle until the first Reset, then
// InReplication for trials 0..Horizon-1. Observe beyond the horizon without
// an intervening Reset is a usage error.
type SimulationModel struct {
	cfg   models.ModelConfig
	betaW float64
	seed  int64

	rng         *rand.Rand
	beliefs     map[string]models.BeliefState
	truths      map[string]float64
	replication int
	trial       int
	active      bool
}

// NewSimulationModel validates the full configuration and returns a model in
// the Idle state. Every configuration error is reported here, never during a
// run.
func NewSimulationModel(cfg models.ModelConfig, seed int64) (*SimulationModel, error) {
	if len(cfg.Alternatives) == 0 {
		return nil, fmt.Errorf("%w: alternative set must not be empty", ErrConfiguration)
	}
	if cfg.SigmaW <= 0 {
		return nil, fmt.Errorf("%w: sigma_w must be positive, got %v", ErrConfiguration, cfg.SigmaW)
	}
	if cfg.Horizon <= 0 {
		return nil, fmt.Errorf("%w: horizon must be positive, got %d", ErrConfiguration, cfg.Horizon)
	}
	seen := make(map[string]bool, len(cfg.Alternatives))
	for _, alt := range cfg.Alternatives {
		if seen[alt] {
			return nil, fmt.Errorf("%w: duplicate alternative %q", ErrConfiguration, alt)
		}
		seen[alt] = true

		prior, ok := cfg.Priors[alt]
		if !ok {
			return nil, fmt.Errorf("%w: alternative %q has no prior", ErrConfiguration, alt)
		}
		if prior.Std <= 0 {
			return nil, fmt.Errorf("%w: alternative %q has non-positive prior std %v", ErrConfiguration, alt, prior.Std)
		}
		truth, ok := cfg.Truths[alt]
		if !ok {
			return nil, fmt.Errorf("%w: alternative %q has no truth distribution", ErrConfiguration, alt)
		}
		if err := truth.Validate(); err != nil {
			return nil, fmt.Errorf("%w: alternative %q: %v", ErrConfiguration, alt, err)
		}
	}
	return &SimulationModel{
		cfg:         cfg,
		betaW:       1 / (cfg.SigmaW * cfg.SigmaW),
		seed:        seed,
		replication: -1,
	}, nil
}

// Reset starts the next replication: fresh ground truths drawn from the
// configured distributions, beliefs back to the priors, trial counter to
// zero. The replication's random source is derived from the master seed and
// the replication index, so a fixed seed reproduces the full trajectory even
// if replications were executed out of order.
func (m *SimulationModel) Reset() {
	m.replication++
	m.rng = rand.New(rand.NewSource(m.seed + int64(m.replication)*replicationSeedStride))
	m.truths = make(map[string]float64, len(m.cfg.Alternatives))
	m.beliefs = make(map[string]models.BeliefState, len(m.cfg.Alternatives))
	for _, alt := range m.cfg.Alternatives {
		m.truths[alt] = m.cfg.Truths[alt].Draw(m.rng)
		m.beliefs[alt] = models.NewBeliefState(m.cfg.Priors[alt])
	}
	m.trial = 0
	m.active = true
	logf(LogLevelDebug, "reset: replication %d, truths %v", m.replication, m.truths)
}

// SampleObservation returns one noisy observation of a ground truth: a draw
// from a normal distribution centered on the truth with standard deviation
// sigmaW, taken from the provided random source.
func SampleObservation(rng *rand.Rand, groundTruth, sigmaW float64) float64 {
	return groundTruth + rng.NormFloat64()*sigmaW
}

// Observe plays one trial: it samples an observation for the chosen
// alternative, applies the conjugate Bayesian update to that alternative's
// belief only, and returns a snapshot of all beliefs tagged with the current
// replication and trial indices. A failed Observe mutates no belief.
func (m *SimulationModel) Observe(chosen string) (models.TrialRecord, error) {
	if !m.active {
		return models.TrialRecord{}, fmt.Errorf("%w: Observe called with no active replication", ErrUsage)
	}
	if m.trial >= m.cfg.Horizon {
		return models.TrialRecord{}, fmt.Errorf("%w: replication %d exhausted after %d trials, Reset required", ErrUsage, m.replication, m.cfg.Horizon)
	}
	belief, ok := m.beliefs[chosen]
	if !ok {
		return models.TrialRecord{}, fmt.Errorf("%w: unknown alternative %q", ErrUsage, chosen)
	}

	observation := SampleObservation(m.rng, m.truths[chosen], m.cfg.SigmaW)
	m.beliefs[chosen] = belief.Update(observation, m.betaW)

	record := models.TrialRecord{
		Replication: m.replication,
		Trial:       m.trial,
		Chosen:      chosen,
		Observation: observation,
		Beliefs:     m.snapshotBeliefs(),
	}
	m.trial++
	return record, nil
}

func (m *SimulationModel) snapshotBeliefs() map[string]models.BeliefState {
	snapshot := make(map[string]models.BeliefState, len(m.beliefs))
	for alt, belief := range m.beliefs {
		snapshot[alt] = belief
	}
	return snapshot
}

// Beliefs returns a copy of the current belief states.
func (m *SimulationModel) Beliefs() map[string]models.BeliefState {
	return m.snapshotBeliefs()
}

// Alternatives returns the configured alternative order, which is also the
// deterministic tie-break order for policies.
func (m *SimulationModel) Alternatives() []string {
	return m.cfg.Alternatives
}

// Horizon returns the number of trials per replication.
func (m *SimulationModel) Horizon() int {
	return m.cfg.Horizon
}
