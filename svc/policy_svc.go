package svc

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"trialsim-core/svc/models"
)

type PolicyKind string

const (
	PolicyUCB                PolicyKind = "ucb"
	PolicyIntervalEstimation PolicyKind = "interval_estimation"
)

// Policy selects the next alternative each trial and drives the replication
// loop against a SimulationModel. UCB and interval estimation share the loop
// and differ only in the scoring rule.
type Policy struct {
	model *SimulationModel
	kind  PolicyKind
	theta float64
}

// NewUCBPolicy builds an upper-confidence-bound policy. theta scales the
// count-based exploration bonus; theta = 0 degenerates to greedy selection
// by posterior mean.
func NewUCBPolicy(model *SimulationModel, theta float64) (*Policy, error) {
	return newPolicy(model, PolicyUCB, theta)
}

// NewIntervalEstimationPolicy builds an interval-estimation policy. theta is
// the z-score multiplier on the posterior standard deviation.
func NewIntervalEstimationPolicy(model *SimulationModel, theta float64) (*Policy, error) {
	return newPolicy(model, PolicyIntervalEstimation, theta)
}

func newPolicy(model *SimulationModel, kind PolicyKind, theta float64) (*Policy, error) {
	if model == nil {
		return nil, fmt.Errorf("%w: policy requires a simulation model", ErrConfiguration)
	}
	if theta < 0 {
		return nil, fmt.Errorf("%w: theta must be non-negative, got %v", ErrConfiguration, theta)
	}
	return &Policy{model: model, kind: kind, theta: theta}, nil
}

// Select returns the alternative with the maximal score under the policy's
// rule. Ties go to the first alternative in the model's configured order, so
// selection is reproducible. trial is the zero-indexed trial within the
// current replication.
func (p *Policy) Select(beliefs map[string]models.BeliefState, trial int) string {
	best := ""
	bestScore := math.Inf(-1)
	for _, alt := range p.model.Alternatives() {
		score := p.score(beliefs[alt], trial)
		if best == "" || score > bestScore {
			best = alt
			bestScore = score
		}
	}
	return best
}

func (p *Policy) score(belief models.BeliefState, trial int) float64 {
	switch p.kind {
	case PolicyIntervalEstimation:
		// Upper bound on the belief interval itself; beta is always
		// positive, so no pull-count special case is needed.
		return belief.Mu + p.theta*belief.StdDev()
	default:
		// ln(t)/n is undefined for an unpulled alternative; score it
		// infinitely attractive so every alternative is tried once
		// before the bonus term applies.
		if belief.N == 0 {
			return math.Inf(1)
		}
		t := float64(trial + 1)
		return belief.Mu + p.theta*math.Sqrt(math.Log(t)/float64(belief.N))
	}
}

// Run executes nReplications independent replications of Horizon trials each
// and returns the ordered trajectory. The count is validated before any
// model mutation, so a rejected call produces no partial results.
func (p *Policy) Run(nReplications int) (*models.RunResult, error) {
	if nReplications <= 0 {
		return nil, fmt.Errorf("%w: replication count must be positive, got %d", ErrConfiguration, nReplications)
	}
	records := make([]models.TrialRecord, 0, nReplications*p.model.Horizon())
	for r := 0; r < nReplications; r++ {
		p.model.Reset()
		for t := 0; t < p.model.Horizon(); t++ {
			chosen := p.Select(p.model.Beliefs(), t)
			record, err := p.model.Observe(chosen)
			if err != nil {
				return nil, err
			}
			records = append(records, record)
		}
	}
	result := &models.RunResult{
		RunID:   uuid.New().String(),
		Policy:  string(p.kind),
		Theta:   p.theta,
		Records: records,
	}
	logf(LogLevelInfo, "run %s: %s theta=%v, %d replications of %d trials",
		result.RunID, p.kind, p.theta, nReplications, p.model.Horizon())
	return result, nil
}
