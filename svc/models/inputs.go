package models

// Prior is the configured normal prior for one alternative's belief.
type Prior struct {
	Mean float64 `yaml:"mean" json:"mean"`
	Std  float64 `yaml:"std" json:"std"`
}

// ModelConfig fully specifies a simulation model: the alternative set in its
// fixed selection order, per-alternative priors and ground-truth
// distributions, the shared observation-noise standard deviation, and the
// trial horizon of each replication. Validation happens at model
// construction, before any simulation work begins.
type ModelConfig struct {
	Alternatives []string
	Priors       map[string]Prior
	Truths       map[string]Distribution
	SigmaW       float64
	Horizon      int
}
