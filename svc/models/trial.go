package models

// TrialRecord is the snapshot taken after one trial: the replication and
// trial indices, the alternative that was pulled, the observation it
// produced, and every alternative's belief state after the update. The
// ordered sequence of these records is the simulation's only output.
type TrialRecord struct {
	Replication int                    `json:"replication"`
	Trial       int                    `json:"trial"`
	Chosen      string                 `json:"chosen"`
	Observation float64                `json:"observation"`
	Beliefs     map[string]BeliefState `json:"beliefs"`
}

// WasChosen reports whether the named alternative was pulled on this trial.
func (r TrialRecord) WasChosen(alternative string) bool {
	return r.Chosen == alternative
}

// RunResult ties a completed trajectory to its run identity and the policy
// settings that produced it.
type RunResult struct {
	RunID   string        `json:"run_id"`
	Policy  string        `json:"policy"`
	Theta   float64       `json:"theta"`
	Records []TrialRecord `json:"records"`
}

// SplitByReplication groups an ordered trajectory into per-replication
// slices, preserving trial order within each replication.
func SplitByReplication(records []TrialRecord) [][]TrialRecord {
	var replications [][]TrialRecord
	last := -1
	for _, record := range records {
		if record.Replication != last {
			replications = append(replications, nil)
			last = record.Replication
		}
		replications[len(replications)-1] = append(replications[len(replications)-1], record)
	}
	return replications
}
