package metric

import (
	"trialsim-core/svc/models"
)

// ComputeSelectionRateMetric is a metric of how often a policy pulled the
// named alternative. Trajectories are grouped per replication so the result
// averages replication-level rates; pass the truly best alternative to read
// it as a selection-accuracy score.
func ComputeSelectionRateMetric(replications [][]models.TrialRecord, alternative string) (models.Metric, error) {
	var rates []models.Metric
	for _, records := range replications {
		chosen := 0
		for _, record := range records {
			if record.WasChosen(alternative) {
				chosen++
			}
		}
		rates = append(rates, models.Metric{
			Label:       "Alternative Selection Rate",
			Numerator:   int32(chosen),
			Denominator: int32(len(records)),
		})
	}
	return models.Average(rates)
}

// FinalBeliefs returns each replication's end-of-horizon belief for the
// named alternative, in replication order.
func FinalBeliefs(replications [][]models.TrialRecord, alternative string) []models.BeliefState {
	finals := make([]models.BeliefState, 0, len(replications))
	for _, records := range replications {
		if len(records) == 0 {
			continue
		}
		last := records[len(records)-1]
		finals = append(finals, last.Beliefs[alternative])
	}
	return finals
}
