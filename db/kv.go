package db

import (
	"fmt"
	"sort"
	"sync"

	"trialsim-core/svc/models"
)

// RunStore holds completed simulation trajectories in memory, keyed by run
// ID, with a mutex for thread-safe access. Trajectories are append-only:
// once a run is stored its records never change, so retrieval hands out the
// stored value directly.
type RunStore struct {
	store map[string]models.RunResult
	mu    sync.Mutex
}

// NewRunStore initializes and returns a new RunStore.
func NewRunStore() *RunStore {
	return &RunStore{
		store: make(map[string]models.RunResult),
	}
}

// StoreRun records a completed run under its run ID. Re-storing an existing
// run ID is rejected rather than overwritten.
func (rs *RunStore) StoreRun(result *models.RunResult) error {
	if result == nil || result.RunID == "" {
		return fmt.Errorf("run result must carry a run ID")
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	if _, exists := rs.store[result.RunID]; exists {
		return fmt.Errorf("run %s already stored", result.RunID)
	}
	rs.store[result.RunID] = *result
	return nil
}

// RetrieveRun returns the stored trajectory for a run ID.
func (rs *RunStore) RetrieveRun(runID string) (models.RunResult, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	result, ok := rs.store[runID]
	if !ok {
		return models.RunResult{}, fmt.Errorf("run %s: %w", runID, ErrNotFound)
	}
	return result, nil
}

// ListRuns returns the stored run IDs in lexical order.
func (rs *RunStore) ListRuns() []string {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	ids := make([]string, 0, len(rs.store))
	for id := range rs.store {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
