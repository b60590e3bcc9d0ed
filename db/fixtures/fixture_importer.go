package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"trialsim-core/svc/models"
)

// ScenarioAlternative is one alternative entry in a scenario YAML file.
type ScenarioAlternative struct {
	Name  string              `yaml:"name"`
	Prior models.Prior        `yaml:"prior"`
	Truth models.Distribution `yaml:"truth"`
}

// ScenarioFixture mirrors the YAML layout of a simulation scenario: the
// shared observation noise, horizon and seed, plus per-alternative priors
// and truth distributions in selection order.
type ScenarioFixture struct {
	Name         string                `yaml:"name"`
	SigmaW       float64               `yaml:"sigma_w"`
	Horizon      int                   `yaml:"horizon"`
	Seed         int64                 `yaml:"seed"`
	Alternatives []ScenarioAlternative `yaml:"alternatives"`
}

// LoadScenario reads a YAML scenario file and translates it into a model
// configuration plus the master seed. Semantic validation of the
// configuration happens at model construction, not here.
func LoadScenario(path string) (models.ModelConfig, int64, error) {
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return models.ModelConfig{}, 0, fmt.Errorf("error reading YAML file: %v", err)
	}

	var fixture ScenarioFixture
	if err := yaml.Unmarshal(yamlFile, &fixture); err != nil {
		return models.ModelConfig{}, 0, fmt.Errorf("error parsing YAML: %v", err)
	}

	cfg := models.ModelConfig{
		SigmaW:  fixture.SigmaW,
		Horizon: fixture.Horizon,
		Priors:  make(map[string]models.Prior, len(fixture.Alternatives)),
		Truths:  make(map[string]models.Distribution, len(fixture.Alternatives)),
	}
	for _, alt := range fixture.Alternatives {
		cfg.Alternatives = append(cfg.Alternatives, alt.Name)
		cfg.Priors[alt.Name] = alt.Prior
		cfg.Truths[alt.Name] = alt.Truth
	}
	return cfg, fixture.Seed, nil
}

// LoadDefaultScenario loads the scenario fixture bundled next to this file.
func LoadDefaultScenario() (models.ModelConfig, int64, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return models.ModelConfig{}, 0, fmt.Errorf("failed to get current file path")
	}
	return LoadScenario(filepath.Join(filepath.Dir(filename), "scenario_fixture.yaml"))
}
