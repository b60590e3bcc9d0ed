package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"trialsim-core/db"
	"trialsim-core/db/fixtures"
	"trialsim-core/svc"
	metric "trialsim-core/svc/metrics"
	"trialsim-core/svc/models"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "trialsim",
		Short: "Sequential drug-trial simulator",
		Long: `trialsim hosts the simulation loop: it loads a scenario, drives a
selection policy (UCB or interval estimation) over independent replications,
and prints summaries computed from the resulting trial records.`,
	}

	rootCmd.PersistentFlags().String("scenario", "", "Path to a YAML scenario file (default: bundled fixture)")
	rootCmd.PersistentFlags().String("policy", "ucb", "Selection policy: ucb or ie")
	rootCmd.PersistentFlags().Int("replications", 100, "Number of independent replications")

	rootCmd.AddCommand(
		newRunCmd(),
		newSweepCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one policy over a scenario and print a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, seed, err := loadScenario(cmd)
			if err != nil {
				return err
			}
			theta, _ := cmd.Flags().GetFloat64("theta")
			replications, _ := cmd.Flags().GetInt("replications")

			model, err := svc.NewSimulationModel(cfg, seed)
			if err != nil {
				return err
			}
			policy, err := buildPolicy(cmd, model, theta)
			if err != nil {
				return err
			}
			result, err := policy.Run(replications)
			if err != nil {
				return err
			}

			byReplication := models.SplitByReplication(result.Records)
			fmt.Printf("run %s: %s theta=%v, %d records\n",
				result.RunID, result.Policy, result.Theta, len(result.Records))
			for _, alt := range model.Alternatives() {
				rate, err := metric.ComputeSelectionRateMetric(byReplication, alt)
				if err != nil {
					return err
				}
				finals := metric.FinalBeliefs(byReplication, alt)
				fmt.Printf("  %s: selection rate %.3f, final belief mu=%.4f std=%.4f n=%d (replication 0)\n",
					alt, rate.ToPercentage(), finals[0].Mu, finals[0].StdDev(), finals[0].N)
			}
			return nil
		},
	}
	cmd.Flags().Float64("theta", 1.0, "Exploration parameter")
	return cmd
}

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Grid-search theta for a policy over a scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, seed, err := loadScenario(cmd)
			if err != nil {
				return err
			}
			thetaList, _ := cmd.Flags().GetString("thetas")
			thetas, err := parseThetas(thetaList)
			if err != nil {
				return err
			}
			replications, _ := cmd.Flags().GetInt("replications")
			kind, err := policyKind(cmd)
			if err != nil {
				return err
			}

			sweep := svc.NewSweepService(db.NewRunStore())
			points, err := sweep.Sweep(cfg, seed, kind, thetas, replications)
			if err != nil {
				return err
			}
			fmt.Printf("%-10s %-38s %s\n", "theta", "run", "mean observation")
			for _, point := range points {
				fmt.Printf("%-10v %-38s %.5f\n", point.Theta, point.RunID, point.MeanObservation)
			}
			return nil
		},
	}
	cmd.Flags().String("thetas", "0,0.5,1,2", "Comma-separated theta grid")
	return cmd
}

func loadScenario(cmd *cobra.Command) (models.ModelConfig, int64, error) {
	path, _ := cmd.Flags().GetString("scenario")
	if path == "" {
		return fixtures.LoadDefaultScenario()
	}
	return fixtures.LoadScenario(path)
}

func buildPolicy(cmd *cobra.Command, model *svc.SimulationModel, theta float64) (*svc.Policy, error) {
	kind, err := policyKind(cmd)
	if err != nil {
		return nil, err
	}
	if kind == svc.PolicyIntervalEstimation {
		return svc.NewIntervalEstimationPolicy(model, theta)
	}
	return svc.NewUCBPolicy(model, theta)
}

func policyKind(cmd *cobra.Command) (svc.PolicyKind, error) {
	name, _ := cmd.Flags().GetString("policy")
	switch strings.ToLower(name) {
	case "ucb":
		return svc.PolicyUCB, nil
	case "ie", "interval_estimation":
		return svc.PolicyIntervalEstimation, nil
	default:
		return "", fmt.Errorf("unknown policy %q (want ucb or ie)", name)
	}
}

func parseThetas(list string) ([]float64, error) {
	var thetas []float64
	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		theta, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid theta %q: %v", field, err)
		}
		thetas = append(thetas, theta)
	}
	return thetas, nil
}
