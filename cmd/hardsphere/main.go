// Command hardsphere runs the event-driven hard-sphere simulation engine.
package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"hardsphere/internal/config"
	"hardsphere/internal/livefeed"
	"hardsphere/internal/sim"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "hardsphere",
		Short: "Event-driven hard-sphere molecular dynamics engine",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration YAML file")
	root.MarkPersistentFlagRequired("config")

	root.AddCommand(runCmd(), validateCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the simulation to completion",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("fail to load config file from %v: %w", configPath, err)
			}
			config.SetupLogger(cfg)
			log.Debug(cfg)

			diagLogger, err := config.NewDiagnosticsLogger(cfg)
			if err != nil {
				return fmt.Errorf("setup diagnostics logger: %w", err)
			}
			diag := &sim.LogrusDiagnostics{Log: diagLogger}

			runDir := cfg.OutputDir + string(os.PathSeparator) + cfg.RunName
			output, err := sim.NewOutputManager(runDir, 64, func(writeErr error) {
				log.WithError(writeErr).Error("failed to write snapshot frame")
			})
			if err != nil {
				return fmt.Errorf("setup output manager: %w", err)
			}
			defer output.Close()

			if err := output.WriteParameters(parametersOf(cfg)); err != nil {
				log.WithError(err).Warn("failed to write parameters.json")
			}

			if cfg.LivefeedEnabled {
				feed := livefeed.NewService(cfg.LivefeedAddr, output)
				feed.Start()
			}

			scheduler, err := sim.NewScheduler(cfg.SimParams, output, diag)
			if err != nil {
				return err
			}

			if err := scheduler.Run(); err != nil {
				return err
			}

			if count := scheduler.GrazeGuardCount(); count > 0 {
				log.WithField("graze_guard_count", count).Warn("resolver separating-velocity guard fired during this run")
			}

			return nil
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load and validate a configuration file without running it",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := config.Load(configPath)
			if err != nil {
				return err
			}
			fmt.Println("configuration is valid")
			return nil
		},
	}
}

func parametersOf(cfg *config.Config) map[string]any {
	p := cfg.SimParams
	return map[string]any{
		"ndim":             p.NDim,
		"num_balls":        p.NumBalls,
		"ball_radius":      p.BallRadius,
		"domain_size":      p.DomainSize[:p.NDim],
		"simulation_time":  p.SimulationTime,
		"gravity":          p.Gravity,
		"ball_restitution": p.BallRestitution,
		"wall_restitution": p.WallRestitution,
		"output_rate":      p.OutputRate,
		"random_seed":      p.RandomSeed,
		"run_name":         cfg.RunName,
		"output_dir":       cfg.OutputDir,
	}
}
