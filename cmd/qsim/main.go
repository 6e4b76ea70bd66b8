// qsim simulates an M/G/1 queue. Run with no arguments for the canonical
// demonstration run followed by the service-bound sweep, or use the demo and
// sweep subcommands individually.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/qsim/mg1/internal/config"
	"github.com/qsim/mg1/internal/experiment"
	"github.com/qsim/mg1/internal/output"
)

var (
	configFile  string
	format      string
	parallelism int

	// logLevel gates the per-customer event log: Debug for demo runs,
	// Warn while sweeping (the original toggles logging the same way).
	logLevel = &slog.LevelVar{}
	logger   = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
)

func loadConfig() (*config.Config, error) {
	if configFile == "" {
		return config.Default(), nil
	}
	return config.NewInputParser().LoadFromFile(configFile)
}

func runDemo(cfg *config.Config) error {
	logLevel.Set(slog.LevelDebug)
	series, err := experiment.RunDemo(experiment.DemoConfig{
		Seed:             cfg.Demo.Seed,
		Runtime:          cfg.Demo.Runtime,
		MeanInterarrival: cfg.Demo.MeanInterarrival,
		ServiceLow:       cfg.Demo.ServiceLow,
		ServiceHigh:      cfg.Demo.ServiceHigh,
	}, logger)
	if err != nil {
		return err
	}
	logger.Debug("demo complete", "customers", series.Count(), "mean_system_time", series.Mean())
	return nil
}

func runSweep(cfg *config.Config) error {
	logLevel.Set(slog.LevelWarn)
	sweepCfg := experiment.SweepConfig{
		Low:              cfg.Sweep.Low,
		High:             cfg.Sweep.High,
		Points:           cfg.Sweep.Points,
		Trials:           cfg.Sweep.Trials,
		Horizon:          cfg.Sweep.Horizon,
		MeanInterarrival: cfg.Sweep.MeanInterarrival,
		ServiceLow:       cfg.Sweep.ServiceLow,
		Seed:             cfg.Sweep.Seed,
		Parallelism:      cfg.Sweep.Parallelism,
	}
	if parallelism > 0 {
		sweepCfg.Parallelism = parallelism
	}
	res, err := experiment.RunSweep(sweepCfg, logger)
	if err != nil {
		return err
	}
	outFormat := cfg.Output.Format
	if format != "" {
		outFormat = format
	}
	return output.GenerateReport(res, outFormat, os.Stdout)
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "qsim",
		Short: "Single-server M/G/1 queueing simulation",
		Long: "qsim runs a discrete-event simulation of an M/G/1 queue\n" +
			"(exponential arrivals, truncated-normal service times, one server)\n" +
			"and sweeps the service-time upper bound, reporting a 90% interval\n" +
			"on mean system time per sweep value.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := runDemo(cfg); err != nil {
				return err
			}
			return runSweep(cfg)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "experiment configuration file (YAML)")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "", "report format: console, csv, or json")
	rootCmd.PersistentFlags().IntVarP(&parallelism, "parallelism", "p", 0, "max concurrent trials (0 = default)")

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the fixed demonstration simulation with debug logging",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runDemo(cfg)
		},
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "Sweep the service-time upper bound and print the summary table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runSweep(cfg)
		},
	}

	rootCmd.AddCommand(demoCmd, sweepCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
