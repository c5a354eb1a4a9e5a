package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/trimanifold/internal/distinguish"
)

// fileConfig is the optional YAML configuration. Unset fields keep the
// flag values.
type fileConfig struct {
	RMax    *int  `yaml:"rmax"`
	Workers *int  `yaml:"workers"`
	JSON    *bool `yaml:"json"`
	Verbose *bool `yaml:"verbose"`
}

type options struct {
	rmax       int
	workers    int
	json       bool
	verbose    bool
	configPath string

	logger *zap.Logger
}

func loadConfig(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config %s: %w", path, err)
	}
	return fc, nil
}

// apply copies the config values whose flags were not given explicitly.
func (o *options) apply(cmd *cobra.Command, fc fileConfig) {
	flags := cmd.Flags()
	if fc.RMax != nil && !flags.Changed("rmax") {
		o.rmax = *fc.RMax
	}
	if fc.Workers != nil && !flags.Changed("workers") {
		o.workers = *fc.Workers
	}
	if fc.JSON != nil && !flags.Changed("json") {
		o.json = *fc.JSON
	}
	if fc.Verbose != nil && !flags.Changed("verbose") {
		o.verbose = *fc.Verbose
	}
}

func newRootCmd() *cobra.Command {
	def := distinguish.DefaultConfig()
	o := &options{}

	cmd := &cobra.Command{
		Use:   "distinguish [flags] input.yaml",
		Short: "Compare invariants of triangulations grouped by claimed manifold",
		Long: `distinguish reads a YAML document of containers, one per claimed manifold,
each listing triangulations by isomorphism signature or SnapPea file. It computes
H1, the Z/2 rank of H2 and Turaev-Viro values for r <= rmax, then reports
containers whose members disagree and pairs of containers whose invariants all
match. Matching pairs are candidates only.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if o.configPath != "" {
				fc, err := loadConfig(o.configPath)
				if err != nil {
					return err
				}
				o.apply(cmd, fc)
			}
			config := zap.NewProductionConfig()
			config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if o.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			o.logger, err = config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if o.logger != nil {
				_ = o.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, o, args[0])
		},
	}
	cmd.Flags().IntVar(&o.rmax, "rmax", def.RMax, "largest Turaev-Viro parameter r")
	cmd.Flags().IntVar(&o.workers, "workers", def.Workers, "parallel invariant computations")
	cmd.Flags().BoolVar(&o.json, "json", false, "write the report as JSON")
	cmd.Flags().StringVar(&o.configPath, "config", "", "YAML config file")
	cmd.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "debug logging")
	return cmd
}

func run(cmd *cobra.Command, o *options, input string) error {
	containers, err := distinguish.LoadFile(input)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}
	cfg := distinguish.Config{RMax: o.rmax, Workers: o.workers, Logger: o.logger}
	rep, err := distinguish.Run(cmd.Context(), containers, cfg)
	if err != nil {
		return fmt.Errorf("run %s: %w", input, err)
	}
	if o.json {
		err = rep.WriteJSON(cmd.OutOrStdout())
	} else {
		err = rep.WriteText(cmd.OutOrStdout())
	}
	if err != nil {
		return fmt.Errorf("write report for %s: %w", input, err)
	}
	return nil
}
