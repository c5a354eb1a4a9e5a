package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config is the optional YAML configuration. Pointer fields distinguish
// "not set" from empty values.
type Config struct {
	DB   *string `yaml:"db"`
	Addr *string `yaml:"addr"`
}

type app struct {
	verbose    bool
	configPath string
	cfg        Config
	logger     *zap.Logger
}

func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

func (a *app) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if a.configPath != "" {
		data, err := os.ReadFile(a.configPath)
		if err != nil {
			return ctx, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &a.cfg); err != nil {
			return ctx, fmt.Errorf("parse config %s: %w", a.configPath, err)
		}
	}
	var err error
	if a.logger, err = newLogger(a.verbose); err != nil {
		return ctx, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return ctx, nil
}

func (a *app) after(ctx context.Context, cmd *cli.Command) error {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	return nil
}

// dbPath returns --db, falling back to the config file.
func (a *app) dbPath(cmd *cli.Command, flag string) (string, error) {
	if p := cmd.String(flag); cmd.IsSet(flag) || a.cfg.DB == nil {
		if p == "" {
			return "", fmt.Errorf("%s: no --%s given", cmd.Name, flag)
		}
		return p, nil
	}
	return *a.cfg.DB, nil
}

func newApp() *cli.Command {
	a := &app{}
	return &cli.Command{
		Name:  "censusdb",
		Usage: "Build and query census databases keyed by isomorphism signature",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "verbose",
				Aliases:     []string{"v"},
				Usage:       "debug logging",
				Destination: &a.verbose,
			},
			&cli.StringFlag{
				Name:        "config",
				Usage:       "YAML config file",
				Destination: &a.configPath,
			},
		},
		Before: a.before,
		After:  a.after,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			a.buildCmd(),
			a.lookupCmd(),
			a.optimiseCmd(),
			a.serveCmd(),
		},
	}
}
