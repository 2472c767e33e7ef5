package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/setonce"
	"github.com/vk/setonce/internal/ctxlog"
	"github.com/vk/setonce/internal/manifest"
	"github.com/vk/setonce/internal/stress"
)

// App encapsulates the stress harness's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	loader   *manifest.Loader
	registry *setonce.Registry
}

// NewApp constructs the harness with its own isolated logger and a fresh
// flag registry shared by every scenario of the run.
func NewApp(outW io.Writer, cfg *Config) *App {
	return &App{
		outW:     outW,
		logger:   newLogger(cfg.LogLevel, cfg.LogFormat, outW),
		config:   cfg,
		loader:   manifest.NewLoader(),
		registry: setonce.New(),
	}
}

// Run loads the manifests, executes every scenario in declaration order
// against the shared registry, and prints a summary report.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run started.", "manifest_path", a.config.ManifestPath)

	scenarios, err := a.loader.Load(ctx, a.config.ManifestPath)
	if err != nil {
		return fmt.Errorf("loading manifests: %w", err)
	}

	if a.config.Workers > 0 {
		a.logger.Debug("Overriding scenario worker counts.", "workers", a.config.Workers)
		for _, sc := range scenarios {
			sc.Workers = a.config.Workers
		}
	}

	a.logger.Info("Starting scenarios.", "count", len(scenarios))
	runner := stress.New(a.registry)

	results := make([]*stress.Result, 0, len(scenarios))
	for _, sc := range scenarios {
		res, err := runner.Run(ctx, sc)
		if err != nil {
			return err
		}
		results = append(results, res)
	}

	a.logger.Info("All scenarios finished.", "flags_set", a.registry.Len())
	a.report(results)
	return nil
}

// report prints the per-scenario summary table and the final registry
// contents to the output writer.
func (a *App) report(results []*stress.Result) {
	fmt.Fprintf(a.outW, "\n%-20s %-16s %-20s %8s %10s %8s\n",
		"SCENARIO", "OP", "FLAG", "ISSUED", "EXECUTED", "SET")
	for _, r := range results {
		fmt.Fprintf(a.outW, "%-20s %-16s %-20s %8d %10d %8t\n",
			r.Scenario, r.Op, r.Flag, r.Issued, r.Executed, r.FlagSet)
	}
	fmt.Fprintf(a.outW, "\nflags set: %d [%s]\n",
		a.registry.Len(), strings.Join(a.registry.Flags(), ", "))
}
