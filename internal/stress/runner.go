// Package stress drives registry operations from pools of concurrent
// workers and reports what actually executed. It exists to make the
// registry's concurrency contracts observable: `once` under contention can
// run its action more than once, `once_exclusive` never does.
package stress

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/vk/setonce"
	"github.com/vk/setonce/internal/ctxlog"
	"github.com/vk/setonce/internal/manifest"
)

// Result describes the outcome of one scenario run.
type Result struct {
	Scenario string
	Op       manifest.Op
	Flag     string
	Workers  int
	Repeat   int

	// Issued is the number of operations performed across all workers.
	Issued int64
	// Executed counts action invocations (once, once_exclusive, run_if_set,
	// run_if_unset) or claims won (try_set). It is always zero for plain
	// set, which carries no action.
	Executed int64
	// FlagSet is the registry state of the scenario's flag after the run.
	FlagSet bool
}

// Runner executes scenarios against a shared registry.
type Runner struct {
	registry *setonce.Registry
}

// New creates a runner bound to reg.
func New(reg *setonce.Registry) *Runner {
	return &Runner{registry: reg}
}

// Run executes one scenario: Workers goroutines each performing Repeat
// operations. Cancellation is observed between iterations; a canceled run
// returns the context error rather than a partial result.
func (r *Runner) Run(ctx context.Context, sc *manifest.Scenario) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Scenario starting.",
		"scenario", sc.Name, "op", sc.Op, "flag", sc.Flag,
		"workers", sc.Workers, "repeat", sc.Repeat)

	var issued, executed atomic.Int64
	count := func() { executed.Add(1) }

	var wg sync.WaitGroup
	wg.Add(sc.Workers)
	for i := 0; i < sc.Workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < sc.Repeat; j++ {
				if ctx.Err() != nil {
					return
				}
				issued.Add(1)
				r.apply(sc, count)
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scenario %q interrupted: %w", sc.Name, err)
	}

	res := &Result{
		Scenario: sc.Name,
		Op:       sc.Op,
		Flag:     sc.Flag,
		Workers:  sc.Workers,
		Repeat:   sc.Repeat,
		Issued:   issued.Load(),
		Executed: executed.Load(),
		FlagSet:  r.registry.IsSet(sc.Flag),
	}
	logger.Info("Scenario finished.",
		"scenario", res.Scenario, "issued", res.Issued,
		"executed", res.Executed, "flag_set", res.FlagSet)
	return res, nil
}

// apply performs a single operation for sc, counting action executions.
func (r *Runner) apply(sc *manifest.Scenario, count func()) {
	switch sc.Op {
	case manifest.OpSet:
		r.registry.Set(sc.Flag)
	case manifest.OpTrySet:
		if r.registry.TrySet(sc.Flag) {
			count()
		}
	case manifest.OpOnce:
		r.registry.Once(sc.Flag, count)
	case manifest.OpOnceExclusive:
		r.registry.OnceExclusive(sc.Flag, count)
	case manifest.OpRunIfSet:
		r.registry.RunIfSet(sc.Flag, count)
	case manifest.OpRunIfUnset:
		r.registry.RunIfUnset(sc.Flag, count)
	}
}
