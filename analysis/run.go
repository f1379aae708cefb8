package analysis

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/ChristianF88/bitsort/config"
	"github.com/ChristianF88/bitsort/output"
	"github.com/ChristianF88/bitsort/pools"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options are the process-level dependencies of a run.
type Options struct {
	Logger  *zap.Logger
	Buffers *pools.Buffers
	Version string
	// Workers limits how many jobs sort at once. Zero means one per CPU.
	Workers int
	// KeepKeys retains the sorted keys of every job for plotting.
	KeepKeys bool
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Buffers == nil {
		o.Buffers = pools.Default
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	return o
}

// Result is a finished run.
type Result struct {
	Report *output.Report
	// Keys holds the sorted keys per job when Options.KeepKeys is set.
	Keys map[string][]int64
}

// AllKeys concatenates the kept keys of every job in job name order.
func (r *Result) AllKeys() []int64 {
	var keys []int64
	for _, job := range r.Report.Jobs {
		keys = append(keys, r.Keys[job.Name]...)
	}
	return keys
}

// RunConfig sorts every job of cfg in parallel. Failures of single jobs are
// recorded as report errors; the returned error is reserved for an invalid
// configuration or a cancelled context.
func RunConfig(ctx context.Context, cfg *config.Config, opts Options) (*Result, error) {
	runStart := time.Now()
	opts = opts.withDefaults()
	report := output.NewReport("run", opts.Version, runStart)
	result := &Result{Report: report, Keys: make(map[string][]int64)}

	if cfg == nil {
		report.AddError("config_error", "configuration is nil", "", 1)
		return result, fmt.Errorf("configuration is nil")
	}
	if err := cfg.Validate(); err != nil {
		report.AddError("config_error", err.Error(), "", 1)
		return result, err
	}

	var keysMu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for _, name := range cfg.JobNames() {
		name, job := name, cfg.Jobs[name]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			jobResult, keys, err := RunJob(name, job, cfg.Global, report, opts)
			if err != nil {
				opts.Logger.Error("job failed", zap.String("job", name), zap.Error(err))
				report.AddError("job_failed", err.Error(), name, 1)
			}
			report.AddJob(jobResult)
			if opts.KeepKeys && keys != nil {
				keysMu.Lock()
				result.Keys[name] = keys
				keysMu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}

	report.SortJobs()
	report.UpdateDuration(runStart)
	opts.Logger.Info("run finished",
		zap.Int("jobs", len(report.Jobs)),
		zap.Int("warnings", len(report.Warnings)),
		zap.Int("errors", len(report.Errors)),
		zap.Int64("duration_ms", report.Metadata.DurationMS))
	return result, nil
}
