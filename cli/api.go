package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ChristianF88/bitsort/analysis"
	"github.com/ChristianF88/bitsort/config"
	"github.com/ChristianF88/bitsort/output"
	"github.com/ChristianF88/bitsort/tui"
	"github.com/ChristianF88/bitsort/version"
	"go.uber.org/zap"
)

const cliJobName = "cli"

// OutputConfig contains output formatting options
type OutputConfig struct {
	Compact bool
	Plain   bool
	TUI     bool
	Workers int
}

// executeRun handles sort and run - CLI flags or config file, doesn't matter
func executeRun(ctx context.Context, w io.Writer, cfg *config.Config, outputConfig OutputConfig, logger *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := analysis.Options{
		Logger:   logger,
		Version:  version.Version,
		Workers:  outputConfig.Workers,
		KeepKeys: cfg.Global.PlotPath != "" || outputConfig.TUI,
	}

	// Route to TUI if requested
	if outputConfig.TUI {
		return executeTUI(ctx, cfg, opts)
	}

	result, err := analysis.RunConfig(ctx, cfg, opts)
	if err != nil {
		outputResult(w, result.Report, outputConfig) // Output with errors
		return err
	}

	plotKeys(cfg, result)

	if err := outputResult(w, result.Report, outputConfig); err != nil {
		return err
	}
	return reportErrors(result.Report)
}

// executeTUI runs the jobs in the background and shows the report in the TUI.
// Diagnostics only go to the report here, the terminal belongs to tview.
func executeTUI(ctx context.Context, cfg *config.Config, opts analysis.Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	opts.Logger = zap.NewNop()
	app := tui.NewApp(cfg)

	type runOutcome struct {
		result *analysis.Result
		err    error
	}
	done := make(chan runOutcome, 1)
	go func() {
		result, err := analysis.RunConfig(ctx, cfg, opts)
		if err == nil {
			plotKeys(cfg, result)
		}
		done <- runOutcome{result, err}
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			app.ShowError(fmt.Sprintf("Run failed: %v", err))
			return
		}
		app.SetResults(result.Report, result.Keys)
	}()

	if err := app.Run(); err != nil {
		return err
	}
	cancel()
	outcome := <-done
	if errors.Is(outcome.err, context.Canceled) {
		return nil // quit before the run finished
	}
	if outcome.err != nil {
		return outcome.err
	}
	return reportErrors(outcome.result.Report)
}

// plotKeys writes the key heatmap if configured and notes the outcome in the report
func plotKeys(cfg *config.Config, result *analysis.Result) {
	if cfg.Global.PlotPath == "" {
		return
	}
	plotStart := time.Now()
	if err := output.PlotKeyHeatmap(result.AllKeys(), "Key Distribution", cfg.Global.PlotPath); err != nil {
		result.Report.AddError("plot_failed", err.Error(), "", 1)
		return
	}
	result.Report.AddWarning("info", fmt.Sprintf("Heatmap generated in %v at %s", time.Since(plotStart), cfg.Global.PlotPath), "", 0)
}

func reportErrors(report *output.Report) error {
	if n := len(report.Errors); n > 0 {
		return fmt.Errorf("%d error(s) reported", n)
	}
	return nil
}

// Inspect reports the bit analysis and strategy of every job without sorting
func Inspect(w io.Writer, cfg *config.Config, outputConfig OutputConfig, logger *zap.Logger) error {
	start := time.Now()
	report := output.NewReport("inspect", version.Version, start)
	opts := analysis.Options{Logger: logger, Version: version.Version}

	for _, name := range cfg.JobNames() {
		job, err := analysis.InspectJob(name, cfg.Jobs[name], cfg.Global, opts)
		if err != nil {
			report.AddError("inspect_failed", err.Error(), name, 1)
		}
		report.AddJob(job)
	}
	report.UpdateDuration(start)

	if err := outputResult(w, report, outputConfig); err != nil {
		return err
	}
	return reportErrors(report)
}

// outputResult writes the report in the requested format
func outputResult(w io.Writer, report *output.Report, outputConfig OutputConfig) error {
	if report == nil {
		return fmt.Errorf("no report to output")
	}
	if outputConfig.Plain {
		output.WritePlain(w, report)
		return nil
	}

	var data []byte
	var err error
	if outputConfig.Compact {
		data, err = report.ToCompactJSON()
	} else {
		data, err = report.ToJSON()
	}
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
