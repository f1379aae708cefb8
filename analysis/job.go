package analysis

import (
	"fmt"
	"time"

	"github.com/ChristianF88/bitsort/bitmask"
	"github.com/ChristianF88/bitsort/config"
	"github.com/ChristianF88/bitsort/diag"
	"github.com/ChristianF88/bitsort/ingestor"
	"github.com/ChristianF88/bitsort/output"
	"github.com/ChristianF88/bitsort/sorter"
	"go.uber.org/zap"
)

// NewEngine builds the engine for one job. Diagnostics go to the job's
// logger and to report, and the one-time warnings latch per job.
func NewEngine(name string, global *config.GlobalConfig, report *output.Report, opts Options) *sorter.Engine {
	opts = opts.withDefaults()
	if global == nil {
		global = config.DefaultGlobal()
	}
	sinks := []diag.Sink{diag.NewZapSink(opts.Logger.With(zap.String("job", name)))}
	if report != nil {
		sinks = append(sinks, report.Sink(name))
	}
	return sorter.New(
		sorter.WithReporter(diag.NewReporter(diag.Tee(sinks...))),
		sorter.WithBuffers(opts.Buffers),
		sorter.WithSectionBits(global.SectionBits),
		sorter.WithWarnRange(global.WarnRange),
	)
}

// RunJob reads, sorts and writes one job. The returned JobResult is filled as
// far as the job got, also when an error is returned. keys are the job's keys
// after sorting, in input order outside the sorted range.
func RunJob(name string, job *config.JobConfig, global *config.GlobalConfig, report *output.Report, opts Options) (output.JobResult, []int64, error) {
	opts = opts.withDefaults()
	result := output.JobResult{Name: name}
	if job == nil {
		return result, nil, fmt.Errorf("job %q has no configuration", name)
	}
	result.Input = job.Input
	result.Engine = string(job.Engine)
	result.Format = string(job.Format)
	result.Output = job.Output
	if job.Min != nil && job.Max != nil {
		result.Bounds = &output.Bounds{Min: *job.Min, Max: *job.Max}
	}

	e := NewEngine(name, global, report, opts)
	logger := opts.Logger.With(zap.String("job", name))

	switch job.Format {
	case config.FormatRecords:
		return runRecords(e, job, result, logger)
	default:
		return runInts(e, job, result, logger)
	}
}

func runInts(e *sorter.Engine, job *config.JobConfig, result output.JobResult, logger *zap.Logger) (output.JobResult, []int64, error) {
	readStart := time.Now()
	values, err := ingestor.ReadInts(job.Input)
	result.Timing.ReadMS = time.Since(readStart).Milliseconds()
	if err != nil {
		return result, nil, fmt.Errorf("reading %s: %w", job.Input, err)
	}
	result.Count = len(values)

	start, end, err := resolveRange(len(values), job.Start, job.End)
	if err != nil {
		return result, nil, err
	}
	result.Start, result.End = start, end
	part := values[start:end]

	switch job.Engine {
	case config.EngineRadix:
		result.Analysis = maskInfo(bitmask.AnalyzeSlice(part, e.SectionBits()))
	case config.EngineNoMask:
		result.Analysis = maskInfo(bitmask.AnalyzeSlice(part, bitmask.Width[int64]()))
	default:
		plan := sorter.Explain(e, part)
		result.Strategy = plan.Strategy.String()
		result.Analysis = maskInfo(plan.Analysis)
	}

	sortStart := time.Now()
	switch job.Engine {
	case config.EnginePigeonhole:
		sorter.Pigeonhole(e, part)
	case config.EngineNoMask:
		if job.Min != nil && job.Max != nil {
			sorter.NoMaskBounds(e, part, *job.Min, *job.Max)
		} else {
			sorter.NoMask(e, part)
		}
	case config.EngineRadix:
		sorter.RadixInts(e, part)
	default:
		sorter.Sort(e, part)
	}
	result.Timing.SortUS = time.Since(sortStart).Microseconds()
	result.Sorted = sorter.IsSorted(part)
	logger.Debug("sorted",
		zap.Int("values", len(part)),
		zap.String("strategy", result.Strategy),
		zap.Int64("sort_us", result.Timing.SortUS))

	if job.Output != "" {
		writeStart := time.Now()
		if err := ingestor.WriteInts(job.Output, values); err != nil {
			return result, values, fmt.Errorf("writing %s: %w", job.Output, err)
		}
		result.Timing.WriteMS = time.Since(writeStart).Milliseconds()
	}
	return result, values, nil
}

func runRecords(e *sorter.Engine, job *config.JobConfig, result output.JobResult, logger *zap.Logger) (output.JobResult, []int64, error) {
	readStart := time.Now()
	records, err := ingestor.ReadRecords(job.Input, job.KeyField)
	result.Timing.ReadMS = time.Since(readStart).Milliseconds()
	if err != nil {
		return result, nil, fmt.Errorf("reading %s: %w", job.Input, err)
	}
	result.Count = len(records)

	start, end, err := resolveRange(len(records), job.Start, job.End)
	if err != nil {
		return result, nil, err
	}
	result.Start, result.End = start, end
	part := records[start:end]
	result.Engine = string(config.EngineRadix)
	result.Analysis = maskInfo(bitmask.Analyze(bitmask.OfFunc(part, ingestor.RecordKey), bitmask.Width[int64](), e.SectionBits()))

	sortStart := time.Now()
	sorter.Radix(e, part, ingestor.RecordKey)
	result.Timing.SortUS = time.Since(sortStart).Microseconds()
	result.Sorted = sorter.IsSortedFunc(part, ingestor.RecordKey)
	logger.Debug("sorted records",
		zap.Int("records", len(part)),
		zap.Int64("sort_us", result.Timing.SortUS))

	if job.Output != "" {
		writeStart := time.Now()
		if err := ingestor.WriteRecords(job.Output, records); err != nil {
			return result, nil, fmt.Errorf("writing %s: %w", job.Output, err)
		}
		result.Timing.WriteMS = time.Since(writeStart).Milliseconds()
	}

	keys := make([]int64, len(records))
	for i, r := range records {
		keys[i] = r.Key
	}
	return result, keys, nil
}

// resolveRange turns a configured [start, end) into slice bounds. end 0
// means the end of the input.
func resolveRange(n, start, end int) (int, int, error) {
	if end == 0 {
		end = n
	}
	if start < 0 || start > end || end > n {
		return 0, 0, fmt.Errorf("range [%d, %d) over %d values: %w", start, end, n, sorter.ErrRange)
	}
	return start, end, nil
}

// maskInfo converts an analysis for the report.
func maskInfo(an bitmask.Analysis) output.MaskInfo {
	info := output.MaskInfo{
		Kind:     an.Kind.String(),
		Mask:     an.Mask.String(),
		Width:    an.Width,
		BitList:  an.Mask.BitList(),
		Sections: make([]output.SectionInfo, 0, len(an.Sections)),
	}
	if info.BitList == nil {
		info.BitList = []int{}
	}
	for _, s := range an.Sections {
		info.Sections = append(info.Sections, output.SectionInfo{
			Bits:  s.Bits,
			Shift: s.Shift,
			Mask:  fmt.Sprintf("%#x", s.Mask),
		})
	}
	return info
}
