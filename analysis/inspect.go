package analysis

import (
	"fmt"
	"time"

	"github.com/ChristianF88/bitsort/bitmask"
	"github.com/ChristianF88/bitsort/config"
	"github.com/ChristianF88/bitsort/ingestor"
	"github.com/ChristianF88/bitsort/output"
	"github.com/ChristianF88/bitsort/sorter"
)

// InspectJob reads a job's input and reports the bit analysis and the
// bucket strategy a sort would use, without sorting. Sorted tells whether
// the range already is in order.
func InspectJob(name string, job *config.JobConfig, global *config.GlobalConfig, opts Options) (output.JobResult, error) {
	result := output.JobResult{Name: name}
	if job == nil {
		return result, fmt.Errorf("job %q has no configuration", name)
	}
	result.Input = job.Input
	result.Engine = string(job.Engine)
	result.Format = string(job.Format)

	e := NewEngine(name, global, nil, opts)
	readStart := time.Now()

	if job.Format == config.FormatRecords {
		records, err := ingestor.ReadRecords(job.Input, job.KeyField)
		result.Timing.ReadMS = time.Since(readStart).Milliseconds()
		if err != nil {
			return result, fmt.Errorf("reading %s: %w", job.Input, err)
		}
		result.Count = len(records)
		start, end, err := resolveRange(len(records), job.Start, job.End)
		if err != nil {
			return result, err
		}
		result.Start, result.End = start, end
		part := records[start:end]
		result.Engine = string(config.EngineRadix)
		result.Analysis = maskInfo(bitmask.Analyze(bitmask.OfFunc(part, ingestor.RecordKey), bitmask.Width[int64](), e.SectionBits()))
		result.Sorted = sorter.IsSortedFunc(part, ingestor.RecordKey)
		return result, nil
	}

	values, err := ingestor.ReadInts(job.Input)
	result.Timing.ReadMS = time.Since(readStart).Milliseconds()
	if err != nil {
		return result, fmt.Errorf("reading %s: %w", job.Input, err)
	}
	result.Count = len(values)
	start, end, err := resolveRange(len(values), job.Start, job.End)
	if err != nil {
		return result, err
	}
	result.Start, result.End = start, end
	part := values[start:end]

	if job.Engine == config.EngineRadix {
		result.Analysis = maskInfo(bitmask.AnalyzeSlice(part, e.SectionBits()))
	} else {
		plan := sorter.Explain(e, part)
		result.Strategy = plan.Strategy.String()
		result.Analysis = maskInfo(plan.Analysis)
		if plan.Buckets() > 0 {
			result.Extra = map[string]any{"buckets": plan.Buckets()}
		}
	}
	result.Sorted = sorter.IsSorted(part)
	return result, nil
}
