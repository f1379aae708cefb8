package output

import (
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/ChristianF88/bitsort/diag"
)

// Report is the complete result of a sorting run.
type Report struct {
	Metadata Metadata    `json:"metadata"`
	Jobs     []JobResult `json:"jobs"`
	Warnings []Warning   `json:"warnings"`
	Errors   []Error     `json:"errors"`

	// Mutex for thread-safe job/warning/error appending
	mu sync.Mutex `json:"-"`
}

// Metadata contains information about the run
type Metadata struct {
	GeneratedAt time.Time `json:"generated_at"`
	RunType     string    `json:"run_type"`
	Version     string    `json:"version"`
	DurationMS  int64     `json:"duration_ms"`
}

// JobResult describes one sorted input.
type JobResult struct {
	Name   string `json:"name"`
	Input  string `json:"input,omitempty"`
	Engine string `json:"engine"`
	Format string `json:"format"`
	Count  int    `json:"count"`
	// Start and End are the sorted half-open range of the input.
	Start    int            `json:"start"`
	End      int            `json:"end"`
	Analysis MaskInfo       `json:"analysis"`
	Strategy string         `json:"strategy,omitempty"`
	Timing   Timing         `json:"timing"`
	Sorted   bool           `json:"sorted"`
	Output   string         `json:"output,omitempty"`
	Bounds   *Bounds        `json:"bounds,omitempty"`
	Extra    map[string]any `json:"extra,omitempty"`
}

// MaskInfo is the bit analysis of the sorted range.
type MaskInfo struct {
	Kind     string        `json:"kind"`
	Mask     string        `json:"mask"`
	Width    int           `json:"width"`
	BitList  []int         `json:"bit_list"`
	Sections []SectionInfo `json:"sections"`
}

// SectionInfo is one run of differing bits.
type SectionInfo struct {
	Bits  int    `json:"bits"`
	Shift int    `json:"shift"`
	Mask  string `json:"mask"`
}

// Timing contains per-phase durations of a job
type Timing struct {
	ReadMS  int64 `json:"read_ms"`
	SortUS  int64 `json:"sort_us"`
	WriteMS int64 `json:"write_ms"`
}

// Bounds are caller supplied nomask bounds.
type Bounds struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// Warning represents a warning message
type Warning struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Job     string `json:"job,omitempty"`
	Count   int    `json:"count,omitempty"`
}

// Error represents an error message
type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Job     string `json:"job,omitempty"`
	Count   int    `json:"count,omitempty"`
}

// NewReport creates a new Report with default metadata
func NewReport(runType, version string, startTime time.Time) *Report {
	return &Report{
		Metadata: Metadata{
			GeneratedAt: time.Now().UTC(),
			RunType:     runType,
			Version:     version,
			DurationMS:  time.Since(startTime).Milliseconds(),
		},
		Jobs:     []JobResult{},
		Warnings: []Warning{},
		Errors:   []Error{},
	}
}

// ToJSON converts the report to pretty-printed JSON
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// ToCompactJSON converts the report to compact JSON
func (r *Report) ToCompactJSON() ([]byte, error) {
	return json.Marshal(r)
}

// AddJob appends a job result (thread-safe)
func (r *Report) AddJob(job JobResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Jobs = append(r.Jobs, job)
}

// SortJobs orders job results by name.
func (r *Report) SortJobs() {
	r.mu.Lock()
	defer r.mu.Unlock()
	sort.SliceStable(r.Jobs, func(i, j int) bool { return r.Jobs[i].Name < r.Jobs[j].Name })
}

// AddWarning adds a warning to the report (thread-safe)
func (r *Report) AddWarning(warningType, message, job string, count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Warnings = append(r.Warnings, Warning{
		Type:    warningType,
		Message: message,
		Job:     job,
		Count:   count,
	})
}

// AddError adds an error to the report (thread-safe)
func (r *Report) AddError(errorType, message, job string, count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, Error{
		Type:    errorType,
		Message: message,
		Job:     job,
		Count:   count,
	})
}

// Sink returns a diag.Sink recording events as warnings of job.
// InvalidRange events leave the data unsorted and are recorded as errors.
func (r *Report) Sink(job string) diag.Sink {
	return diag.SinkFunc(func(e diag.Event) {
		if e.Kind == diag.InvalidRange {
			r.AddError(string(e.Kind), e.Message, job, 1)
			return
		}
		r.AddWarning(string(e.Kind), e.Message, job, 1)
	})
}

// UpdateDuration updates the duration in metadata
func (r *Report) UpdateDuration(startTime time.Time) {
	r.Metadata.DurationMS = time.Since(startTime).Milliseconds()
}
