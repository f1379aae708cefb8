package output

import (
	"fmt"
	"io"
	"strings"
)

const (
	heavyRule = "═══════════════════════════════════════════════════════════════════════════════"
	lightRule = "───────────────────────────────────────────────────────────────────────────────"
)

// WritePlain renders the report as human readable text.
func WritePlain(w io.Writer, r *Report) {
	fmt.Fprintf(w, "%s\n", heavyRule)
	fmt.Fprintf(w, "                              BITSORT REPORT\n")
	fmt.Fprintf(w, "%s\n\n", heavyRule)

	fmt.Fprintf(w, "Run:        %s\n", r.Metadata.RunType)
	fmt.Fprintf(w, "Generated:  %s\n", r.Metadata.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(w, "Version:    %s\n", r.Metadata.Version)
	fmt.Fprintf(w, "Duration:   %d ms\n\n", r.Metadata.DurationMS)

	for i, job := range r.Jobs {
		writeJobPlain(w, job)
		if i < len(r.Jobs)-1 {
			fmt.Fprintf(w, "%s\n\n", heavyRule)
		}
	}

	if len(r.Warnings) > 0 || len(r.Errors) > 0 {
		fmt.Fprintf(w, "DIAGNOSTICS\n")
		fmt.Fprintf(w, "%s\n", lightRule)
		if len(r.Warnings) > 0 {
			fmt.Fprintf(w, "Warnings:\n")
			for _, warning := range r.Warnings {
				fmt.Fprintf(w, "  • %s\n", diagLine(warning.Job, warning.Type, warning.Message))
			}
		}
		if len(r.Errors) > 0 {
			fmt.Fprintf(w, "Errors:\n")
			for _, e := range r.Errors {
				fmt.Fprintf(w, "  • %s\n", diagLine(e.Job, e.Type, e.Message))
			}
		}
		fmt.Fprintf(w, "\n")
	}

	fmt.Fprintf(w, "%s\n", heavyRule)
}

func writeJobPlain(w io.Writer, job JobResult) {
	fmt.Fprintf(w, "JOB %s\n", strings.ToUpper(job.Name))
	fmt.Fprintf(w, "%s\n", lightRule)
	if job.Input != "" {
		fmt.Fprintf(w, "Input:      %s (%s)\n", job.Input, job.Format)
	}
	fmt.Fprintf(w, "Engine:     %s\n", job.Engine)
	if job.Strategy != "" {
		fmt.Fprintf(w, "Strategy:   %s\n", job.Strategy)
	}
	fmt.Fprintf(w, "Values:     %s\n", FormatNumber(job.Count))
	fmt.Fprintf(w, "Range:      [%d, %d)\n", job.Start, job.End)
	if job.Bounds != nil {
		fmt.Fprintf(w, "Bounds:     [%d, %d]\n", job.Bounds.Min, job.Bounds.Max)
	}
	fmt.Fprintf(w, "Mask:       %s (%s, width %d)\n", job.Analysis.Mask, job.Analysis.Kind, job.Analysis.Width)
	if len(job.Analysis.Sections) > 0 {
		fmt.Fprintf(w, "Sections:\n")
		for _, s := range job.Analysis.Sections {
			fmt.Fprintf(w, "  %2d bits at shift %-2d  %s\n", s.Bits, s.Shift, s.Mask)
		}
	}
	fmt.Fprintf(w, "Timing:     read %d ms, sort %s μs, write %d ms\n",
		job.Timing.ReadMS, FormatNumber(int(job.Timing.SortUS)), job.Timing.WriteMS)
	status := "yes"
	if !job.Sorted {
		status = "NO"
	}
	fmt.Fprintf(w, "Sorted:     %s\n", status)
	if job.Output != "" {
		fmt.Fprintf(w, "Output:     %s\n", job.Output)
	}
	fmt.Fprintf(w, "\n")
}

func diagLine(job, kind, message string) string {
	if job == "" {
		return fmt.Sprintf("[%s] %s", kind, message)
	}
	return fmt.Sprintf("%s: [%s] %s", job, kind, message)
}

// FormatNumber adds thousand separators to numbers
func FormatNumber(n int) string {
	str := fmt.Sprintf("%d", n)
	sign := ""
	if n < 0 {
		sign, str = "-", str[1:]
	}
	if len(str) <= 3 {
		return sign + str
	}

	var result strings.Builder
	result.WriteString(sign)
	for i, digit := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result.WriteString(",")
		}
		result.WriteRune(digit)
	}
	return result.String()
}
