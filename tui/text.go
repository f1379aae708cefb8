package tui

import (
	"fmt"
	"strings"

	"github.com/ChristianF88/bitsort/output"
)

const (
	distributionBins = 24
	barWidth         = 40
)

func buildSummaryText(report *output.Report, job output.JobResult) string {
	var b strings.Builder
	b.WriteString("[white::b]Run Summary[white::-]\n\n")
	fmt.Fprintf(&b, "[dim]Job:[white]       %s (%s)\n", job.Name, job.Format)
	if job.Input != "" {
		fmt.Fprintf(&b, "[dim]Input:[white]     %s\n", job.Input)
	}
	engine := job.Engine
	if job.Strategy != "" {
		engine += " / " + job.Strategy
	}
	fmt.Fprintf(&b, "[dim]Engine:[white]    %s\n", engine)
	fmt.Fprintf(&b, "[dim]Values:[white]    %s in [%d, %d)\n", output.FormatNumber(job.Count), job.Start, job.End)
	fmt.Fprintf(&b, "[dim]Timing:[white]    read %d ms, sort %s μs, write %d ms\n",
		job.Timing.ReadMS, output.FormatNumber(int(job.Timing.SortUS)), job.Timing.WriteMS)
	if job.Sorted {
		b.WriteString("[dim]Sorted:[white]    [green]yes[white]\n")
	} else {
		b.WriteString("[dim]Sorted:[white]    [red]no[white]\n")
	}
	fmt.Fprintf(&b, "[dim]Run:[white]       %d jobs in %d ms", len(report.Jobs), report.Metadata.DurationMS)
	return b.String()
}

func buildSectionsText(job output.JobResult) string {
	var b strings.Builder
	b.WriteString("[white::b]Bit Analysis[white::-]\n\n")
	fmt.Fprintf(&b, "Kind:  %s\n", job.Analysis.Kind)
	fmt.Fprintf(&b, "Mask:  %s\n", job.Analysis.Mask)
	fmt.Fprintf(&b, "Width: %d\n\n", job.Analysis.Width)
	if len(job.Analysis.Sections) == 0 {
		b.WriteString("[dim]No sections[white]")
		return b.String()
	}
	b.WriteString("[yellow]Sections (least significant first):[white]\n")
	for _, s := range job.Analysis.Sections {
		fmt.Fprintf(&b, "  %2d bits @ %-2d  %s\n", s.Bits, s.Shift, s.Mask)
	}
	return b.String()
}

// keyHistogram counts keys into bins of equal width over [min, max].
func keyHistogram(keys []int64, bins int) (counts []int, min, max int64) {
	counts = make([]int, bins)
	if len(keys) == 0 || bins == 0 {
		return counts, 0, 0
	}
	min, max = keys[0], keys[0]
	for _, k := range keys[1:] {
		if k < min {
			min = k
		}
		if k > max {
			max = k
		}
	}
	span := uint64(max) - uint64(min)
	width := span/uint64(bins) + 1
	for _, k := range keys {
		counts[(uint64(k)-uint64(min))/width]++
	}
	return counts, min, max
}

func buildDistributionText(keys []int64, bins int) string {
	var b strings.Builder
	b.WriteString("[white::b]Key Distribution[white::-]\n\n")
	if len(keys) == 0 {
		b.WriteString("[dim]No keys kept for this job[white]")
		return b.String()
	}
	counts, min, max := keyHistogram(keys, bins)
	peak := 0
	for _, c := range counts {
		if c > peak {
			peak = c
		}
	}
	width := (uint64(max)-uint64(min))/uint64(bins) + 1
	for i, c := range counts {
		lo := min + int64(uint64(i)*width)
		bar := 0
		if peak > 0 {
			bar = c * barWidth / peak
		}
		fmt.Fprintf(&b, "%20d │[cyan]%s[white] %s\n", lo, strings.Repeat("█", bar), output.FormatNumber(c))
	}
	return b.String()
}

func buildDiagnosticsText(report *output.Report, job string) string {
	var b strings.Builder
	b.WriteString("[white::b]Diagnostics[white::-]\n\n")

	var warnings []output.Warning
	for _, w := range report.Warnings {
		if w.Job == "" || w.Job == job {
			warnings = append(warnings, w)
		}
	}
	var errors []output.Error
	for _, e := range report.Errors {
		if e.Job == "" || e.Job == job {
			errors = append(errors, e)
		}
	}

	if len(warnings) > 0 {
		b.WriteString("[yellow]Warnings:[white]\n")
		for _, w := range warnings {
			fmt.Fprintf(&b, "  • [%s] %s\n", w.Type, w.Message)
		}
		b.WriteString("\n")
	}
	if len(errors) > 0 {
		b.WriteString("[red]Errors:[white]\n")
		for _, e := range errors {
			fmt.Fprintf(&b, "  • [%s] %s\n", e.Type, e.Message)
		}
	} else if len(warnings) == 0 {
		b.WriteString("[green]✓ No issues detected[white]")
	}
	return b.String()
}
