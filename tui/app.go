package tui

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ChristianF88/bitsort/config"
	"github.com/ChristianF88/bitsort/output"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// App represents the TUI application
type App struct {
	app          *tview.Application
	pages        *tview.Pages
	progressView *tview.TextView
	resultsView  *tview.Flex
	statusBar    *tview.TextView

	// Results panels
	summary        *tview.TextView
	sections       *tview.TextView
	distribution   *tview.TextView
	diagnostics    *tview.TextView
	focusableItems []tview.Primitive
	currentFocus   int

	cfg *config.Config

	// Shared mutable state protected by mu (accessed from background goroutines)
	mu         sync.Mutex
	report     *output.Report
	keys       map[string][]int64
	currentJob int

	runComplete atomic.Bool
}

// NewApp creates a new TUI application for the jobs of cfg.
func NewApp(cfg *config.Config) *App {
	a := &App{
		app:   tview.NewApplication(),
		pages: tview.NewPages(),
		cfg:   cfg,
	}
	a.setupUI()
	return a
}

// SetResults hands the finished run to the TUI. keys may be nil.
func (a *App) SetResults(report *output.Report, keys map[string][]int64) {
	if report == nil {
		a.ShowError("Run completed but returned no report")
		return
	}
	if len(report.Jobs) == 0 {
		a.ShowError("Run completed but no jobs were reported")
		return
	}

	a.mu.Lock()
	a.report = report
	a.keys = keys
	a.currentJob = 0
	a.mu.Unlock()

	a.runComplete.Store(true)

	a.app.QueueUpdateDraw(func() {
		a.displayResults()
		a.updateStatusBar()
		a.pages.SwitchToPage("results")
	})
}

// ShowError displays an error message in the TUI and stops the progress animation
func (a *App) ShowError(message string) {
	a.app.QueueUpdateDraw(func() {
		a.progressView.SetText(fmt.Sprintf("[red]Error:[white] %s\n\n[yellow]Press 'q' to quit[white]", message))
		a.statusBar.SetText("[red]Run failed![white] | Press 'q' to quit")
		a.pages.SwitchToPage("progress")
	})
}

// setupUI initializes the user interface
func (a *App) setupUI() {
	a.progressView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false).
		SetWrap(false)
	a.progressView.SetBorder(true).SetTitle(" bitsort Progress ").SetTitleAlign(tview.AlignCenter)

	a.resultsView = tview.NewFlex().SetDirection(tview.FlexRow)
	a.setupResultsView()

	a.statusBar = tview.NewTextView().
		SetDynamicColors(true).
		SetText("[yellow]Sorting...[white] | Press 'q' to quit")
	a.statusBar.SetBorder(false)

	main := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.progressView, 0, 1, true).
		AddItem(a.statusBar, 1, 0, false)

	results := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.resultsView, 0, 1, true).
		AddItem(a.statusBar, 1, 0, false)

	a.pages.AddPage("progress", main, true, true)
	a.pages.AddPage("results", results, true, false)

	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Rune() {
		case 'q', 'Q':
			a.app.Stop()
			return nil
		case 'j', 'J':
			if a.runComplete.Load() {
				a.nextJob()
			}
			return nil
		}

		frontPageName, _ := a.pages.GetFrontPage()
		if !a.runComplete.Load() || frontPageName != "results" {
			return event
		}
		switch event.Key() {
		case tcell.KeyTab:
			a.nextFocus()
			return nil
		case tcell.KeyBacktab:
			a.prevFocus()
			return nil
		case tcell.KeyDown, tcell.KeyUp, tcell.KeyPgDn, tcell.KeyPgUp:
			if tv, ok := a.getFocusedItem().(*tview.TextView); ok {
				scroll(tv, event.Key())
			}
			return nil
		}
		return event
	})

	a.app.SetRoot(a.pages, true)
}

func scroll(tv *tview.TextView, key tcell.Key) {
	row, col := tv.GetScrollOffset()
	switch key {
	case tcell.KeyDown:
		row++
	case tcell.KeyUp:
		row--
	case tcell.KeyPgDn:
		row += 10
	case tcell.KeyPgUp:
		row -= 10
	}
	if row < 0 {
		row = 0
	}
	tv.ScrollTo(row, col)
}

// setupResultsView creates the results display layout
func (a *App) setupResultsView() {
	a.summary = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	a.summary.SetBorder(true).SetTitle(" Summary ").SetTitleAlign(tview.AlignLeft)

	a.sections = newPanel()
	a.distribution = newPanel()
	a.diagnostics = newPanel()

	a.focusableItems = []tview.Primitive{a.sections, a.distribution, a.diagnostics}
	a.currentFocus = 0
	a.updateFocusBorders()

	topRow := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(a.summary, 0, 1, false)

	bottomRow := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(a.sections, 0, 1, false).
		AddItem(a.distribution, 0, 2, false).
		AddItem(a.diagnostics, 0, 1, false)

	a.resultsView.
		AddItem(topRow, 11, 0, false).
		AddItem(bottomRow, 0, 1, false)
}

func newPanel() *tview.TextView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	tv.SetBorder(true).SetTitleAlign(tview.AlignLeft)
	return tv
}

// Run starts the TUI application
func (a *App) Run() error {
	go a.animateProgress()
	return a.app.Run()
}

func (a *App) animateProgress() {
	var jobs int
	if a.cfg != nil {
		jobs = len(a.cfg.Jobs)
	}
	dots := 0
	for !a.runComplete.Load() {
		content := fmt.Sprintf(`
[white::b]bitsort[white::-]

[yellow]▶[white] Sorting%s

[dim]Jobs:[white] %d

[dim]Press 'q' to quit[white]
`, strings.Repeat(".", dots%4), jobs)

		a.app.QueueUpdateDraw(func() {
			a.progressView.SetText(content)
		})
		time.Sleep(200 * time.Millisecond)
		dots++
	}
}

// nextJob cycles to the next job of the report
func (a *App) nextJob() {
	a.mu.Lock()
	if a.report == nil || len(a.report.Jobs) < 2 {
		a.mu.Unlock()
		return
	}
	a.currentJob = (a.currentJob + 1) % len(a.report.Jobs)
	a.mu.Unlock()

	a.displayResults()
	a.updateStatusBar()
}

func (a *App) displayResults() {
	a.mu.Lock()
	report, job := a.report, a.report.Jobs[a.currentJob]
	keys := a.keys[job.Name]
	a.mu.Unlock()

	a.summary.SetText(buildSummaryText(report, job))
	a.sections.SetText(buildSectionsText(job))
	a.distribution.SetText(buildDistributionText(keys, distributionBins))
	a.diagnostics.SetText(buildDiagnosticsText(report, job.Name))
}

func (a *App) nextFocus() {
	a.currentFocus = (a.currentFocus + 1) % len(a.focusableItems)
	a.updateFocusBorders()
	a.updateStatusBar()
}

func (a *App) prevFocus() {
	a.currentFocus = (a.currentFocus - 1 + len(a.focusableItems)) % len(a.focusableItems)
	a.updateFocusBorders()
	a.updateStatusBar()
}

func (a *App) getFocusedItem() tview.Primitive {
	if a.currentFocus >= 0 && a.currentFocus < len(a.focusableItems) {
		return a.focusableItems[a.currentFocus]
	}
	return nil
}

var panelNames = []string{"Sections", "Key Distribution", "Diagnostics"}

func (a *App) updateFocusBorders() {
	for i, item := range a.focusableItems {
		if tv, ok := item.(*tview.TextView); ok {
			if i == a.currentFocus {
				tv.SetBorderColor(tcell.ColorYellow).SetTitle(fmt.Sprintf(" [::b]%s[FOCUSED] ", panelNames[i]))
			} else {
				tv.SetBorderColor(tcell.ColorDefault).SetTitle(fmt.Sprintf(" %s ", panelNames[i]))
			}
		}
	}
}

func (a *App) updateStatusBar() {
	if !a.runComplete.Load() {
		a.statusBar.SetText("[yellow]Sorting...[white] | 'q' to quit")
		return
	}
	a.mu.Lock()
	jobName, current, total := a.report.Jobs[a.currentJob].Name, a.currentJob+1, len(a.report.Jobs)
	a.mu.Unlock()

	a.statusBar.SetText(fmt.Sprintf("[green]Run complete![white] | [yellow]%s[white] focused | [cyan]%s (%d/%d)[white] | Tab/Shift+Tab: panels, 'j': next job, ↑↓: scroll, 'q': quit",
		panelNames[a.currentFocus], jobName, current, total))
}
