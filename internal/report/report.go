// Package report renders traversal events. The engine emits structured
// events; formatting to text is the final, swappable presentation step.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/niwi/photoarc/internal/archive"
)

// Console renders events as the classic progress lines, info to Out and
// warnings/errors to Err.
type Console struct {
	Out io.Writer
	Err io.Writer

	yellow func(a ...interface{}) string
	red    func(a ...interface{}) string
}

// NewConsole creates a colored console reporter.
func NewConsole(out, errOut io.Writer) *Console {
	return &Console{
		Out:    out,
		Err:    errOut,
		yellow: color.New(color.FgYellow).SprintFunc(),
		red:    color.New(color.FgRed).SprintFunc(),
	}
}

// NewPlainConsole creates a console reporter without color (for testing).
func NewPlainConsole(out, errOut io.Writer) *Console {
	plain := func(a ...interface{}) string { return fmt.Sprint(a...) }
	return &Console{Out: out, Err: errOut, yellow: plain, red: plain}
}

// Report writes the event's text form. Wording of the progress and warning
// lines is stable; tooling downstream greps for it.
func (c *Console) Report(e archive.Event) {
	switch e.Kind {
	case archive.ScanStart:
		fmt.Fprintf(c.Out, "Starting to scan the root path: %s\n", e.Path)
	case archive.YearStart:
		fmt.Fprintf(c.Out, "Processing the year: %d\n", e.Marker.Year)
	case archive.MonthStart:
		fmt.Fprintf(c.Out, "Processing the month: %d\n", e.Marker.Month)
	case archive.DayDirStart:
		fmt.Fprintf(c.Out, "Processing day subdirectory: %s\n", e.Name)
	case archive.Skip:
		fmt.Fprintf(c.Out, "Non valid directory: %s\n", e.Name)
	case archive.PresetYearMiss:
		fmt.Fprintln(c.Err, c.yellow("Preset year not found."))
	case archive.PresetMonthMiss:
		fmt.Fprintln(c.Err, c.yellow("Preset month not found."))
	case archive.PresetDayMiss:
		fmt.Fprintln(c.Err, c.yellow("Preset day not found."))
	case archive.NestedDayDir:
		fmt.Fprintln(c.Err, c.red("Days could not contain two levels of subdirectories: "+e.Path))
	case archive.FileProcessed:
		fmt.Fprintf(c.Out, "PROCESSED image: %s\n", e.Name)
	case archive.DayMatched:
		fmt.Fprintf(c.Out, "MATCHED %d\n", e.Count)
	case archive.ListError:
		fmt.Fprintln(c.Err, c.red(fmt.Sprintf("Could not list directory %s: %v", e.Path, e.Err)))
	case archive.HookError:
		fmt.Fprintln(c.Err, c.red(fmt.Sprintf("Could not process file %s: %v", e.Path, e.Err)))
	case archive.DateMismatch:
		fmt.Fprintln(c.Err, c.yellow(fmt.Sprintf("Date mismatch for %s: taken %s, filed under %s", e.Path, e.Detail, e.Marker)))
	}
}

// Capture records events for assertions in tests and feeds the TUI's
// live run view.
type Capture struct {
	Events []archive.Event
}

// Report appends the event.
func (c *Capture) Report(e archive.Event) {
	c.Events = append(c.Events, e)
}

// Kinds returns the kinds of all recorded events in order.
func (c *Capture) Kinds() []archive.EventKind {
	kinds := make([]archive.EventKind, len(c.Events))
	for i, e := range c.Events {
		kinds[i] = e.Kind
	}
	return kinds
}

// ByKind returns the recorded events of one kind, in order.
func (c *Capture) ByKind(kind archive.EventKind) []archive.Event {
	var out []archive.Event
	for _, e := range c.Events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Compile-time checks.
var (
	_ archive.Reporter = (*Console)(nil)
	_ archive.Reporter = (*Capture)(nil)
)
