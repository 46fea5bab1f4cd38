// Package archive implements the traversal engine for a photo archive laid
// out as a root/YYYY/MM/DD date hierarchy, plus the date marker and
// diagnostic event types it produces.
package archive

import (
	"errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/niwi/photoarc/internal/adapters/osfs"
	"github.com/niwi/photoarc/internal/dateparse"
	"github.com/niwi/photoarc/internal/ports"
)

// ErrExactPathWithoutPreset is returned by New when exact-path mode is
// requested without a preset date marker.
var ErrExactPathWithoutPreset = errors.New("exact path must be set with a preset date marker only")

// Options configures a Processor. RootPath is required; nil dependencies
// fall back to the OS filesystem, the standard grammar, a hook that reports
// every file as processed and matched, and a reporter that discards events.
type Options struct {
	// RootPath is the hierarchy root, or the exact year/month/day
	// directory when ExactPath is set.
	RootPath string

	// Preset restricts the walk to one year, month and/or day.
	// Nil means process everything.
	Preset *DateMarker

	// ExactPath means RootPath itself is the directory indicated by the
	// deepest set field of Preset, not the top-level root.
	ExactPath bool

	FS       ports.FileSystem
	Parser   ports.DateParser
	Hook     FileProcessor
	Reporter Reporter
}

// Processor walks the year/month/day hierarchy, applying the preset filter
// and driving the per-file hook. Configuration is read-only after New, so
// separate instances can run concurrently on disjoint subtrees.
type Processor struct {
	rootPath  string
	preset    *DateMarker
	exactPath bool

	fs       ports.FileSystem
	parser   ports.DateParser
	hook     FileProcessor
	reporter Reporter
}

type discardReporter struct{}

func (discardReporter) Report(Event) {}

// New validates the configuration and creates a Processor.
func New(opts Options) (*Processor, error) {
	if opts.ExactPath && opts.Preset == nil {
		return nil, ErrExactPathWithoutPreset
	}
	p := &Processor{
		rootPath:  opts.RootPath,
		preset:    opts.Preset,
		exactPath: opts.ExactPath,
		fs:        opts.FS,
		parser:    opts.Parser,
		hook:      opts.Hook,
		reporter:  opts.Reporter,
	}
	if p.fs == nil {
		p.fs = osfs.New()
	}
	if p.parser == nil {
		p.parser = dateparse.NewStandard()
	}
	if p.reporter == nil {
		p.reporter = discardReporter{}
	}
	if p.hook == nil {
		// Base behavior: report the file as processed and count it.
		p.hook = ProcessorFunc(func(path string, marker DateMarker, isDaySubdir bool) bool {
			p.reporter.Report(Event{Kind: FileProcessed, Path: path, Name: filepath.Base(path), Marker: marker})
			return true
		})
	}
	return p, nil
}

func (p *Processor) hasPresetYear() bool  { return p.preset != nil && p.preset.HasYear() }
func (p *Processor) hasPresetMonth() bool { return p.preset != nil && p.preset.HasMonth() }
func (p *Processor) hasPresetDay() bool   { return p.preset != nil && p.preset.HasDay() }

// Process runs the full traversal. It never returns an error: every skip,
// mismatch or listing failure is diagnostic-only and sibling traversal
// continues.
func (p *Processor) Process() {
	if p.exactPath {
		// The deepest preset field decides what kind of directory the
		// root is; nothing above it is ever listed.
		switch {
		case p.preset.HasDay():
			p.processDayDir(p.rootPath, *p.preset, false)
		case p.preset.HasMonth():
			p.processMonthDir(p.rootPath, *p.preset)
		default:
			p.processYearDir(p.rootPath, *p.preset)
		}
		return
	}

	p.reporter.Report(Event{Kind: ScanStart, Path: p.rootPath})

	entries, err := p.listSorted(p.rootPath)
	if err != nil {
		p.reporter.Report(Event{Kind: ListError, Path: p.rootPath, Err: err})
		return
	}

	yearFound := false
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		year := p.parser.ParseYear(entry.Name())
		if year == 0 {
			continue
		}
		if p.hasPresetYear() && p.preset.Year != year {
			continue
		}
		yearFound = true
		p.processYearDir(filepath.Join(p.rootPath, entry.Name()), NewDateMarker(year))
	}
	if p.hasPresetYear() && !yearFound {
		p.reporter.Report(Event{Kind: PresetYearMiss, Marker: *p.preset})
	}
}

func (p *Processor) processYearDir(dir string, marker DateMarker) {
	p.reporter.Report(Event{Kind: YearStart, Path: dir, Marker: marker})

	entries, err := p.listSorted(dir)
	if err != nil {
		p.reporter.Report(Event{Kind: ListError, Path: dir, Err: err})
		return
	}

	monthFound := false
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		month := p.parser.ParseMonth(name)
		if month != 0 && (!p.hasPresetMonth() || p.preset.Month == month) {
			monthFound = true
			p.processMonthDir(filepath.Join(dir, name), marker.WithMonth(month))
		} else {
			p.reporter.Report(Event{Kind: Skip, Path: filepath.Join(dir, name), Name: name, Marker: marker})
		}
	}
	if p.hasPresetMonth() && !monthFound {
		p.reporter.Report(Event{Kind: PresetMonthMiss, Marker: *p.preset})
	}
}

func (p *Processor) processMonthDir(dir string, marker DateMarker) {
	p.reporter.Report(Event{Kind: MonthStart, Path: dir, Marker: marker})

	entries, err := p.listSorted(dir)
	if err != nil {
		p.reporter.Report(Event{Kind: ListError, Path: dir, Err: err})
		return
	}

	dayFound := false
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		day := p.parser.ParseDay(name)
		if day != 0 && (!p.hasPresetDay() || p.preset.Day == day) {
			dayFound = true
			p.processDayDir(filepath.Join(dir, name), marker.WithDay(day), false)
		} else {
			p.reporter.Report(Event{Kind: Skip, Path: filepath.Join(dir, name), Name: name, Marker: marker})
		}
	}
	if p.hasPresetDay() && !dayFound {
		p.reporter.Report(Event{Kind: PresetDayMiss, Marker: *p.preset})
	}
}

// processDayDir handles the leaf stage. Day directories may contain exactly
// one extra level of subdirectories; anything deeper is a structural
// violation and only that subtree is skipped. File order within a day is
// whatever the filesystem returns.
func (p *Processor) processDayDir(dir string, marker DateMarker, isDaySubdir bool) {
	entries, err := p.fs.ReadDir(dir)
	if err != nil {
		p.reporter.Report(Event{Kind: ListError, Path: dir, Err: err})
		return
	}

	matched := 0
	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if isDaySubdir {
				p.reporter.Report(Event{Kind: NestedDayDir, Path: full, Name: entry.Name(), Marker: marker})
				continue
			}
			p.reporter.Report(Event{Kind: DayDirStart, Path: full, Name: entry.Name(), Marker: marker})
			p.processDayDir(full, marker, true)
			continue
		}
		if p.hook.ProcessFile(full, marker, isDaySubdir) {
			matched++
		}
	}
	if matched > 0 {
		p.reporter.Report(Event{Kind: DayMatched, Path: dir, Marker: marker, Count: matched})
	}
}

// listSorted returns the directory's entries ordered by name. The ordering
// at the year and month levels is a correctness requirement: it makes
// traversal order deterministic across runs.
func (p *Processor) listSorted(dir string) ([]os.DirEntry, error) {
	entries, err := p.fs.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}
