package archive

// EventKind classifies a traversal diagnostic.
type EventKind int

const (
	// ScanStart is emitted once before the root listing in normal mode.
	ScanStart EventKind = iota
	// YearStart, MonthStart and DayDirStart mark descent into a level.
	YearStart
	MonthStart
	DayDirStart
	// Skip reports a directory that failed to parse as a date component
	// (or did not match the preset) at the month or day level.
	Skip
	// PresetYearMiss, PresetMonthMiss and PresetDayMiss warn that a
	// preset component matched no directory at its level.
	PresetYearMiss
	PresetMonthMiss
	PresetDayMiss
	// NestedDayDir is the structural violation: a directory found inside
	// a day subdirectory. The offending subtree is skipped.
	NestedDayDir
	// FileProcessed reports a single leaf file handed to the hook.
	FileProcessed
	// DayMatched carries the per-day matched count (emitted when > 0).
	DayMatched
	// ListError reports a directory whose listing failed; siblings continue.
	ListError
	// HookError reports a per-file hook failure (e.g. a copy that could
	// not complete). The file is skipped; the run continues.
	HookError
	// DateMismatch reports a file whose embedded capture date disagrees
	// with its directory date.
	DateMismatch
)

// Event is one structured traversal diagnostic. Text formatting is a
// presentation concern handled by report.Console; the engine only emits data.
type Event struct {
	Kind   EventKind
	Path   string     // absolute path of the subject, where applicable
	Name   string     // base name of the subject entry
	Marker DateMarker // traversal position when the event fired
	Count  int        // matched count for DayMatched
	Detail string     // extra context, e.g. the embedded date for DateMismatch
	Err    error      // underlying error for ListError and HookError
}

// Reporter consumes traversal events.
type Reporter interface {
	Report(Event)
}

// FileProcessor is the pluggable per-file hook invoked for every leaf file.
// It returns whether the file counted as matched for its day directory.
type FileProcessor interface {
	ProcessFile(path string, marker DateMarker, isDaySubdir bool) bool
}

// ProcessorFunc adapts a plain function to the FileProcessor interface.
type ProcessorFunc func(path string, marker DateMarker, isDaySubdir bool) bool

// ProcessFile calls f.
func (f ProcessorFunc) ProcessFile(path string, marker DateMarker, isDaySubdir bool) bool {
	return f(path, marker, isDaySubdir)
}
