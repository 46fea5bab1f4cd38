package ports

// DateParser interprets directory names as calendar date components.
// A return of 0 means the name does not encode a valid component at that
// level; malformed names are expected and never produce an error.
// Production code uses the dateparse.Standard grammar; alternative naming
// conventions plug in without touching the traversal engine.
type DateParser interface {
	// ParseYear returns the 4-digit year encoded in name, or 0.
	ParseYear(name string) int

	// ParseMonth returns the month (1-12) encoded in name, or 0.
	ParseMonth(name string) int

	// ParseDay returns the day of month (1-31) encoded in name, or 0.
	ParseDay(name string) int
}
