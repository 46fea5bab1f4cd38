// Package dateparse provides the standard directory-name grammar for dated
// photo archives: "2021" year directories, "03" or "03-vacation" month
// directories and "15" or "15_beach trip" day directories.
package dateparse

import (
	"regexp"
	"strconv"
)

// Component patterns. A month or day directory is two digits, optionally
// followed by a separator and a free label. Exposed so callers can assemble
// grammar variants without reimplementing the parser.
var (
	YearPattern  = regexp.MustCompile(`^(\d{4})$`)
	MonthPattern = regexp.MustCompile(`^(\d{2})(?:[-_ ].*)?$`)
	DayPattern   = regexp.MustCompile(`^(\d{2})(?:[-_ ].*)?$`)
)

// Years before the earliest surviving photograph are rejected.
const minYear = 1826

// Standard parses the standard archive naming grammar. The zero value is
// not usable; construct with NewStandard.
type Standard struct {
	year, month, day *regexp.Regexp
}

// NewStandard creates a parser for the standard grammar.
func NewStandard() *Standard {
	return &Standard{year: YearPattern, month: MonthPattern, day: DayPattern}
}

// NewCustom creates a parser with caller-supplied component patterns.
// Each pattern must capture the numeric component in its first group.
func NewCustom(year, month, day *regexp.Regexp) *Standard {
	return &Standard{year: year, month: month, day: day}
}

// ParseYear returns the 4-digit year encoded in name, or 0.
func (s *Standard) ParseYear(name string) int {
	n := capture(s.year, name)
	if n < minYear {
		return 0
	}
	return n
}

// ParseMonth returns the month (1-12) encoded in name, or 0.
func (s *Standard) ParseMonth(name string) int {
	n := capture(s.month, name)
	if n < 1 || n > 12 {
		return 0
	}
	return n
}

// ParseDay returns the day of month (1-31) encoded in name, or 0.
func (s *Standard) ParseDay(name string) int {
	n := capture(s.day, name)
	if n < 1 || n > 31 {
		return 0
	}
	return n
}

func capture(re *regexp.Regexp, name string) int {
	m := re.FindStringSubmatch(name)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
