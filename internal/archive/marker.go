package archive

import "fmt"

// DateMarker is an immutable (possibly partial) calendar date at
// year/month/day granularity. It carries the current position during
// descent and expresses preset filters. A zero field means "unset";
// presence is checked per field, so a month-only or day-only marker is
// representable (used for preset filters).
type DateMarker struct {
	Year  int
	Month int
	Day   int
}

// NewDateMarker creates a marker with only the year set.
func NewDateMarker(year int) DateMarker {
	return DateMarker{Year: year}
}

// WithMonth returns a copy of the marker with the month set.
func (m DateMarker) WithMonth(month int) DateMarker {
	m.Month = month
	return m
}

// WithDay returns a copy of the marker with the day set.
func (m DateMarker) WithDay(day int) DateMarker {
	m.Day = day
	return m
}

// HasYear reports whether the year is set.
func (m DateMarker) HasYear() bool { return m.Year > 0 }

// HasMonth reports whether the month is set.
func (m DateMarker) HasMonth() bool { return m.Month > 0 }

// HasDay reports whether the day is set.
func (m DateMarker) HasDay() bool { return m.Day > 0 }

// String renders the set fields top-down: "2021", "2021-03" or "2021-03-15".
func (m DateMarker) String() string {
	switch {
	case m.HasDay():
		return fmt.Sprintf("%04d-%02d-%02d", m.Year, m.Month, m.Day)
	case m.HasMonth():
		return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
	default:
		return fmt.Sprintf("%04d", m.Year)
	}
}
