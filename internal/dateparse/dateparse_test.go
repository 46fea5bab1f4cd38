package dateparse

import (
	"regexp"
	"testing"
)

func TestParseYear(t *testing.T) {
	tests := []struct {
		name     string
		expected int
	}{
		{"2021", 2021},
		{"1999", 1999},
		{"1826", 1826},
		{"1825", 0},  // before the cutoff
		{"0042", 0},  // below cutoff
		{"202", 0},   // too short
		{"20211", 0}, // too long
		{"2021-extra", 0},
		{"misc", 0},
		{"", 0},
	}

	p := NewStandard()
	for _, tt := range tests {
		if got := p.ParseYear(tt.name); got != tt.expected {
			t.Errorf("ParseYear(%q) = %d, expected %d", tt.name, got, tt.expected)
		}
	}
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		name     string
		expected int
	}{
		{"01", 1},
		{"12", 12},
		{"03-vacation", 3},
		{"07_summer", 7},
		{"09 september", 9},
		{"00", 0},
		{"13", 0},
		{"1", 0},      // single digit not allowed
		{"03x", 0},    // label needs a separator
		{"2021", 0},   // four digits is a year, not a month
		{"videos", 0},
	}

	p := NewStandard()
	for _, tt := range tests {
		if got := p.ParseMonth(tt.name); got != tt.expected {
			t.Errorf("ParseMonth(%q) = %d, expected %d", tt.name, got, tt.expected)
		}
	}
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		name     string
		expected int
	}{
		{"01", 1},
		{"31", 31},
		{"15_beach trip", 15},
		{"00", 0},
		{"32", 0},
		{"5", 0},
		{"raw", 0},
	}

	p := NewStandard()
	for _, tt := range tests {
		if got := p.ParseDay(tt.name); got != tt.expected {
			t.Errorf("ParseDay(%q) = %d, expected %d", tt.name, got, tt.expected)
		}
	}
}

func TestCustomGrammar(t *testing.T) {
	// A "2021_12_holidays" convention where months carry the year prefix.
	p := NewCustom(
		YearPattern,
		regexp.MustCompile(`^\d{4}_(\d{2})(?:_.*)?$`),
		DayPattern,
	)

	if got := p.ParseMonth("2021_12_holidays"); got != 12 {
		t.Errorf("ParseMonth = %d, expected 12", got)
	}
	if got := p.ParseMonth("12"); got != 0 {
		t.Errorf("ParseMonth = %d, expected 0 for bare month under custom grammar", got)
	}
	if got := p.ParseYear("2021"); got != 2021 {
		t.Errorf("ParseYear = %d, expected 2021", got)
	}
}
