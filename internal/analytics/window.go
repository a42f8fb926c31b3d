package analytics

import "strconv"

// Window is a trailing time range ending at the current date.
// AllTime means no lower bound.
type Window struct {
	Days    int
	AllTime bool
}

// Config enumerates the recognized window selectors and the date-label
// format policy applied to each tier. Call sites pass it explicitly so the
// chart behavior is plain configuration rather than package state.
type Config struct {
	// RecognizedDays are the day counts accepted from the query string.
	RecognizedDays []int
	// DefaultDays is the fallback for any unrecognized selector.
	DefaultDays int

	// Labels for windows up to ShortMaxDays use ShortFormat, up to
	// MediumMaxDays use MediumFormat, and everything beyond uses
	// LongFormat. The first two tiers currently render identically;
	// they are kept separate because the tier boundaries are part of
	// the observable output contract.
	ShortMaxDays  int
	MediumMaxDays int
	ShortFormat   string
	MediumFormat  string
	LongFormat    string
}

// DefaultConfig returns the production chart configuration:
// 30/90/365-day selectors, 30-day fallback, "day.month" labels with the
// 2-digit year appended only for windows longer than 90 days.
func DefaultConfig() Config {
	return Config{
		RecognizedDays: []int{30, 90, 365},
		DefaultDays:    30,
		ShortMaxDays:   30,
		MediumMaxDays:  90,
		ShortFormat:    "02.01",
		MediumFormat:   "02.01",
		LongFormat:     "02.01.06",
	}
}

// ResolveWindow maps a raw period selector to a window. "all" selects the
// all-time window; a recognized day count selects that many days; anything
// else falls back to DefaultDays. It never fails.
func (c Config) ResolveWindow(raw string) Window {
	if raw == "all" {
		return Window{AllTime: true}
	}
	return Window{Days: c.ResolveDays(raw)}
}

// ResolveDays maps a raw period selector to a day count for call sites
// where the all-time window is not valid. "all" and unrecognized values
// both clamp to DefaultDays.
func (c Config) ResolveDays(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return c.DefaultDays
	}
	for _, d := range c.RecognizedDays {
		if n == d {
			return n
		}
	}
	return c.DefaultDays
}

// labelFormat returns the time layout for day labels in a window of the
// given length.
func (c Config) labelFormat(days int) string {
	switch {
	case days <= c.ShortMaxDays:
		return c.ShortFormat
	case days <= c.MediumMaxDays:
		return c.MediumFormat
	default:
		return c.LongFormat
	}
}
