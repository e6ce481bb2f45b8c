package availability

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

const (
	DefaultOpenTime  = "09:00"
	DefaultCloseTime = "21:00"
)

var ErrInvalidHours = errors.New("invalid operating hours")

// DayHours is the configuration of a single weekday.
type DayHours struct {
	IsOpen    bool   `json:"is_open"`
	OpenTime  string `json:"open_time,omitempty"`
	CloseTime string `json:"close_time,omitempty"`
}

// OperatingHours maps a lowercase English weekday name to its hours.
type OperatingHours map[string]DayHours

var weekdayKeys = [...]string{
	time.Sunday:    "sunday",
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
}

func WeekdayKey(d time.Weekday) string {
	return weekdayKeys[d]
}

func isWeekdayKey(key string) bool {
	for _, k := range weekdayKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Validate is the write-time rule: every open day carries both
// times and opens strictly before it closes.
func (h OperatingHours) Validate() error {
	for key, day := range h {
		if !isWeekdayKey(key) {
			return fmt.Errorf("%w: unknown weekday %q", ErrInvalidHours, key)
		}
		if !day.IsOpen {
			continue
		}
		open, err := ParseClock(day.OpenTime)
		if err != nil {
			return fmt.Errorf("%w: %s open_time: %v", ErrInvalidHours, key, err)
		}
		closing, err := ParseClock(day.CloseTime)
		if err != nil {
			return fmt.Errorf("%w: %s close_time: %v", ErrInvalidHours, key, err)
		}
		if open >= closing {
			return fmt.Errorf("%w: %s opens at %s but closes at %s", ErrInvalidHours, key, day.OpenTime, day.CloseTime)
		}
	}
	return nil
}

// ParseClock converts a zero padded "HH:MM" string into minutes after midnight.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' || !digits(s[:2]) || !digits(s[3:]) {
		return 0, fmt.Errorf("expected HH:MM, got %q", s)
	}
	h, err := strconv.Atoi(s[:2])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(s[3:])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}

// digits rejects the signs strconv.Atoi would otherwise accept.
func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Window is a half-open [Open, Close) range in minutes after midnight.
type Window struct {
	Open  int
	Close int
}

func DefaultWindow() Window {
	open, _ := ParseClock(DefaultOpenTime)
	closing, _ := ParseClock(DefaultCloseTime)
	return Window{Open: open, Close: closing}
}

// WindowSource tells callers whether a window came from the store's own
// settings or from the 09:00-21:00 fallback.
type WindowSource string

const (
	SourceConfigured       WindowSource = "configured"
	SourceDefaultMissing   WindowSource = "default_missing"
	SourceDefaultMalformed WindowSource = "default_malformed"
	SourceClosed           WindowSource = "closed"
)

func (s WindowSource) IsDefault() bool {
	return s == SourceDefaultMissing || s == SourceDefaultMalformed
}

func ResolveWindow(hours OperatingHours, day time.Weekday) (Window, WindowSource) {
	entry, ok := hours[WeekdayKey(day)]
	if !ok {
		return DefaultWindow(), SourceDefaultMissing
	}
	if !entry.IsOpen {
		return Window{}, SourceClosed
	}

	open, err := ParseClock(entry.OpenTime)
	if err != nil {
		return DefaultWindow(), SourceDefaultMalformed
	}
	closing, err := ParseClock(entry.CloseTime)
	if err != nil || open >= closing {
		return DefaultWindow(), SourceDefaultMalformed
	}

	return Window{Open: open, Close: closing}, SourceConfigured
}
