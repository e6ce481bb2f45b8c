package availability

import (
	"errors"
	"time"
)

// SlotMinutes is the booking granularity.
const SlotMinutes = 30

const NoSlotsMessage = "예약 가능한 시간이 없습니다"

var (
	ErrNotCandidate = errors.New("slot is not bookable on this date")
	ErrSlotBooked   = errors.New("slot already booked")
)

// GenerateTimeSlots lists the "HH:MM" starts a customer may pick on date.
// Every slot ends at or before closing. On the current day, slots at or before the next half-hour boundary after
// now are dropped.
func GenerateTimeSlots(date time.Time, hours OperatingHours, now time.Time) []string {
	slots, _ := Candidates(date, hours, now)
	return slots
}

// Candidates is GenerateTimeSlots plus the source of the window used.
func Candidates(date time.Time, hours OperatingHours, now time.Time) ([]string, WindowSource) {
	slots := make([]string, 0)

	w, src := ResolveWindow(hours, date.Weekday())
	if src == SourceClosed {
		return slots, src
	}

	start := ceilToSlot(w.Open)
	if SameDay(date, now) {
		if b := nextBoundary(now.In(date.Location())); b > start {
			start = b
		}
	}

	// A slot must finish by closing time.
	for t := start; t+SlotMinutes <= w.Close; t += SlotMinutes {
		slots = append(slots, FormatClock(t))
	}
	return slots, src
}

func ceilToSlot(minutes int) int {
	return (minutes + SlotMinutes - 1) / SlotMinutes * SlotMinutes
}

// nextBoundary is the first half-hour mark strictly after now.
func nextBoundary(now time.Time) int {
	h, m := now.Hour(), now.Minute()
	if m < 30 {
		return h*60 + 30
	}
	return (h + 1) * 60
}
