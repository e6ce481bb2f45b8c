package availability

import (
	"time"
)

// Booking is an existing reservation as seen by the calculator. Active is
// true when its status still holds the slot.
type Booking struct {
	Time   string
	Active bool
}

type Reason string

const (
	ReasonNone     Reason = ""
	ReasonPast     Reason = "past"
	ReasonReserved Reason = "reserved"
)

var reasonLabels = map[Reason]string{
	ReasonPast:     "지난 시간",
	ReasonReserved: "예약됨",
}

func (r Reason) Label() string {
	return reasonLabels[r]
}

type SlotOption struct {
	Time        string `json:"time"`
	Available   bool   `json:"available"`
	Reason      Reason `json:"reason,omitempty"`
	ReasonLabel string `json:"reason_label,omitempty"`
}

func BookedSet(bookings []Booking) map[string]struct{} {
	set := make(map[string]struct{}, len(bookings))
	for _, b := range bookings {
		if b.Active {
			set[b.Time] = struct{}{}
		}
	}
	return set
}

// AnnotateSlots keeps every candidate and disables the ones that are booked
// or have already started.
func AnnotateSlots(slots []string, bookings []Booking, date, now time.Time) []SlotOption {
	booked := BookedSet(bookings)
	sameDay := SameDay(date, now)
	nowMinutes := 0
	if sameDay {
		n := now.In(date.Location())
		nowMinutes = n.Hour()*60 + n.Minute()
	}

	out := make([]SlotOption, 0, len(slots))
	for _, s := range slots {
		opt := SlotOption{Time: s, Available: true}

		if sameDay {
			if m, err := ParseClock(s); err == nil && m <= nowMinutes {
				opt.Reason = ReasonPast
			}
		}
		if _, ok := booked[s]; ok && opt.Reason == ReasonNone {
			opt.Reason = ReasonReserved
		}

		if opt.Reason != ReasonNone {
			opt.Available = false
			opt.ReasonLabel = opt.Reason.Label()
		}
		out = append(out, opt)
	}
	return out
}

// CheckSlot is the submission-time rule: the slot must be a candidate and
// must not be held by an active booking.
func CheckSlot(slot string, candidates []string, bookings []Booking) error {
	found := false
	for _, c := range candidates {
		if c == slot {
			found = true
			break
		}
	}
	if !found {
		return ErrNotCandidate
	}

	if _, ok := BookedSet(bookings)[slot]; ok {
		return ErrSlotBooked
	}
	return nil
}

// CountAvailable returns how many options are still selectable.
func CountAvailable(opts []SlotOption) int {
	n := 0
	for _, o := range opts {
		if o.Available {
			n++
		}
	}
	return n
}

func IsBookable(slot string, candidates []string, bookings []Booking) bool {
	return CheckSlot(slot, candidates, bookings) == nil
}
