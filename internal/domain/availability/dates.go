package availability

import (
	"fmt"
	"time"
)

// HorizonDays is how far ahead, today included, a reservation can be made.
const HorizonDays = 14

const DateLayout = "2006-01-02"

type DateOption struct {
	Value     string `json:"value"`
	Label     string `json:"label"`
	Weekday   string `json:"weekday"`
	IsToday   bool   `json:"is_today"`
	IsWeekend bool   `json:"is_weekend"`
}

var koreanWeekdays = [...]string{"일", "월", "화", "수", "목", "금", "토"}

// GenerateDateOptions returns today and the following 13 days in now's location.
func GenerateDateOptions(now time.Time) []DateOption {
	today := StartOfDay(now)

	out := make([]DateOption, 0, HorizonDays)
	for i := 0; i < HorizonDays; i++ {
		d := today.AddDate(0, 0, i)
		wd := d.Weekday()
		out = append(out, DateOption{
			Value:     d.Format(DateLayout),
			Label:     fmt.Sprintf("%d월 %d일 (%s)", int(d.Month()), d.Day(), koreanWeekdays[wd]),
			Weekday:   WeekdayKey(wd),
			IsToday:   i == 0,
			IsWeekend: wd == time.Saturday || wd == time.Sunday,
		})
	}
	return out
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether now falls on date's calendar day, judged in date's location.
func SameDay(date, now time.Time) bool {
	n := now.In(date.Location())
	return n.Year() == date.Year() && n.Month() == date.Month() && n.Day() == date.Day()
}

// WithinHorizon reports whether date is one of the days GenerateDateOptions
// would offer for now.
func WithinHorizon(date, now time.Time) bool {
	today := StartOfDay(now.In(date.Location()))
	day := StartOfDay(date)
	last := today.AddDate(0, 0, HorizonDays-1)
	return !day.Before(today) && !day.After(last)
}
