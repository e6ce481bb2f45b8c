package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDateOptions(t *testing.T) {
	now := at(2026, 10, 17, 22, 41)
	opts := GenerateDateOptions(now)

	require.Len(t, opts, HorizonDays)
	assert.Equal(t, "2026-10-17", opts[0].Value)
	assert.Equal(t, "2026-10-30", opts[13].Value)
	assert.Equal(t, "10월 17일 (토)", opts[0].Label)
	assert.Equal(t, "saturday", opts[0].Weekday)

	first, err := time.ParseInLocation(DateLayout, opts[0].Value, kst)
	require.NoError(t, err)
	for i, o := range opts {
		assert.Equal(t, i == 0, o.IsToday, "index %d", i)
		assert.Equal(t, first.AddDate(0, 0, i).Format(DateLayout), o.Value)
	}

	assert.True(t, opts[0].IsWeekend)
	assert.True(t, opts[1].IsWeekend)
	assert.False(t, opts[2].IsWeekend)
}

func TestGenerateDateOptions_MonthRollover(t *testing.T) {
	opts := GenerateDateOptions(at(2026, 12, 28, 10, 0))
	require.Len(t, opts, HorizonDays)
	assert.Equal(t, "2026-12-31", opts[3].Value)
	assert.Equal(t, "2027-01-01", opts[4].Value)
	assert.Equal(t, "1월 1일 (금)", opts[4].Label)
}

func TestWithinHorizon(t *testing.T) {
	now := at(2026, 10, 17, 23, 0)

	assert.True(t, WithinHorizon(at(2026, 10, 17, 0, 0), now))
	assert.True(t, WithinHorizon(at(2026, 10, 30, 0, 0), now))
	assert.False(t, WithinHorizon(at(2026, 10, 31, 0, 0), now))
	assert.False(t, WithinHorizon(at(2026, 10, 16, 0, 0), now))
}

func TestSameDay_UsesDateLocation(t *testing.T) {
	date := at(2026, 10, 18, 0, 0)
	// 2026-10-17 16:30 UTC is already the 18th in Seoul.
	now := time.Date(2026, 10, 17, 16, 30, 0, 0, time.UTC)
	assert.True(t, SameDay(date, now))

	slots := GenerateTimeSlots(date, everyDay("00:00", "03:00"), now)
	assert.Equal(t, []string{"02:00", "02:30"}, slots)
}
