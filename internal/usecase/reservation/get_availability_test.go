package reservation

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/phone-reserve/internal/domain/availability"
	"github.com/BruksfildServices01/phone-reserve/internal/httperr"
	"github.com/BruksfildServices01/phone-reserve/internal/models"
)

func TestGetAvailability_Today(t *testing.T) {
	repo := newMemRepo()
	repo.seed(models.Reservation{StoreID: 1, ReservationDate: "2025-10-17", ReservationTime: "15:00", Status: "confirmed"})
	repo.seed(models.Reservation{StoreID: 1, ReservationDate: "2025-10-17", ReservationTime: "15:30", Status: "cancelled"})

	uc := NewGetAvailability(repo, fixedClock, zerolog.Nop())
	res, err := uc.Execute(context.Background(), GetAvailabilityInput{StoreID: 1})
	require.NoError(t, err)

	assert.Equal(t, "2025-10-17", res.Date)
	assert.Len(t, res.Dates, availability.HorizonDays)
	assert.Equal(t, availability.SourceConfigured, res.HoursSource)

	require.NotEmpty(t, res.Slots)
	assert.Equal(t, "14:30", res.Slots[0].Time)
	assert.Equal(t, "17:30", res.Slots[len(res.Slots)-1].Time)

	byTime := map[string]availability.SlotOption{}
	for _, s := range res.Slots {
		byTime[s.Time] = s
	}
	assert.False(t, byTime["15:00"].Available)
	assert.Equal(t, availability.ReasonReserved, byTime["15:00"].Reason)
	assert.True(t, byTime["15:30"].Available, "cancelled reservations free the slot")
	assert.Empty(t, res.Message)
}

func TestGetAvailability_MissingDayUsesDefault(t *testing.T) {
	repo := newMemRepo()
	delete(repo.stores[1].OperatingHours, "saturday")

	uc := NewGetAvailability(repo, fixedClock, zerolog.Nop())
	res, err := uc.Execute(context.Background(), GetAvailabilityInput{StoreID: 1, Date: "2025-10-18"})
	require.NoError(t, err)

	assert.Equal(t, availability.SourceDefaultMissing, res.HoursSource)
	assert.Len(t, res.Slots, 24)
	assert.Equal(t, "09:00", res.Slots[0].Time)
	assert.Equal(t, "20:30", res.Slots[len(res.Slots)-1].Time)
}

func TestGetAvailability_ClosedDay(t *testing.T) {
	repo := newMemRepo()
	repo.stores[1].OperatingHours["sunday"] = availability.DayHours{IsOpen: false}

	uc := NewGetAvailability(repo, fixedClock, zerolog.Nop())
	res, err := uc.Execute(context.Background(), GetAvailabilityInput{StoreID: 1, Date: "2025-10-19"})
	require.NoError(t, err)

	assert.Empty(t, res.Slots)
	assert.NotNil(t, res.Slots)
	assert.Equal(t, availability.NoSlotsMessage, res.Message)
}

func TestGetAvailability_Errors(t *testing.T) {
	uc := NewGetAvailability(newMemRepo(), fixedClock, zerolog.Nop())
	ctx := context.Background()

	_, err := uc.Execute(ctx, GetAvailabilityInput{StoreID: 2})
	assert.True(t, httperr.IsBusiness(err, "store_not_found"))

	_, err = uc.Execute(ctx, GetAvailabilityInput{StoreID: 99})
	assert.True(t, httperr.IsBusiness(err, "store_not_found"))

	_, err = uc.Execute(ctx, GetAvailabilityInput{StoreID: 1, Date: "17/10/2025"})
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))

	_, err = uc.Execute(ctx, GetAvailabilityInput{StoreID: 1, Date: "2025-10-31"})
	assert.True(t, httperr.IsBusiness(err, "date_out_of_range"))

	_, err = uc.Execute(ctx, GetAvailabilityInput{StoreID: 1, Date: "2025-10-16"})
	assert.True(t, httperr.IsBusiness(err, "date_out_of_range"))
}
