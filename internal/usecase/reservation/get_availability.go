package reservation

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/phone-reserve/internal/domain/availability"
	domain "github.com/BruksfildServices01/phone-reserve/internal/domain/reservation"
	"github.com/BruksfildServices01/phone-reserve/internal/httperr"
	"github.com/BruksfildServices01/phone-reserve/internal/metrics"
	"github.com/BruksfildServices01/phone-reserve/internal/timezone"
)

type GetAvailabilityInput struct {
	StoreID uint
	Date    string // empty means today in the store's timezone
}

type AvailabilityResult struct {
	StoreID     uint                        `json:"store_id"`
	Date        string                      `json:"date"`
	Dates       []availability.DateOption   `json:"dates"`
	Slots       []availability.SlotOption   `json:"slots"`
	HoursSource availability.WindowSource   `json:"hours_source"`
	Hours       availability.OperatingHours `json:"operating_hours"`
	Message     string                      `json:"message,omitempty"`
}

type GetAvailability struct {
	repo  domain.Repository
	clock timezone.Clock
	log   zerolog.Logger
}

func NewGetAvailability(
	repo domain.Repository,
	clock timezone.Clock,
	log zerolog.Logger,
) *GetAvailability {
	return &GetAvailability{repo: repo, clock: clock, log: log}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in GetAvailabilityInput,
) (*AvailabilityResult, error) {

	store, err := publicStore(ctx, uc.repo, in.StoreID)
	if err != nil {
		return nil, err
	}

	now, loc := storeNow(uc.clock, store)

	date := availability.StartOfDay(now)
	if in.Date != "" {
		if date, err = parseDate(in.Date, loc); err != nil {
			return nil, err
		}
	}
	if !availability.WithinHorizon(date, now) {
		return nil, httperr.ErrBusiness("date_out_of_range")
	}

	dateStr := date.Format(availability.DateLayout)

	candidates, src := availability.Candidates(date, store.OperatingHours, now)
	if src.IsDefault() {
		uc.log.Warn().
			Uint("store_id", store.ID).
			Str("weekday", availability.WeekdayKey(date.Weekday())).
			Str("hours_source", string(src)).
			Msg("operating hours fallback applied")
	}
	metrics.IncAvailability(string(src))

	rows, err := uc.repo.ListForStoreDate(ctx, store.ID, dateStr, FetchLimit)
	if err != nil {
		return nil, err
	}

	slots := availability.AnnotateSlots(candidates, domain.Bookings(rows), date, now)

	res := &AvailabilityResult{
		StoreID:     store.ID,
		Date:        dateStr,
		Dates:       availability.GenerateDateOptions(now),
		Slots:       slots,
		HoursSource: src,
		Hours:       store.OperatingHours,
	}
	if availability.CountAvailable(slots) == 0 {
		res.Message = availability.NoSlotsMessage
	}
	return res, nil
}
