package reservation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/BruksfildServices01/phone-reserve/internal/audit"
	"github.com/BruksfildServices01/phone-reserve/internal/domain/availability"
	domain "github.com/BruksfildServices01/phone-reserve/internal/domain/reservation"
	"github.com/BruksfildServices01/phone-reserve/internal/httperr"
	"github.com/BruksfildServices01/phone-reserve/internal/metrics"
	"github.com/BruksfildServices01/phone-reserve/internal/models"
	"github.com/BruksfildServices01/phone-reserve/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateReservationInput struct {
	StoreID   uint
	ProductID uint
	UserID    uint

	Date string // YYYY-MM-DD
	Time string // HH:MM

	CustomerName  string
	CustomerPhone string
	Memo          string
}

// ======================================================
// USE CASE
// ======================================================

type CreateReservation struct {
	repo  domain.Repository
	audit Auditor
	clock timezone.Clock
}

func NewCreateReservation(
	repo domain.Repository,
	audit Auditor,
	clock timezone.Clock,
) *CreateReservation {
	return &CreateReservation{
		repo:  repo,
		audit: audit,
		clock: clock,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateReservation) Execute(
	ctx context.Context,
	in CreateReservationInput,
) (*models.Reservation, error) {

	// --------------------------------------------------
	// Store and product
	// --------------------------------------------------
	store, err := publicStore(ctx, uc.repo, in.StoreID)
	if err != nil {
		return nil, err
	}

	product, err := uc.repo.GetProduct(ctx, store.ID, in.ProductID)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, httperr.ErrBusiness("product_not_found")
		}
		return nil, err
	}
	if !product.Active || product.Stock <= 0 {
		return nil, httperr.ErrBusiness("product_unavailable")
	}

	// --------------------------------------------------
	// Date and slot in the store's timezone
	// --------------------------------------------------
	now, loc := storeNow(uc.clock, store)

	date, err := parseDate(in.Date, loc)
	if err != nil {
		return nil, err
	}
	if !availability.WithinHorizon(date, now) {
		return nil, httperr.ErrBusiness("date_out_of_range")
	}

	slot := strings.TrimSpace(in.Time)
	candidates := availability.GenerateTimeSlots(date, store.OperatingHours, now)

	rows, err := uc.repo.ListForStoreDate(ctx, store.ID, in.Date, FetchLimit)
	if err != nil {
		return nil, err
	}

	if err := availability.CheckSlot(slot, candidates, domain.Bookings(rows)); err != nil {
		return nil, uc.slotError(err, date, slot, store)
	}

	// --------------------------------------------------
	// Atomic insert
	// --------------------------------------------------
	productID := product.ID
	res := &models.Reservation{
		Code:            domain.NewCode(),
		StoreID:         store.ID,
		ProductID:       &productID,
		UserID:          in.UserID,
		ReservationDate: in.Date,
		ReservationTime: slot,
		Status:          string(domain.InitialStatus()),
		CustomerName:    strings.TrimSpace(in.CustomerName),
		CustomerPhone:   strings.TrimSpace(in.CustomerPhone),
		Memo:            strings.TrimSpace(in.Memo),
		Snapshot:        domain.NewSnapshot(store, product),
	}

	if err := uc.repo.CreateExclusive(ctx, res); err != nil {
		if httperr.IsBusiness(err, "slot_taken") {
			metrics.IncReservationCreated("conflict")
			uc.audit.Dispatch(audit.Event{
				StoreID:  store.ID,
				UserID:   &in.UserID,
				Action:   "reservation_conflict",
				Entity:   "reservation",
				Metadata: map[string]any{"date": in.Date, "time": slot},
			})
		} else {
			metrics.IncReservationCreated("error")
		}
		return nil, err
	}

	metrics.IncReservationCreated("created")
	uc.audit.Dispatch(audit.Event{
		StoreID:  store.ID,
		UserID:   &in.UserID,
		Action:   "reservation_created",
		Entity:   "reservation",
		EntityID: &res.ID,
	})

	return res, nil
}

func (uc *CreateReservation) slotError(err error, date time.Time, slot string, store *models.Store) error {
	if errors.Is(err, availability.ErrSlotBooked) {
		metrics.IncReservationCreated("conflict")
		return httperr.ErrBusiness("slot_taken")
	}

	metrics.IncReservationCreated("rejected")

	// Same weekday without the clock: if the slot exists there it has
	// simply already started.
	for _, s := range availability.GenerateTimeSlots(date, store.OperatingHours, time.Time{}) {
		if s == slot {
			return httperr.ErrBusiness("slot_in_past")
		}
	}
	return httperr.ErrBusiness("outside_operating_hours")
}
