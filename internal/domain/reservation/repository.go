package reservation

import (
	"context"

	"github.com/BruksfildServices01/phone-reserve/internal/models"
)

// ListFilter narrows reservation listings; zero values mean "any".
type ListFilter struct {
	Date   string
	Status Status
	Limit  int
}

type Repository interface {
	// -------- Store / Product --------
	GetStore(
		ctx context.Context,
		id uint,
	) (*models.Store, error)

	GetProduct(
		ctx context.Context,
		storeID uint,
		productID uint,
	) (*models.Product, error)

	// -------- Availability --------
	ListForStoreDate(
		ctx context.Context,
		storeID uint,
		date string,
		limit int,
	) ([]models.Reservation, error)

	// -------- Create --------

	// CreateExclusive inserts r unless another active reservation already
	// holds the same (store, date, time); that case returns the
	// "slot_taken" business error.
	CreateExclusive(
		ctx context.Context,
		r *models.Reservation,
	) error

	// -------- State change --------
	GetReservation(
		ctx context.Context,
		id uint,
	) (*models.Reservation, error)

	// UpdateStatus saves r only if its stored status is still from.
	UpdateStatus(
		ctx context.Context,
		r *models.Reservation,
		from Status,
	) error

	// -------- Listing --------
	ListByUser(
		ctx context.Context,
		userID uint,
		f ListFilter,
	) ([]models.Reservation, error)

	ListByStore(
		ctx context.Context,
		storeID uint,
		f ListFilter,
	) ([]models.Reservation, error)
}
