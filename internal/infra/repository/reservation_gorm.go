package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/phone-reserve/internal/domain/reservation"
	"github.com/BruksfildServices01/phone-reserve/internal/httperr"
	"github.com/BruksfildServices01/phone-reserve/internal/models"
)

const defaultListLimit = 200

// activeStatuses must match the predicate of ux_reservations_active_slot.
var activeStatuses = []string{
	string(domain.StatusPending),
	string(domain.StatusConfirmed),
}

type ReservationGormRepository struct {
	db *gorm.DB
}

func NewReservationGormRepository(db *gorm.DB) *ReservationGormRepository {
	return &ReservationGormRepository{db: db}
}

// --------------------------------------------------
// Store / Product
// --------------------------------------------------

func (r *ReservationGormRepository) GetStore(
	ctx context.Context,
	id uint,
) (*models.Store, error) {

	var store models.Store
	if err := r.db.WithContext(ctx).First(&store, id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *ReservationGormRepository) GetProduct(
	ctx context.Context,
	storeID uint,
	productID uint,
) (*models.Product, error) {

	var product models.Product
	if err := r.db.WithContext(ctx).
		Where("id = ? AND store_id = ?", productID, storeID).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *ReservationGormRepository) ListForStoreDate(
	ctx context.Context,
	storeID uint,
	date string,
	limit int,
) ([]models.Reservation, error) {

	var rows []models.Reservation
	if err := r.db.WithContext(ctx).
		Select("id", "reservation_time", "status").
		Where("store_id = ? AND reservation_date = ?", storeID, date).
		Order("reservation_time ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// --------------------------------------------------
// Create
// --------------------------------------------------

// CreateExclusive locks the active rows for the slot, then inserts. The
// partial unique index still decides races between transactions that both
// saw an empty slot.
func (r *ReservationGormRepository) CreateExclusive(
	ctx context.Context,
	res *models.Reservation,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var holders []models.Reservation
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where(
				"store_id = ? AND reservation_date = ? AND reservation_time = ? AND status IN ?",
				res.StoreID, res.ReservationDate, res.ReservationTime, activeStatuses,
			).
			Find(&holders).Error; err != nil {
			return err
		}

		if len(holders) > 0 {
			return httperr.ErrBusiness("slot_taken")
		}

		return tx.Create(res).Error
	})

	if httperr.IsUniqueViolation(err) {
		return httperr.ErrBusiness("slot_taken")
	}
	return err
}

// --------------------------------------------------
// State change
// --------------------------------------------------

func (r *ReservationGormRepository) GetReservation(
	ctx context.Context,
	id uint,
) (*models.Reservation, error) {

	var res models.Reservation
	if err := r.db.WithContext(ctx).First(&res, id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ReservationGormRepository) UpdateStatus(
	ctx context.Context,
	res *models.Reservation,
	from domain.Status,
) error {

	result := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ? AND status = ?", res.ID, string(from)).
		Select(
			"status", "cancel_reason",
			"confirmed_at", "completed_at", "cancel_requested_at", "cancelled_at",
			"updated_at",
		).
		Updates(res)

	if result.Error != nil {
		// reject_cancel re-activates a slot someone else may have taken.
		if httperr.IsUniqueViolation(result.Error) {
			return httperr.ErrBusiness("slot_taken")
		}
		return fmt.Errorf("update reservation %d: %w", res.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *ReservationGormRepository) ListByUser(
	ctx context.Context,
	userID uint,
	f domain.ListFilter,
) ([]models.Reservation, error) {

	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	return r.list(q, f, "reservation_date DESC, reservation_time DESC")
}

func (r *ReservationGormRepository) ListByStore(
	ctx context.Context,
	storeID uint,
	f domain.ListFilter,
) ([]models.Reservation, error) {

	q := r.db.WithContext(ctx).Where("store_id = ?", storeID)
	return r.list(q, f, "reservation_date ASC, reservation_time ASC")
}

func (r *ReservationGormRepository) list(q *gorm.DB, f domain.ListFilter, order string) ([]models.Reservation, error) {
	if f.Date != "" {
		q = q.Where("reservation_date = ?", f.Date)
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}

	limit := f.Limit
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}

	var rows []models.Reservation
	if err := q.Order(order).Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Compile-time check
var _ domain.Repository = (*ReservationGormRepository)(nil)
