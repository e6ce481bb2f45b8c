package reservation

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/phone-reserve/internal/domain/reservation"
	"github.com/BruksfildServices01/phone-reserve/internal/httperr"
	"github.com/BruksfildServices01/phone-reserve/internal/models"
)

type ListReservations struct {
	repo domain.Repository
}

func NewListReservations(repo domain.Repository) *ListReservations {
	return &ListReservations{repo: repo}
}

func buildFilter(date, status string) (domain.ListFilter, error) {
	f := domain.ListFilter{}
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return f, httperr.ErrBusiness("invalid_date")
		}
		f.Date = date
	}
	if status != "" {
		if !domain.Status(status).Valid() {
			return f, httperr.ErrBusiness("invalid_status")
		}
		f.Status = domain.Status(status)
	}
	return f, nil
}

func (uc *ListReservations) ForUser(
	ctx context.Context,
	userID uint,
	status string,
) ([]models.Reservation, error) {

	f, err := buildFilter("", status)
	if err != nil {
		return nil, err
	}
	return uc.repo.ListByUser(ctx, userID, f)
}

func (uc *ListReservations) ForStore(
	ctx context.Context,
	storeID uint,
	date string,
	status string,
) ([]models.Reservation, error) {

	f, err := buildFilter(date, status)
	if err != nil {
		return nil, err
	}
	return uc.repo.ListByStore(ctx, storeID, f)
}
