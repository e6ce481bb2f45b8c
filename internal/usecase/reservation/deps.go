package reservation

import (
	"context"
	"time"

	"github.com/BruksfildServices01/phone-reserve/internal/audit"
	domain "github.com/BruksfildServices01/phone-reserve/internal/domain/reservation"
	"github.com/BruksfildServices01/phone-reserve/internal/httperr"
	"github.com/BruksfildServices01/phone-reserve/internal/models"
	"github.com/BruksfildServices01/phone-reserve/internal/timezone"
)

// FetchLimit caps the reservations read for one store and date.
const FetchLimit = 500

type Auditor interface {
	Dispatch(ev audit.Event)
}

// ======================================================
// HELPERS
// ======================================================

// publicStore loads a store customers are allowed to see.
func publicStore(ctx context.Context, repo domain.Repository, id uint) (*models.Store, error) {
	store, err := repo.GetStore(ctx, id)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, httperr.ErrBusiness("store_not_found")
		}
		return nil, err
	}
	if !store.Approved {
		return nil, httperr.ErrBusiness("store_not_found")
	}
	return store, nil
}

func storeNow(clock timezone.Clock, store *models.Store) (time.Time, *time.Location) {
	loc := timezone.Location(store.Timezone)
	return clock().In(loc), loc
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_date")
	}
	return d, nil
}
