package reservation

import (
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/phone-reserve/internal/domain/availability"
	"github.com/BruksfildServices01/phone-reserve/internal/models"
)

func NewSnapshot(store *models.Store, product *models.Product) models.ReservationSnapshot {
	return models.ReservationSnapshot{
		ProductName:  product.Name,
		Brand:        product.Brand,
		ModelName:    product.ModelName,
		Storage:      product.Storage,
		Color:        product.Color,
		Price:        product.Price,
		ImageURL:     product.ImageURL,
		StoreName:    store.Name,
		StoreAddress: store.Address,
		StorePhone:   store.Phone,
	}
}

// NewCode returns the short code shown to customers at pickup.
func NewCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

// Bookings converts stored rows into the calculator's view of occupancy.
func Bookings(rows []models.Reservation) []availability.Booking {
	out := make([]availability.Booking, 0, len(rows))
	for _, r := range rows {
		out = append(out, availability.Booking{
			Time:   r.ReservationTime,
			Active: Status(r.Status).Active(),
		})
	}
	return out
}
