package reservation

import (
	"context"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/phone-reserve/internal/audit"
	"github.com/BruksfildServices01/phone-reserve/internal/domain/availability"
	domain "github.com/BruksfildServices01/phone-reserve/internal/domain/reservation"
	"github.com/BruksfildServices01/phone-reserve/internal/httperr"
	"github.com/BruksfildServices01/phone-reserve/internal/models"
)

var kst = time.FixedZone("KST", 9*60*60)

// Friday 2025-10-17 14:10 KST.
func fixedClock() time.Time {
	return time.Date(2025, 10, 17, 14, 10, 0, 0, kst)
}

type memRepo struct {
	mu           sync.Mutex
	stores       map[uint]*models.Store
	products     map[uint]*models.Product
	reservations []*models.Reservation
	nextID       uint
}

func newMemRepo() *memRepo {
	hours := availability.OperatingHours{}
	for _, d := range []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"} {
		hours[d] = availability.DayHours{IsOpen: true, OpenTime: "09:00", CloseTime: "18:00"}
	}
	return &memRepo{
		stores: map[uint]*models.Store{
			1: {ID: 1, Name: "강남 폰마트", Approved: true, Timezone: "Asia/Seoul", OperatingHours: hours},
			2: {ID: 2, Name: "대기 매장", Approved: false, Timezone: "Asia/Seoul", OperatingHours: hours},
		},
		products: map[uint]*models.Product{
			10: {ID: 10, StoreID: 1, Name: "Galaxy S25", Brand: "Samsung", Price: 1150000, Stock: 3, Active: true},
			11: {ID: 11, StoreID: 1, Name: "iPhone 16", Brand: "Apple", Price: 1250000, Stock: 0, Active: true},
		},
		nextID: 100,
	}
}

func (m *memRepo) GetStore(_ context.Context, id uint) (*models.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memRepo) GetProduct(_ context.Context, storeID, productID uint) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[productID]
	if !ok || p.StoreID != storeID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memRepo) ListForStoreDate(_ context.Context, storeID uint, date string, limit int) ([]models.Reservation, error) {
	return m.list(func(r *models.Reservation) bool {
		return r.StoreID == storeID && r.ReservationDate == date
	}, limit), nil
}

func (m *memRepo) CreateExclusive(_ context.Context, r *models.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.reservations {
		if e.StoreID == r.StoreID &&
			e.ReservationDate == r.ReservationDate &&
			e.ReservationTime == r.ReservationTime &&
			domain.Status(e.Status).Active() {
			return httperr.ErrBusiness("slot_taken")
		}
	}
	m.nextID++
	r.ID = m.nextID
	cp := *r
	m.reservations = append(m.reservations, &cp)
	return nil
}

func (m *memRepo) GetReservation(_ context.Context, id uint) (*models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reservations {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memRepo) UpdateStatus(_ context.Context, r *models.Reservation, from domain.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.reservations {
		if e.ID == r.ID {
			if e.Status != string(from) {
				return httperr.ErrBusiness("invalid_state")
			}
			cp := *r
			m.reservations[i] = &cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *memRepo) ListByUser(_ context.Context, userID uint, f domain.ListFilter) ([]models.Reservation, error) {
	return m.list(func(r *models.Reservation) bool {
		return r.UserID == userID && matches(r, f)
	}, f.Limit), nil
}

func (m *memRepo) ListByStore(_ context.Context, storeID uint, f domain.ListFilter) ([]models.Reservation, error) {
	return m.list(func(r *models.Reservation) bool {
		return r.StoreID == storeID && matches(r, f)
	}, f.Limit), nil
}

func matches(r *models.Reservation, f domain.ListFilter) bool {
	if f.Date != "" && r.ReservationDate != f.Date {
		return false
	}
	if f.Status != "" && r.Status != string(f.Status) {
		return false
	}
	return true
}

func (m *memRepo) list(keep func(*models.Reservation) bool, limit int) []models.Reservation {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Reservation{}
	for _, r := range m.reservations {
		if keep(r) {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ReservationTime < out[j].ReservationTime
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (m *memRepo) seed(r models.Reservation) *models.Reservation {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	r.ID = m.nextID
	m.reservations = append(m.reservations, &r)
	return &r
}

type recordingAuditor struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *recordingAuditor) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *recordingAuditor) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.events))
	for _, ev := range a.events {
		out = append(out, ev.Action)
	}
	return out
}

var _ domain.Repository = (*memRepo)(nil)
