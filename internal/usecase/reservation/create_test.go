package reservation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/phone-reserve/internal/httperr"
	"github.com/BruksfildServices01/phone-reserve/internal/models"
)

func validInput() CreateReservationInput {
	return CreateReservationInput{
		StoreID:       1,
		ProductID:     10,
		UserID:        7,
		Date:          "2025-10-18",
		Time:          "11:00",
		CustomerName:  " 김민수 ",
		CustomerPhone: "010-1234-5678",
	}
}

func TestCreateReservation_Success(t *testing.T) {
	repo := newMemRepo()
	auditor := &recordingAuditor{}
	uc := NewCreateReservation(repo, auditor, fixedClock)

	res, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)

	assert.NotZero(t, res.ID)
	assert.Len(t, res.Code, 10)
	assert.Equal(t, "pending", res.Status)
	assert.Equal(t, "김민수", res.CustomerName)
	assert.Equal(t, "Galaxy S25", res.Snapshot.ProductName)
	assert.Equal(t, int64(1150000), res.Snapshot.Price)
	assert.Equal(t, "강남 폰마트", res.Snapshot.StoreName)
	require.NotNil(t, res.ProductID)
	assert.Equal(t, uint(10), *res.ProductID)

	assert.Equal(t, []string{"reservation_created"}, auditor.actions())
}

func TestCreateReservation_SlotTaken(t *testing.T) {
	repo := newMemRepo()
	auditor := &recordingAuditor{}
	uc := NewCreateReservation(repo, auditor, fixedClock)
	ctx := context.Background()

	_, err := uc.Execute(ctx, validInput())
	require.NoError(t, err)

	in := validInput()
	in.UserID = 8
	_, err = uc.Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "slot_taken"))
}

func TestCreateReservation_CancelledFreesSlot(t *testing.T) {
	repo := newMemRepo()
	repo.seed(models.Reservation{StoreID: 1, ReservationDate: "2025-10-18", ReservationTime: "11:00", Status: "cancelled"})
	repo.seed(models.Reservation{StoreID: 1, ReservationDate: "2025-10-18", ReservationTime: "11:00", Status: "completed"})

	uc := NewCreateReservation(repo, &recordingAuditor{}, fixedClock)
	_, err := uc.Execute(context.Background(), validInput())
	assert.NoError(t, err)
}

// Two submissions that both pass the advisory check still only get one row.
func TestCreateReservation_AtomicInsertWins(t *testing.T) {
	repo := newMemRepo()
	auditor := &recordingAuditor{}
	uc := NewCreateReservation(&racingRepo{memRepo: repo}, auditor, fixedClock)

	_, err := uc.Execute(context.Background(), validInput())
	assert.True(t, httperr.IsBusiness(err, "slot_taken"))
	assert.Equal(t, []string{"reservation_conflict"}, auditor.actions())
}

// racingRepo hides existing rows from the advisory read and inserts a
// competing reservation just before ours.
type racingRepo struct {
	*memRepo
}

func (r *racingRepo) ListForStoreDate(context.Context, uint, string, int) ([]models.Reservation, error) {
	return nil, nil
}

func (r *racingRepo) CreateExclusive(ctx context.Context, res *models.Reservation) error {
	other := *res
	other.UserID = 99
	if err := r.memRepo.CreateExclusive(ctx, &other); err != nil {
		return err
	}
	return r.memRepo.CreateExclusive(ctx, res)
}

func TestCreateReservation_Rejections(t *testing.T) {
	cases := []struct {
		name string
		mod  func(*CreateReservationInput)
		code string
	}{
		{"store not approved", func(in *CreateReservationInput) { in.StoreID = 2 }, "store_not_found"},
		{"unknown product", func(in *CreateReservationInput) { in.ProductID = 55 }, "product_not_found"},
		{"out of stock", func(in *CreateReservationInput) { in.ProductID = 11 }, "product_unavailable"},
		{"bad date", func(in *CreateReservationInput) { in.Date = "2025-13-01" }, "invalid_date"},
		{"beyond horizon", func(in *CreateReservationInput) { in.Date = "2025-11-05" }, "date_out_of_range"},
		{"before opening", func(in *CreateReservationInput) { in.Time = "08:30" }, "outside_operating_hours"},
		{"at closing", func(in *CreateReservationInput) { in.Time = "18:00" }, "outside_operating_hours"},
		{"off grid", func(in *CreateReservationInput) { in.Time = "11:15" }, "outside_operating_hours"},
		{"already started today", func(in *CreateReservationInput) {
			in.Date = "2025-10-17"
			in.Time = "14:00"
		}, "slot_in_past"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := NewCreateReservation(newMemRepo(), &recordingAuditor{}, fixedClock)
			in := validInput()
			tc.mod(&in)

			_, err := uc.Execute(context.Background(), in)
			code, ok := httperr.BusinessCode(err)
			require.True(t, ok, "expected business error, got %v", err)
			assert.Equal(t, tc.code, code)
		})
	}
}

func TestCreateReservation_InactiveProduct(t *testing.T) {
	repo := newMemRepo()
	repo.products[10].Active = false

	uc := NewCreateReservation(repo, &recordingAuditor{}, fixedClock)
	_, err := uc.Execute(context.Background(), validInput())
	assert.True(t, httperr.IsBusiness(err, "product_unavailable"))
}
