package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"salonmate/internal/ledger"
	"salonmate/internal/model"
	"salonmate/internal/session"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) ListReservations(ctx context.Context) ([]model.Reservation, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Reservation), args.Error(1)
}

func (m *mockStore) CreateReservation(ctx context.Context, input model.ReservationInput) (model.Reservation, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(model.Reservation), args.Error(1)
}

func (m *mockStore) UpdateReservation(ctx context.Context, id string, input model.ReservationInput) (model.Reservation, error) {
	args := m.Called(ctx, id, input)
	return args.Get(0).(model.Reservation), args.Error(1)
}

func (m *mockStore) DeleteReservation(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockStore) ListServiceOptions(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockStore) Close() error { return m.Called().Error(0) }

func testController(st *mockStore) *Controller {
	logger := zerolog.Nop()
	gate := session.NewGate("pw", session.NewMemoryStore(), &logger)
	loader := ledger.NewLoader("", &logger)
	return New(st, loader, gate, []string{"10:10", "10:20", "10:30"}, &logger)
}

func TestCreateRequiresCustomer(t *testing.T) {
	st := &mockStore{}
	ctrl := testController(st)

	_, err := ctrl.Create(context.Background(), model.ReservationInput{
		Date: "2025-06-10", Time: "10:10",
	})
	assert.ErrorIs(t, err, ErrEmptyCustomer)

	_, err = ctrl.Update(context.Background(), "id", model.ReservationInput{
		CustomerName: "   ",
	})
	assert.ErrorIs(t, err, ErrEmptyCustomer)

	// Neither call reached the store.
	st.AssertNotCalled(t, "CreateReservation", mock.Anything, mock.Anything)
	st.AssertNotCalled(t, "UpdateReservation", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreatePatchesCache(t *testing.T) {
	st := &mockStore{}
	ctrl := testController(st)

	input := model.ReservationInput{CustomerName: "김민지", Date: "2025-06-10", Time: "10:10"}
	created := model.Reservation{ID: "r1", CustomerName: "김민지", Date: "2025-06-10", Time: "10:10"}
	st.On("CreateReservation", mock.Anything, input).Return(created, nil)

	got, err := ctrl.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	cached := ctrl.Reservations()
	require.Len(t, cached, 1)
	assert.Equal(t, "r1", cached[0].ID)
}

func TestCreateFailureLeavesCache(t *testing.T) {
	st := &mockStore{}
	ctrl := testController(st)

	input := model.ReservationInput{CustomerName: "김민지", Date: "2025-06-10", Time: "10:10"}
	st.On("CreateReservation", mock.Anything, input).
		Return(model.Reservation{}, errors.New("disk full"))

	_, err := ctrl.Create(context.Background(), input)
	assert.Error(t, err)
	assert.Empty(t, ctrl.Reservations())
}

func TestUpdateAndDeletePatchCache(t *testing.T) {
	st := &mockStore{}
	ctrl := testController(st)

	seed := []model.Reservation{
		{ID: "r1", CustomerName: "김민지", Date: "2025-06-10", Time: "10:10"},
		{ID: "r2", CustomerName: "이서연", Date: "2025-06-11", Time: "11:00"},
	}
	st.On("ListReservations", mock.Anything).Return(seed, nil)
	require.NoError(t, ctrl.LoadData(context.Background()))

	input := model.ReservationInput{CustomerName: "김민지", Date: "2025-06-12", Time: "12:00"}
	updated := model.Reservation{ID: "r1", CustomerName: "김민지", Date: "2025-06-12", Time: "12:00"}
	st.On("UpdateReservation", mock.Anything, "r1", input).Return(updated, nil)

	_, err := ctrl.Update(context.Background(), "r1", input)
	require.NoError(t, err)

	cached := ctrl.Reservations()
	require.Len(t, cached, 2)
	assert.Equal(t, "2025-06-12", cached[0].Date)

	st.On("DeleteReservation", mock.Anything, "r2").Return(nil)
	require.NoError(t, ctrl.Delete(context.Background(), "r2"))

	cached = ctrl.Reservations()
	require.Len(t, cached, 1)
	assert.Equal(t, "r1", cached[0].ID)
}

func TestDeleteFailureLeavesCache(t *testing.T) {
	st := &mockStore{}
	ctrl := testController(st)

	seed := []model.Reservation{{ID: "r1", CustomerName: "김민지", Date: "2025-06-10", Time: "10:10"}}
	st.On("ListReservations", mock.Anything).Return(seed, nil)
	require.NoError(t, ctrl.LoadData(context.Background()))

	st.On("DeleteReservation", mock.Anything, "r1").Return(errors.New("locked"))
	assert.Error(t, ctrl.Delete(context.Background(), "r1"))
	assert.Len(t, ctrl.Reservations(), 1)
}

func TestNavigateMonth(t *testing.T) {
	ctrl := testController(&mockStore{})

	ctrl.SetMonth(2025, 0) // January
	year, month := ctrl.NavigateMonth(-1)
	assert.Equal(t, 2024, year)
	assert.Equal(t, 11, month)

	year, month = ctrl.NavigateMonth(1)
	assert.Equal(t, 2025, year)
	assert.Equal(t, 0, month)

	ctrl.GoToToday()
	year, month = ctrl.VisibleMonth()
	now := ctrl.Now()
	assert.Equal(t, now.Year(), year)
	assert.Equal(t, int(now.Month())-1, month)
}

func TestSelectDate(t *testing.T) {
	ctrl := testController(&mockStore{})
	ctrl.SelectDate("2025-06-15")
	assert.Equal(t, "2025-06-15", ctrl.SelectedDate())
}

func TestTimeSlotsFiltersPastOnToday(t *testing.T) {
	ctrl := testController(&mockStore{})
	today := ctrl.Now().Format("2006-01-02")

	// A future date gets the full list.
	assert.Len(t, ctrl.TimeSlots("2099-01-01", ""), 3)

	// On today a kept slot survives even in the past.
	slots := ctrl.TimeSlots(today, "10:10")
	assert.Contains(t, slots, "10:10")
}

func TestLoadLedgerFailureClearsLedger(t *testing.T) {
	logger := zerolog.Nop()
	path := filepath.Join(t.TempDir(), "ledger.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,Phone\n김민지,010-555-1234\n"), 0o644))

	gate := session.NewGate("pw", session.NewMemoryStore(), &logger)
	loader := ledger.NewLoader(path, &logger)
	ctrl := New(&mockStore{}, loader, gate, nil, &logger)

	ctrl.LoadLedger(context.Background())
	assert.Len(t, ctrl.Search("1234").Ledger, 1)

	// The source disappearing wipes the ledger instead of serving
	// stale cross-references.
	require.NoError(t, os.Remove(path))
	ctrl.LoadLedger(context.Background())
	assert.Empty(t, ctrl.Search("1234").Ledger)
}

func TestLoginDelegatesToGate(t *testing.T) {
	ctrl := testController(&mockStore{})
	ctx := context.Background()

	assert.False(t, ctrl.Authenticated(ctx))
	assert.Error(t, ctrl.Login(ctx, "wrong"))
	assert.False(t, ctrl.Authenticated(ctx))
	assert.NoError(t, ctrl.Login(ctx, "pw"))
	assert.True(t, ctrl.Authenticated(ctx))
}
