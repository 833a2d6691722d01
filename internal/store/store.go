package store

import (
	"context"
	"errors"

	"salonmate/internal/model"
)

// ErrNotFound marks an update against a reservation id the store
// does not hold.
var ErrNotFound = errors.New("reservation not found")

// Store is the persistence boundary for reservations and the
// service option catalog.
type Store interface {
	ListReservations(ctx context.Context) ([]model.Reservation, error)
	CreateReservation(ctx context.Context, input model.ReservationInput) (model.Reservation, error)
	UpdateReservation(ctx context.Context, id string, input model.ReservationInput) (model.Reservation, error)
	DeleteReservation(ctx context.Context, id string) error
	ListServiceOptions(ctx context.Context) ([]string, error)
	Close() error
}
