package ports

import (
	"context"

	"github.com/greenspace/marketplace/internal/core/domain"
)

// BookingRepository defines persistence operations for bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	FindByID(ctx context.Context, id string) (*domain.Booking, error)
	// FindByIdempotencyKey retrieves a booking created with the given key.
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.Booking, error)
	ListByGardener(ctx context.Context, gardenerID string) ([]*domain.Booking, error)
	ListByLandowner(ctx context.Context, landownerID string) ([]*domain.Booking, error)
	ListAll(ctx context.Context) ([]*domain.Booking, error)
	// UpdateStatus conditionally moves the booking from one status to
	// another and refreshes updated_at. The write matches on the current
	// status, so a concurrent transition makes it fail with
	// domain.ErrInvalidTransition instead of silently overwriting.
	// reason is stored only when non-empty.
	UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus, reason string) error

	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.BookingStatus) (int64, error)
}
