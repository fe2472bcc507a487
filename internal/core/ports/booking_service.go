package ports

import (
	"context"
	"time"

	"github.com/greenspace/marketplace/internal/core/domain"
)

// CreateBookingInput carries all data needed to request a booking.
type CreateBookingInput struct {
	PlotID     string
	GardenerID string
	StartDate  time.Time
	EndDate    time.Time
	Message    string
	// IdempotencyKey, when set, makes retried submissions return the
	// originally created booking instead of inserting a duplicate.
	IdempotencyKey string
}

// BookingResult is returned by CreateBooking.
type BookingResult struct {
	Booking *domain.Booking
	// AlreadyExisted is true when the Idempotency-Key matched an existing booking.
	AlreadyExisted bool
}

// BookingService is the booking engine: it owns the status state machine and
// the availability side effects on plots. Callers are authenticated before
// any of these run; the service only authorizes.
type BookingService interface {
	Create(ctx context.Context, input CreateBookingInput) (*BookingResult, error)
	Approve(ctx context.Context, bookingID, callerID string) (*domain.Booking, error)
	Reject(ctx context.Context, bookingID, callerID, reason string) (*domain.Booking, error)
	Complete(ctx context.Context, bookingID, callerID string) (*domain.Booking, error)
	Cancel(ctx context.Context, bookingID, callerID string, callerRole domain.Role) (*domain.Booking, error)
	Get(ctx context.Context, bookingID, callerID string, callerRole domain.Role) (*domain.Booking, error)
	ListByGardener(ctx context.Context, gardenerID string) ([]*domain.Booking, error)
	ListByLandowner(ctx context.Context, landownerID string) ([]*domain.Booking, error)
}
