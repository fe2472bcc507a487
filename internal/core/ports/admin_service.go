package ports

import (
	"context"

	"github.com/greenspace/marketplace/internal/core/domain"
)

// UserStats aggregates user counters for the admin dashboard.
type UserStats struct {
	Total                int64 `json:"total"`
	Gardeners            int64 `json:"gardeners"`
	Landowners           int64 `json:"landowners"`
	PendingVerifications int64 `json:"pending_verifications"`
}

// PlotStats aggregates plot counters.
type PlotStats struct {
	Total     int64 `json:"total"`
	Available int64 `json:"available"`
	Pending   int64 `json:"pending"`
}

// BookingStats aggregates booking counters.
type BookingStats struct {
	Total   int64 `json:"total"`
	Active  int64 `json:"active"`
	Pending int64 `json:"pending"`
}

// Stats is the admin dashboard summary.
type Stats struct {
	Users    UserStats    `json:"users"`
	Plots    PlotStats    `json:"plots"`
	Bookings BookingStats `json:"bookings"`
}

// AdminService covers the verification workflow and blanket reads. Admins
// read everything but never drive booking transitions.
type AdminService interface {
	ListUsers(ctx context.Context, filter UserListFilter) ([]*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	VerifyUser(ctx context.Context, id string, status domain.VerificationStatus, reason string) (*domain.User, error)
	ListPlots(ctx context.Context, status domain.VerificationStatus) ([]*domain.Plot, error)
	GetPlot(ctx context.Context, id string) (*domain.Plot, error)
	VerifyPlot(ctx context.Context, id string, status domain.VerificationStatus, reason string) (*domain.Plot, error)
	ListBookings(ctx context.Context) ([]*domain.Booking, error)
	Stats(ctx context.Context) (*Stats, error)
}
