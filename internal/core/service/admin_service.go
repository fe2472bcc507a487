package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/greenspace/marketplace/internal/core/domain"
	"github.com/greenspace/marketplace/internal/core/ports"
)

// StatsCache abstracts the short-lived dashboard cache (Redis). A nil result
// with a nil error is a miss.
type StatsCache interface {
	Get(ctx context.Context) (*ports.Stats, error)
	Set(ctx context.Context, stats *ports.Stats) error
}

// AdminService implements the verification workflow, blanket reads, and the
// dashboard stats.
type AdminService struct {
	users    ports.UserRepository
	plots    ports.PlotRepository
	bookings ports.BookingRepository
	cache    StatsCache
	logger   zerolog.Logger
}

func NewAdminService(
	users ports.UserRepository,
	plots ports.PlotRepository,
	bookings ports.BookingRepository,
	cache StatsCache,
	logger zerolog.Logger,
) *AdminService {
	return &AdminService{users: users, plots: plots, bookings: bookings, cache: cache, logger: logger}
}

func (s *AdminService) ListUsers(ctx context.Context, filter ports.UserListFilter) ([]*domain.User, error) {
	return s.users.List(ctx, filter)
}

func (s *AdminService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// VerifyUser records an admin verification decision on an account.
func (s *AdminService) VerifyUser(ctx context.Context, id string, status domain.VerificationStatus, reason string) (*domain.User, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidTransition
	}

	user, err := s.users.SetVerification(ctx, id, status, reason)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", id).
		Str("decision", string(status)).
		Msg("user verification updated")

	return user, nil
}

func (s *AdminService) ListPlots(ctx context.Context, status domain.VerificationStatus) ([]*domain.Plot, error) {
	return s.plots.ListByVerification(ctx, status)
}

func (s *AdminService) GetPlot(ctx context.Context, id string) (*domain.Plot, error) {
	return s.plots.FindByID(ctx, id)
}

// VerifyPlot records an admin verification decision on a listing. Rejection
// also takes the plot off the market.
func (s *AdminService) VerifyPlot(ctx context.Context, id string, status domain.VerificationStatus, reason string) (*domain.Plot, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidTransition
	}

	plot, err := s.plots.SetVerification(ctx, id, status, reason)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("plot_id", id).
		Str("decision", string(status)).
		Msg("plot verification updated")

	return plot, nil
}

// ListBookings is the admin's blanket read over all bookings.
func (s *AdminService) ListBookings(ctx context.Context) ([]*domain.Booking, error) {
	return s.bookings.ListAll(ctx)
}

// Stats assembles the dashboard counters, served from cache when fresh.
// Cache failures are non-fatal; the counts are recomputed from the store.
func (s *AdminService) Stats(ctx context.Context) (*ports.Stats, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("stats cache read failed, recomputing")
		} else if cached != nil {
			return cached, nil
		}
	}

	stats := &ports.Stats{}

	counts := []struct {
		dst  *int64
		load func(context.Context) (int64, error)
	}{
		{&stats.Users.Total, s.users.CountAll},
		{&stats.Users.Gardeners, func(ctx context.Context) (int64, error) { return s.users.CountByRole(ctx, domain.RoleGardener) }},
		{&stats.Users.Landowners, func(ctx context.Context) (int64, error) { return s.users.CountByRole(ctx, domain.RoleLandowner) }},
		{&stats.Users.PendingVerifications, func(ctx context.Context) (int64, error) {
			return s.users.CountByVerification(ctx, domain.VerificationPending)
		}},
		{&stats.Plots.Total, s.plots.CountAll},
		{&stats.Plots.Available, s.plots.CountBookable},
		{&stats.Plots.Pending, func(ctx context.Context) (int64, error) {
			return s.plots.CountByVerification(ctx, domain.VerificationPending)
		}},
		{&stats.Bookings.Total, s.bookings.CountAll},
		{&stats.Bookings.Active, func(ctx context.Context) (int64, error) {
			return s.bookings.CountByStatus(ctx, domain.BookingApproved)
		}},
		{&stats.Bookings.Pending, func(ctx context.Context) (int64, error) {
			return s.bookings.CountByStatus(ctx, domain.BookingPending)
		}},
	}
	for _, c := range counts {
		n, err := c.load(ctx)
		if err != nil {
			return nil, err
		}
		*c.dst = n
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, stats); err != nil {
			s.logger.Warn().Err(err).Msg("stats cache write failed")
		}
	}

	return stats, nil
}
