package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/greenspace/marketplace/internal/core/domain"
	"github.com/greenspace/marketplace/internal/core/ports"
)

// BookingService is the booking engine. It enforces the status state machine
// and owns the plot availability side effects.
type BookingService struct {
	bookings ports.BookingRepository
	plots    ports.PlotRepository
	logger   zerolog.Logger
}

func NewBookingService(bookings ports.BookingRepository, plots ports.PlotRepository, logger zerolog.Logger) *BookingService {
	return &BookingService{bookings: bookings, plots: plots, logger: logger}
}

// Create requests a booking against an available, approved plot. If an
// idempotency key is provided and already seen, the previously created
// booking is returned without a second insert.
func (s *BookingService) Create(ctx context.Context, input ports.CreateBookingInput) (*ports.BookingResult, error) {
	if input.IdempotencyKey != "" {
		existing, err := s.bookings.FindByIdempotencyKey(ctx, input.IdempotencyKey)
		if err == nil && existing != nil {
			s.logger.Info().
				Str("idempotency_key", input.IdempotencyKey).
				Str("booking_id", existing.ID).
				Msg("idempotent replay")
			return &ports.BookingResult{Booking: existing, AlreadyExisted: true}, nil
		}
	}

	if !input.EndDate.After(input.StartDate) {
		return nil, domain.ErrInvalidDateRange
	}

	plot, err := s.plots.FindByID(ctx, input.PlotID)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	if !plot.IsAvailable {
		return nil, domain.ErrPlotUnavailable
	}
	if plot.VerificationStatus != domain.VerificationApproved {
		return nil, domain.ErrPlotNotVerified
	}

	now := time.Now().UTC()
	booking := &domain.Booking{
		PlotID:         plot.ID,
		GardenerID:     input.GardenerID,
		LandownerID:    plot.OwnerID, // snapshot of the owner at creation time
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		Message:        input.Message,
		Status:         domain.BookingPending,
		IdempotencyKey: input.IdempotencyKey,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.bookings.Create(ctx, booking)
	if err != nil {
		s.logger.Error().Err(err).Str("plot_id", plot.ID).Msg("failed to create booking")
		return nil, err
	}

	s.logger.Info().
		Str("booking_id", created.ID).
		Str("plot_id", created.PlotID).
		Str("gardener_id", created.GardenerID).
		Msg("booking requested")

	return &ports.BookingResult{Booking: created}, nil
}

// Approve moves a pending booking to approved and takes the plot off the
// market. The availability claim happens first and is conditional, so when
// two bookings on the same plot are approved concurrently exactly one wins;
// if the subsequent status flip fails the claim is released again.
func (s *BookingService) Approve(ctx context.Context, bookingID, callerID string) (*domain.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.LandownerID != callerID {
		return nil, domain.ErrForbidden
	}
	if !booking.Status.CanTransitionTo(domain.BookingApproved) {
		return nil, fmt.Errorf("approve booking: %w (from %s)", domain.ErrInvalidTransition, booking.Status)
	}

	if err := s.plots.ClaimAvailability(ctx, booking.PlotID); err != nil {
		return nil, fmt.Errorf("approve booking: %w", err)
	}

	if err := s.bookings.UpdateStatus(ctx, booking.ID, domain.BookingPending, domain.BookingApproved, ""); err != nil {
		// Compensate: hand the plot back so the losing write does not
		// strand it off the market.
		if relErr := s.plots.ReleaseAvailability(ctx, booking.PlotID); relErr != nil {
			s.logger.Error().Err(relErr).
				Str("plot_id", booking.PlotID).
				Msg("failed to release availability after aborted approval")
		}
		return nil, err
	}

	booking.Status = domain.BookingApproved
	s.logger.Info().
		Str("booking_id", booking.ID).
		Str("plot_id", booking.PlotID).
		Msg("booking approved")

	return booking, nil
}

// Reject moves a pending booking to rejected and records the reason. The
// plot stays on the market.
func (s *BookingService) Reject(ctx context.Context, bookingID, callerID, reason string) (*domain.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.LandownerID != callerID {
		return nil, domain.ErrForbidden
	}
	if !booking.Status.CanTransitionTo(domain.BookingRejected) {
		return nil, fmt.Errorf("reject booking: %w (from %s)", domain.ErrInvalidTransition, booking.Status)
	}

	if err := s.bookings.UpdateStatus(ctx, booking.ID, domain.BookingPending, domain.BookingRejected, reason); err != nil {
		return nil, err
	}

	booking.Status = domain.BookingRejected
	booking.RejectionReason = reason
	s.logger.Info().Str("booking_id", booking.ID).Msg("booking rejected")

	return booking, nil
}

// Complete finishes an approved booking and puts the plot back on the
// market. Only approved bookings can be completed.
func (s *BookingService) Complete(ctx context.Context, bookingID, callerID string) (*domain.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.LandownerID != callerID {
		return nil, domain.ErrForbidden
	}
	if !booking.Status.CanTransitionTo(domain.BookingCompleted) {
		return nil, fmt.Errorf("complete booking: %w (from %s)", domain.ErrInvalidTransition, booking.Status)
	}

	if err := s.bookings.UpdateStatus(ctx, booking.ID, domain.BookingApproved, domain.BookingCompleted, ""); err != nil {
		return nil, err
	}

	// Release after the status flip: a failure here leaves the plot
	// unavailable, which cannot double-book. Non-fatal, but loud.
	if err := s.plots.ReleaseAvailability(ctx, booking.PlotID); err != nil {
		s.logger.Error().Err(err).
			Str("booking_id", booking.ID).
			Str("plot_id", booking.PlotID).
			Msg("failed to release availability after completion")
	}

	booking.Status = domain.BookingCompleted
	s.logger.Info().
		Str("booking_id", booking.ID).
		Str("plot_id", booking.PlotID).
		Msg("booking completed")

	return booking, nil
}

// Cancel withdraws a booking. Only the booking's gardener or an admin may
// cancel, and only while it is still pending; approved bookings cannot be
// cancelled, they run to completion.
func (s *BookingService) Cancel(ctx context.Context, bookingID, callerID string, callerRole domain.Role) (*domain.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if callerRole != domain.RoleAdmin && booking.GardenerID != callerID {
		return nil, domain.ErrForbidden
	}
	if booking.Status == domain.BookingApproved {
		return nil, domain.ErrCancelApproved
	}
	if !booking.Status.CanTransitionTo(domain.BookingCancelled) {
		return nil, fmt.Errorf("cancel booking: %w (from %s)", domain.ErrInvalidTransition, booking.Status)
	}

	if err := s.bookings.UpdateStatus(ctx, booking.ID, domain.BookingPending, domain.BookingCancelled, ""); err != nil {
		return nil, err
	}

	booking.Status = domain.BookingCancelled
	s.logger.Info().Str("booking_id", booking.ID).Msg("booking cancelled")

	return booking, nil
}

// Get returns a booking readable only by its gardener, its landowner, or an
// admin.
func (s *BookingService) Get(ctx context.Context, bookingID, callerID string, callerRole domain.Role) (*domain.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.CanBeReadBy(callerID, callerRole) {
		return nil, domain.ErrForbidden
	}
	return booking, nil
}

// ListByGardener returns the gardener's bookings, newest first.
func (s *BookingService) ListByGardener(ctx context.Context, gardenerID string) ([]*domain.Booking, error) {
	return s.bookings.ListByGardener(ctx, gardenerID)
}

// ListByLandowner returns bookings against the landowner's plots, newest first.
func (s *BookingService) ListByLandowner(ctx context.Context, landownerID string) ([]*domain.Booking, error) {
	return s.bookings.ListByLandowner(ctx, landownerID)
}
