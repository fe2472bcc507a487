package ports

import (
	"context"

	"github.com/greenspace/marketplace/internal/core/domain"
)

// PlotSearchFilter carries the public search parameters. Only approved,
// available plots are ever returned by Search; these narrow further.
type PlotSearchFilter struct {
	City              string  // case-insensitive substring match
	SoilType          string  // optional
	WaterAvailability string  // optional
	MinSize           float64 // size.value >= MinSize when > 0
	MaxSize           float64 // size.value <= MaxSize when > 0
}

// PlotRepository defines persistence operations for plot listings.
type PlotRepository interface {
	Create(ctx context.Context, plot *domain.Plot) (*domain.Plot, error)
	FindByID(ctx context.Context, id string) (*domain.Plot, error)
	Search(ctx context.Context, filter PlotSearchFilter) ([]*domain.Plot, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Plot, error)
	// ListByVerification lists all plots, optionally filtered by review state
	// (empty status = all). Used by the admin surface.
	ListByVerification(ctx context.Context, status domain.VerificationStatus) ([]*domain.Plot, error)
	// Update persists owner-editable detail fields of the plot.
	Update(ctx context.Context, plot *domain.Plot) error
	// Delete removes the plot when it belongs to ownerID.
	Delete(ctx context.Context, id, ownerID string) error
	// ReplaceDocuments swaps the plot's whole document set.
	ReplaceDocuments(ctx context.Context, id, ownerID string, docs []domain.PlotDocument) (*domain.Plot, error)
	// SetVerification updates the review state. Rejection also clears
	// is_available so rejected listings drop out of public search.
	SetVerification(ctx context.Context, id string, status domain.VerificationStatus, reason string) (*domain.Plot, error)

	// ClaimAvailability atomically flips is_available true -> false.
	// Returns domain.ErrPlotUnavailable when the plot was already claimed,
	// so of two concurrent approvals exactly one wins.
	ClaimAvailability(ctx context.Context, id string) error
	// ReleaseAvailability flips is_available back to true.
	ReleaseAvailability(ctx context.Context, id string) error

	CountAll(ctx context.Context) (int64, error)
	CountBookable(ctx context.Context) (int64, error)
	CountByVerification(ctx context.Context, status domain.VerificationStatus) (int64, error)
}
