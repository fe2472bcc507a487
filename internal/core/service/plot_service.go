package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/greenspace/marketplace/internal/core/domain"
	"github.com/greenspace/marketplace/internal/core/ports"
)

// PlotService implements listing management for landowners and the public
// search surface.
type PlotService struct {
	plots  ports.PlotRepository
	logger zerolog.Logger
}

func NewPlotService(plots ports.PlotRepository, logger zerolog.Logger) *PlotService {
	return &PlotService{plots: plots, logger: logger}
}

// Search returns approved, available plots matching the public filters.
func (s *PlotService) Search(ctx context.Context, filter ports.PlotSearchFilter) ([]*domain.Plot, error) {
	return s.plots.Search(ctx, filter)
}

// ListByOwner returns all of a landowner's plots regardless of state.
func (s *PlotService) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Plot, error) {
	return s.plots.ListByOwner(ctx, ownerID)
}

// Get returns a single plot. Plot detail pages are public.
func (s *PlotService) Get(ctx context.Context, id string) (*domain.Plot, error) {
	return s.plots.FindByID(ctx, id)
}

// Create lists a new plot. New listings start available but unverified, so
// they stay out of public search until an admin approves them.
func (s *PlotService) Create(ctx context.Context, ownerID string, input ports.CreatePlotInput) (*domain.Plot, error) {
	plot := &domain.Plot{
		OwnerID:            ownerID,
		Title:              input.Title,
		Description:        input.Description,
		Location:           toLocation(input.Location),
		Size:               domain.Size{Value: input.Size.Value, Unit: domain.SizeUnit(input.Size.Unit)},
		SoilType:           domain.SoilType(input.SoilType),
		WaterAvailability:  domain.WaterAvailability(input.WaterAvailability),
		Amenities:          input.Amenities,
		Images:             input.Images,
		Documents:          []domain.PlotDocument{},
		IsAvailable:        true,
		VerificationStatus: domain.VerificationPending,
		CreatedAt:          time.Now().UTC(),
	}

	created, err := s.plots.Create(ctx, plot)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to create plot")
		return nil, err
	}

	s.logger.Info().
		Str("plot_id", created.ID).
		Str("owner_id", ownerID).
		Str("city", created.Location.City).
		Msg("plot listed")

	return created, nil
}

// Update edits a plot's details. Only the owner may edit; availability and
// verification state are not touched here.
func (s *PlotService) Update(ctx context.Context, id, callerID string, input ports.UpdatePlotInput) (*domain.Plot, error) {
	plot, err := s.plots.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plot.OwnerID != callerID {
		return nil, domain.ErrForbidden
	}

	plot.Title = input.Title
	plot.Description = input.Description
	plot.Location = toLocation(input.Location)
	plot.Size = domain.Size{Value: input.Size.Value, Unit: domain.SizeUnit(input.Size.Unit)}
	plot.SoilType = domain.SoilType(input.SoilType)
	plot.WaterAvailability = domain.WaterAvailability(input.WaterAvailability)
	plot.Amenities = input.Amenities
	plot.Images = input.Images

	if err := s.plots.Update(ctx, plot); err != nil {
		return nil, err
	}

	s.logger.Info().Str("plot_id", plot.ID).Msg("plot updated")
	return plot, nil
}

// Delete removes a plot owned by the caller.
func (s *PlotService) Delete(ctx context.Context, id, callerID string) error {
	if err := s.plots.Delete(ctx, id, callerID); err != nil {
		return err
	}
	s.logger.Info().Str("plot_id", id).Msg("plot deleted")
	return nil
}

// ReplaceDocuments swaps the plot's proof document set. Re-uploads replace
// rather than append so stale documents never linger after a rejection.
func (s *PlotService) ReplaceDocuments(ctx context.Context, id, callerID string, docs []ports.PlotDocumentInput) (*domain.Plot, error) {
	converted := make([]domain.PlotDocument, 0, len(docs))
	for _, d := range docs {
		docType := domain.PlotDocumentType(d.Type)
		if docType == "" {
			docType = domain.DocOther
		}
		converted = append(converted, domain.PlotDocument{Name: d.Name, URL: d.URL, Type: docType})
	}
	return s.plots.ReplaceDocuments(ctx, id, callerID, converted)
}

func toLocation(in ports.LocationInput) domain.Location {
	loc := domain.Location{
		Address: in.Address,
		City:    in.City,
		State:   in.State,
		Pincode: in.Pincode,
	}
	if in.Coordinates != nil {
		loc.Coordinates = &domain.Coordinates{Lat: in.Coordinates.Lat, Lng: in.Coordinates.Lng}
	}
	return loc
}
