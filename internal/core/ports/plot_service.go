package ports

import (
	"context"

	"github.com/greenspace/marketplace/internal/core/domain"
)

// CoordinatesInput holds optional geographic coordinates.
type CoordinatesInput struct {
	Lat float64
	Lng float64
}

// LocationInput holds a plot's address.
type LocationInput struct {
	Address     string
	City        string
	State       string
	Pincode     string
	Coordinates *CoordinatesInput
}

// SizeInput holds a plot's area.
type SizeInput struct {
	Value float64
	Unit  string
}

// PlotDocumentInput is a typed reference to an uploaded proof document.
type PlotDocumentInput struct {
	Name string
	URL  string
	Type string
}

// CreatePlotInput carries all data needed to list a new plot.
type CreatePlotInput struct {
	Title             string
	Description       string
	Location          LocationInput
	Size              SizeInput
	SoilType          string
	WaterAvailability string
	Amenities         []string
	Images            []string
}

// UpdatePlotInput carries the owner-editable plot fields.
type UpdatePlotInput struct {
	Title             string
	Description       string
	Location          LocationInput
	Size              SizeInput
	SoilType          string
	WaterAvailability string
	Amenities         []string
	Images            []string
}

// PlotService defines use-case operations for plot listings.
type PlotService interface {
	// Search returns approved, available plots matching the public filters.
	Search(ctx context.Context, filter PlotSearchFilter) ([]*domain.Plot, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Plot, error)
	Get(ctx context.Context, id string) (*domain.Plot, error)
	Create(ctx context.Context, ownerID string, input CreatePlotInput) (*domain.Plot, error)
	Update(ctx context.Context, id, callerID string, input UpdatePlotInput) (*domain.Plot, error)
	Delete(ctx context.Context, id, callerID string) error
	// ReplaceDocuments swaps the plot's whole document set with new references.
	ReplaceDocuments(ctx context.Context, id, callerID string, docs []PlotDocumentInput) (*domain.Plot, error)
}
