package handler

import "github.com/greenspace/marketplace/internal/core/ports"

type coordinatesRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type locationRequest struct {
	Address     string              `json:"address" validate:"required"`
	City        string              `json:"city" validate:"required"`
	State       string              `json:"state" validate:"required"`
	Pincode     string              `json:"pincode" validate:"required"`
	Coordinates *coordinatesRequest `json:"coordinates,omitempty"`
}

type sizeRequest struct {
	Value float64 `json:"value" validate:"required,gt=0"`
	Unit  string  `json:"unit" validate:"required,oneof=sqft sqm acres"`
}

type plotDocumentRequest struct {
	Name string `json:"name" validate:"required"`
	URL  string `json:"url" validate:"required,url"`
	Type string `json:"type" validate:"omitempty,oneof=ownership bill other"`
}

type createPlotRequest struct {
	Title             string          `json:"title" validate:"required"`
	Description       string          `json:"description" validate:"required"`
	Location          locationRequest `json:"location" validate:"required"`
	Size              sizeRequest     `json:"size" validate:"required"`
	SoilType          string          `json:"soil_type" validate:"required,oneof=clay sandy loamy silt chalky peaty"`
	WaterAvailability string          `json:"water_availability" validate:"required,oneof=available limited not-available"`
	Amenities         []string        `json:"amenities"`
	Images            []string        `json:"images"`
}

type updatePlotRequest createPlotRequest

type replacePlotDocumentsRequest struct {
	Documents []plotDocumentRequest `json:"documents" validate:"required,min=1,dive"`
}

func (r createPlotRequest) toInput() ports.CreatePlotInput {
	loc := ports.LocationInput{
		Address: r.Location.Address,
		City:    r.Location.City,
		State:   r.Location.State,
		Pincode: r.Location.Pincode,
	}
	if r.Location.Coordinates != nil {
		loc.Coordinates = &ports.CoordinatesInput{
			Lat: r.Location.Coordinates.Lat,
			Lng: r.Location.Coordinates.Lng,
		}
	}
	return ports.CreatePlotInput{
		Title:             r.Title,
		Description:       r.Description,
		Location:          loc,
		Size:              ports.SizeInput{Value: r.Size.Value, Unit: r.Size.Unit},
		SoilType:          r.SoilType,
		WaterAvailability: r.WaterAvailability,
		Amenities:         r.Amenities,
		Images:            r.Images,
	}
}

func (r updatePlotRequest) toInput() ports.UpdatePlotInput {
	in := createPlotRequest(r).toInput()
	return ports.UpdatePlotInput{
		Title:             in.Title,
		Description:       in.Description,
		Location:          in.Location,
		Size:              in.Size,
		SoilType:          in.SoilType,
		WaterAvailability: in.WaterAvailability,
		Amenities:         in.Amenities,
		Images:            in.Images,
	}
}
