package domain

import (
	"errors"
	"time"
)

// SizeUnit is the unit a plot's size is expressed in.
type SizeUnit string

const (
	UnitSqft  SizeUnit = "sqft"
	UnitSqm   SizeUnit = "sqm"
	UnitAcres SizeUnit = "acres"
)

// SoilType classifies a plot's soil.
type SoilType string

const (
	SoilClay   SoilType = "clay"
	SoilSandy  SoilType = "sandy"
	SoilLoamy  SoilType = "loamy"
	SoilSilt   SoilType = "silt"
	SoilChalky SoilType = "chalky"
	SoilPeaty  SoilType = "peaty"
)

// WaterAvailability describes how much water a plot has on site.
type WaterAvailability string

const (
	WaterAvailable    WaterAvailability = "available"
	WaterLimited      WaterAvailability = "limited"
	WaterNotAvailable WaterAvailability = "not-available"
)

// PlotDocumentType tags a plot document by what it proves.
type PlotDocumentType string

const (
	DocOwnership PlotDocumentType = "ownership"
	DocBill      PlotDocumentType = "bill"
	DocOther     PlotDocumentType = "other"
)

var ErrPlotNotFound = errors.New("plot not found")
var ErrPlotUnavailable = errors.New("plot is not available")
var ErrPlotNotVerified = errors.New("plot is not verified")

// Coordinates represents an optional geographic point on a plot location.
type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// Location is a plot's physical address.
type Location struct {
	Address     string       `json:"address" bson:"address"`
	City        string       `json:"city" bson:"city"`
	State       string       `json:"state" bson:"state"`
	Pincode     string       `json:"pincode" bson:"pincode"`
	Coordinates *Coordinates `json:"coordinates,omitempty" bson:"coordinates,omitempty"`
}

// Size is a plot's area with its unit.
type Size struct {
	Value float64  `json:"value" bson:"value"`
	Unit  SizeUnit `json:"unit" bson:"unit"`
}

// PlotDocument is a typed reference to an uploaded proof document.
type PlotDocument struct {
	Name string           `json:"name" bson:"name"`
	URL  string           `json:"url" bson:"url"`
	Type PlotDocumentType `json:"type" bson:"type"`
}

// Plot is a landowner's listed parcel.
//
// IsAvailable is the availability signal the booking engine toggles on
// approve/complete; nothing else writes it once a booking is approved.
type Plot struct {
	ID                 string             `json:"id" bson:"-"`
	OwnerID            string             `json:"owner_id" bson:"owner_id"`
	Title              string             `json:"title" bson:"title"`
	Description        string             `json:"description" bson:"description"`
	Location           Location           `json:"location" bson:"location"`
	Size               Size               `json:"size" bson:"size"`
	SoilType           SoilType           `json:"soil_type" bson:"soil_type"`
	WaterAvailability  WaterAvailability  `json:"water_availability" bson:"water_availability"`
	Amenities          []string           `json:"amenities" bson:"amenities"`
	Images             []string           `json:"images" bson:"images"`
	Documents          []PlotDocument     `json:"documents" bson:"documents"`
	IsAvailable        bool               `json:"is_available" bson:"is_available"`
	VerificationStatus VerificationStatus `json:"verification_status" bson:"verification_status"`
	RejectionReason    string             `json:"rejection_reason,omitempty" bson:"rejection_reason,omitempty"`
	CreatedAt          time.Time          `json:"created_at" bson:"created_at"`
}

// Bookable reports whether the plot can accept a new booking request.
func (p *Plot) Bookable() bool {
	return p.IsAvailable && p.VerificationStatus == VerificationApproved
}
