package domain

import (
	"errors"
	"time"
)

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingApproved  BookingStatus = "approved"
	BookingRejected  BookingStatus = "rejected"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// validTransitions defines the allowed state machine transitions.
// pending is the sole initial state; rejected, completed and cancelled are
// terminal. approved can only ever move to completed.
var validTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:  {BookingApproved, BookingRejected, BookingCancelled},
	BookingApproved: {BookingCompleted},
}

var ErrBookingNotFound = errors.New("booking not found")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrCancelApproved = errors.New("cannot cancel approved booking")
var ErrInvalidDateRange = errors.New("end date must be after start date")

// CanTransitionTo reports whether a transition from the current status to
// next is valid.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible from s.
func (s BookingStatus) Terminal() bool {
	return len(validTransitions[s]) == 0
}

// Booking links a gardener to a plot for a date range.
//
// LandownerID is a snapshot of the plot's owner at creation time, not a live
// relation; ownership changes after creation do not rewrite past bookings.
type Booking struct {
	ID              string        `json:"id" bson:"-"`
	PlotID          string        `json:"plot_id" bson:"plot_id"`
	GardenerID      string        `json:"gardener_id" bson:"gardener_id"`
	LandownerID     string        `json:"landowner_id" bson:"landowner_id"`
	StartDate       time.Time     `json:"start_date" bson:"start_date"`
	EndDate         time.Time     `json:"end_date" bson:"end_date"`
	Message         string        `json:"message,omitempty" bson:"message,omitempty"`
	Status          BookingStatus `json:"status" bson:"status"`
	RejectionReason string        `json:"rejection_reason,omitempty" bson:"rejection_reason,omitempty"`
	IdempotencyKey  string        `json:"-" bson:"idempotency_key,omitempty"`
	CreatedAt       time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" bson:"updated_at"`
}

// CanBeReadBy reports whether the caller may see this booking: its gardener,
// its landowner, or an admin.
func (b *Booking) CanBeReadBy(userID string, role Role) bool {
	if role == RoleAdmin {
		return true
	}
	return b.GardenerID == userID || b.LandownerID == userID
}
