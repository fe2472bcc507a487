package handler

import "time"

type createBookingRequest struct {
	PlotID    string    `json:"plot_id" validate:"required"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
	Message   string    `json:"message"`
}

type rejectBookingRequest struct {
	Reason string `json:"reason" validate:"required"`
}
