package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/greenspace/marketplace/internal/api/metrics"
	"github.com/greenspace/marketplace/internal/core/domain"
	"github.com/greenspace/marketplace/internal/core/ports"
)

// BookingHandler handles HTTP requests for the booking lifecycle.
type BookingHandler struct {
	service ports.BookingService
}

func NewBookingHandler(service ports.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// Create handles POST /api/bookings. A repeated submission with the same
// Idempotency-Key returns the original booking with 200 instead of creating
// a duplicate.
//
// @Summary      Request a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createBookingRequest  true   "Booking request"
// @Success      201              {object}  domain.Booking
// @Success      200              {object}  domain.Booking
// @Failure      404              {object}  map[string]string
// @Failure      409              {object}  map[string]string
// @Failure      422              {object}  map[string]string
// @Router       /api/bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.service.Create(c.Request().Context(), ports.CreateBookingInput{
		PlotID:         req.PlotID,
		GardenerID:     userID,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Message:        req.Message,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		countConflict(err)
		return err
	}

	if result.AlreadyExisted {
		return c.JSON(http.StatusOK, result.Booking)
	}

	metrics.BookingsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, result.Booking)
}

// ListMine handles GET /api/bookings/mine — the gardener's own requests.
//
// @Summary      List own booking requests
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Booking
// @Failure      401  {object}  map[string]string
// @Router       /api/bookings/mine [get]
func (h *BookingHandler) ListMine(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	bookings, err := h.service.ListByGardener(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookings)
}

// ListReceived handles GET /api/bookings/received — requests against the
// landowner's plots.
//
// @Summary      List bookings received on own plots
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Booking
// @Failure      401  {object}  map[string]string
// @Router       /api/bookings/received [get]
func (h *BookingHandler) ListReceived(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	bookings, err := h.service.ListByLandowner(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookings)
}

// Get handles GET /api/bookings/:id. Visible to the booking's gardener, its
// landowner, and admins.
//
// @Summary      Get a booking by id
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  domain.Booking
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/bookings/{id} [get]
func (h *BookingHandler) Get(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	booking, err := h.service.Get(c.Request().Context(), c.Param("id"), userID, role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, booking)
}

// Approve handles PUT /api/bookings/:id/approve. The plot's landowner accepts
// a pending request; the plot comes off the market.
//
// @Summary      Approve a booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  domain.Booking
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /api/bookings/{id}/approve [put]
func (h *BookingHandler) Approve(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	booking, err := h.service.Approve(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		countConflict(err)
		return err
	}

	metrics.BookingTransitionsTotal.WithLabelValues(string(domain.BookingApproved)).Inc()
	return c.JSON(http.StatusOK, booking)
}

// Reject handles PUT /api/bookings/:id/reject. Requires a reason.
//
// @Summary      Reject a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Booking id"
// @Param        body  body      rejectBookingRequest  true  "Rejection reason"
// @Success      200   {object}  domain.Booking
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/bookings/{id}/reject [put]
func (h *BookingHandler) Reject(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req rejectBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	booking, err := h.service.Reject(c.Request().Context(), c.Param("id"), userID, req.Reason)
	if err != nil {
		countConflict(err)
		return err
	}

	metrics.BookingTransitionsTotal.WithLabelValues(string(domain.BookingRejected)).Inc()
	return c.JSON(http.StatusOK, booking)
}

// Complete handles PUT /api/bookings/:id/complete. Closing an approved
// booking puts the plot back on the market.
//
// @Summary      Complete a booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  domain.Booking
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /api/bookings/{id}/complete [put]
func (h *BookingHandler) Complete(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	booking, err := h.service.Complete(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		countConflict(err)
		return err
	}

	metrics.BookingTransitionsTotal.WithLabelValues(string(domain.BookingCompleted)).Inc()
	return c.JSON(http.StatusOK, booking)
}

// Cancel handles PUT /api/bookings/:id/cancel. The gardener may withdraw a
// pending request; admins may cancel any pending booking.
//
// @Summary      Cancel a booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  domain.Booking
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /api/bookings/{id}/cancel [put]
func (h *BookingHandler) Cancel(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	booking, err := h.service.Cancel(c.Request().Context(), c.Param("id"), userID, role)
	if err != nil {
		countConflict(err)
		return err
	}

	metrics.BookingTransitionsTotal.WithLabelValues(string(domain.BookingCancelled)).Inc()
	return c.JSON(http.StatusOK, booking)
}

// countConflict records state-based rejections so lost races and invalid
// transitions show up in the dashboards.
func countConflict(err error) {
	switch {
	case errors.Is(err, domain.ErrPlotUnavailable):
		metrics.BookingConflictsTotal.WithLabelValues("plot_unavailable").Inc()
	case errors.Is(err, domain.ErrPlotNotVerified):
		metrics.BookingConflictsTotal.WithLabelValues("plot_not_verified").Inc()
	case errors.Is(err, domain.ErrInvalidTransition):
		metrics.BookingConflictsTotal.WithLabelValues("invalid_transition").Inc()
	case errors.Is(err, domain.ErrCancelApproved):
		metrics.BookingConflictsTotal.WithLabelValues("cancel_approved").Inc()
	}
}
