package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/greenspace/marketplace/internal/api/metrics"
	"github.com/greenspace/marketplace/internal/core/domain"
	"github.com/greenspace/marketplace/internal/core/ports"
)

// AdminHandler handles the verification workflow and the admin's blanket
// reads. Every route behind it is already gated to the admin role.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

type verifyRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
	Reason string `json:"reason" validate:"required_if=Status rejected"`
}

// ListUsers handles GET /api/admin/users.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        role                 query     string  false  "Filter by role"
// @Param        verification_status  query     string  false  "Filter by verification status"
// @Success      200  {array}   domain.User
// @Failure      403  {object}  map[string]string
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context(), ports.UserListFilter{
		Role:               domain.Role(c.QueryParam("role")),
		VerificationStatus: domain.VerificationStatus(c.QueryParam("verification_status")),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser handles GET /api/admin/users/:id.
//
// @Summary      Get a user by id
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/users/{id} [get]
func (h *AdminHandler) GetUser(c echo.Context) error {
	user, err := h.service.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// VerifyUser handles PUT /api/admin/users/:id/verify.
//
// @Summary      Approve or reject a user's verification
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "User id"
// @Param        body  body      verifyRequest  true  "Decision"
// @Success      200   {object}  domain.User
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/admin/users/{id}/verify [put]
func (h *AdminHandler) VerifyUser(c echo.Context) error {
	var req verifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.service.VerifyUser(c.Request().Context(), c.Param("id"), domain.VerificationStatus(req.Status), req.Reason)
	if err != nil {
		return err
	}

	metrics.VerificationDecisionsTotal.WithLabelValues("user", req.Status).Inc()
	return c.JSON(http.StatusOK, user)
}

// ListPlots handles GET /api/admin/plots — all plots, optionally filtered by
// verification status.
//
// @Summary      List plots
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by verification status"
// @Success      200  {array}   domain.Plot
// @Failure      403  {object}  map[string]string
// @Router       /api/admin/plots [get]
func (h *AdminHandler) ListPlots(c echo.Context) error {
	plots, err := h.service.ListPlots(c.Request().Context(), domain.VerificationStatus(c.QueryParam("status")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plots)
}

// GetPlot handles GET /api/admin/plots/:id.
//
// @Summary      Get a plot by id (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Plot id"
// @Success      200  {object}  domain.Plot
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/plots/{id} [get]
func (h *AdminHandler) GetPlot(c echo.Context) error {
	plot, err := h.service.GetPlot(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plot)
}

// VerifyPlot handles PUT /api/admin/plots/:id/verify. Rejection also takes
// the plot off the market.
//
// @Summary      Approve or reject a plot's verification
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Plot id"
// @Param        body  body      verifyRequest  true  "Decision"
// @Success      200   {object}  domain.Plot
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/admin/plots/{id}/verify [put]
func (h *AdminHandler) VerifyPlot(c echo.Context) error {
	var req verifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	plot, err := h.service.VerifyPlot(c.Request().Context(), c.Param("id"), domain.VerificationStatus(req.Status), req.Reason)
	if err != nil {
		return err
	}

	metrics.VerificationDecisionsTotal.WithLabelValues("plot", req.Status).Inc()
	return c.JSON(http.StatusOK, plot)
}

// ListBookings handles GET /api/admin/bookings — every booking in the system.
//
// @Summary      List all bookings
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Booking
// @Failure      403  {object}  map[string]string
// @Router       /api/admin/bookings [get]
func (h *AdminHandler) ListBookings(c echo.Context) error {
	bookings, err := h.service.ListBookings(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookings)
}

// Stats handles GET /api/admin/stats — the dashboard counters.
//
// @Summary      Dashboard statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Stats
// @Failure      403  {object}  map[string]string
// @Router       /api/admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
