package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/greenspace/marketplace/internal/api/metrics"
	"github.com/greenspace/marketplace/internal/core/ports"
)

// PlotHandler handles HTTP requests for plot listings.
type PlotHandler struct {
	service ports.PlotService
}

func NewPlotHandler(service ports.PlotService) *PlotHandler {
	return &PlotHandler{service: service}
}

// Search handles GET /api/plots — the public, filterable catalogue. Only
// approved and available plots appear.
//
// @Summary      Search available plots
// @Tags         plots
// @Produce      json
// @Param        city                query     string  false  "City (case-insensitive substring)"
// @Param        soil_type           query     string  false  "Soil type"
// @Param        water_availability  query     string  false  "Water availability"
// @Param        min_size            query     number  false  "Minimum size value"
// @Param        max_size            query     number  false  "Maximum size value"
// @Success      200  {array}   domain.Plot
// @Failure      500  {object}  map[string]string
// @Router       /api/plots [get]
func (h *PlotHandler) Search(c echo.Context) error {
	filter := ports.PlotSearchFilter{
		City:              c.QueryParam("city"),
		SoilType:          c.QueryParam("soil_type"),
		WaterAvailability: c.QueryParam("water_availability"),
	}
	if raw := c.QueryParam("min_size"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "min_size must be a number")
		}
		filter.MinSize = v
	}
	if raw := c.QueryParam("max_size"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "max_size must be a number")
		}
		filter.MaxSize = v
	}

	plots, err := h.service.Search(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plots)
}

// Get handles GET /api/plots/:id.
//
// @Summary      Get a plot by id
// @Tags         plots
// @Produce      json
// @Param        id   path      string  true  "Plot id"
// @Success      200  {object}  domain.Plot
// @Failure      404  {object}  map[string]string
// @Router       /api/plots/{id} [get]
func (h *PlotHandler) Get(c echo.Context) error {
	plot, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plot)
}

// ListMine handles GET /api/plots/mine — the landowner's own listings,
// regardless of availability or verification state.
//
// @Summary      List own plots
// @Tags         plots
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Plot
// @Failure      401  {object}  map[string]string
// @Router       /api/plots/mine [get]
func (h *PlotHandler) ListMine(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	plots, err := h.service.ListByOwner(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plots)
}

// Create handles POST /api/plots. New listings start unverified and available.
//
// @Summary      List a new plot
// @Tags         plots
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPlotRequest  true  "Plot details"
// @Success      201   {object}  domain.Plot
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/plots [post]
func (h *PlotHandler) Create(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createPlotRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	plot, err := h.service.Create(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return err
	}

	metrics.PlotsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, plot)
}

// Update handles PUT /api/plots/:id. Only the owner may edit.
//
// @Summary      Update a plot
// @Tags         plots
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Plot id"
// @Param        body  body      updatePlotRequest  true  "Plot details"
// @Success      200   {object}  domain.Plot
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/plots/{id} [put]
func (h *PlotHandler) Update(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updatePlotRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	plot, err := h.service.Update(c.Request().Context(), c.Param("id"), userID, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plot)
}

// Delete handles DELETE /api/plots/:id. Only the owner may delete.
//
// @Summary      Delete a plot
// @Tags         plots
// @Security     BearerAuth
// @Param        id  path  string  true  "Plot id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/plots/{id} [delete]
func (h *PlotHandler) Delete(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ReplaceDocuments handles PUT /api/plots/:id/documents — swaps the plot's
// whole proof document set.
//
// @Summary      Replace plot documents
// @Tags         plots
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                       true  "Plot id"
// @Param        body  body      replacePlotDocumentsRequest  true  "Document references"
// @Success      200   {object}  domain.Plot
// @Failure      404   {object}  map[string]string
// @Router       /api/plots/{id}/documents [put]
func (h *PlotHandler) ReplaceDocuments(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req replacePlotDocumentsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	docs := make([]ports.PlotDocumentInput, 0, len(req.Documents))
	for _, d := range req.Documents {
		docs = append(docs, ports.PlotDocumentInput{Name: d.Name, URL: d.URL, Type: d.Type})
	}

	plot, err := h.service.ReplaceDocuments(c.Request().Context(), c.Param("id"), userID, docs)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plot)
}
