package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dosmed/drug-ordering-system/internal/core/domain"
	"github.com/dosmed/drug-ordering-system/internal/core/ports"
)

// DrugHandler exposes the catalog over HTTP.
type DrugHandler struct {
	service ports.OrderingService
}

func NewDrugHandler(service ports.OrderingService) *DrugHandler {
	return &DrugHandler{service: service}
}

// Available lists in-stock drugs for order building.
//
// @Summary      List available drugs
// @Tags         drugs
// @Produce      json
// @Success      200  {array}  ports.DrugProjection
// @Router       /drugs/available [get]
func (h *DrugHandler) Available(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.AvailableDrugs(c.Request().Context()))
}

// Add registers a new catalog entry.
//
// @Summary      Add a drug
// @Tags         drugs
// @Accept       json
// @Produce      json
// @Param        body  body      drugRequest  true  "Catalog entry"
// @Success      201   {object}  domain.Drug
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /drugs [post]
func (h *DrugHandler) Add(c echo.Context) error {
	var req drugRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	drug := domain.NewDrugBuilder().
		Name(req.Name).
		Description(req.Description).
		InStock(req.InStock).
		Build()

	existing, err := h.service.AddDrug(c.Request().Context(), drug)
	if err != nil {
		return err
	}
	if existing != nil {
		return c.JSON(http.StatusConflict, errorResponse{Error: "drug already exists"})
	}

	return c.JSON(http.StatusCreated, drug)
}

// Update replaces a catalog entry.
//
// @Summary      Update a drug
// @Tags         drugs
// @Accept       json
// @Produce      json
// @Param        id    path      int          true  "Drug id"
// @Param        body  body      drugRequest  true  "Replacement entry"
// @Success      200   {object}  domain.Drug
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /drugs/{id} [put]
func (h *DrugHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid drug id")
	}

	var req drugRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	drug := domain.NewDrugBuilder().
		ID(id).
		Name(req.Name).
		Description(req.Description).
		InStock(req.InStock).
		Build()

	if !h.service.UpdateDrug(c.Request().Context(), drug) {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "drug not found"})
	}
	return c.JSON(http.StatusOK, drug)
}

// Remove deletes a catalog entry.
//
// @Summary      Remove a drug
// @Tags         drugs
// @Produce      json
// @Param        id  path  int  true  "Drug id"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /drugs/{id} [delete]
func (h *DrugHandler) Remove(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid drug id")
	}

	if !h.service.RemoveDrug(c.Request().Context(), id) {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "drug not found"})
	}
	return c.NoContent(http.StatusNoContent)
}
