package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dosmed/drug-ordering-system/internal/api/metrics"
	"github.com/dosmed/drug-ordering-system/internal/core/domain"
	"github.com/dosmed/drug-ordering-system/internal/core/ports"
)

// OrderHandler exposes order placement and fulfillment over HTTP. The
// ordering user is always taken from the token, never from the payload.
type OrderHandler struct {
	service ports.OrderingService
}

func NewOrderHandler(service ports.OrderingService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Place creates an order for the authenticated user.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      placeOrderRequest  true  "Drug ids and quantities"
// @Success      201   {object}  placeOrderResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /orders [post]
func (h *OrderHandler) Place(c echo.Context) error {
	_, _, userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order := domain.NewOrderBuilder().
		OrderedBy(userID).
		Delivered(false).
		DeliveredAt(req.DeliveredAt).
		Drugs(req.Drugs).
		Build()

	if !h.service.PlaceOrder(c.Request().Context(), order) {
		metrics.OrdersPlacedTotal.WithLabelValues("rejected").Inc()
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: "order rejected"})
	}

	metrics.OrdersPlacedTotal.WithLabelValues("placed").Inc()
	return c.JSON(http.StatusCreated, placeOrderResponse{ID: order.ID})
}

// List returns all orders as projections.
//
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Success      200  {array}  ports.OrderProjection
// @Router       /orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.Orders(c.Request().Context()))
}

// Complete marks an order delivered.
//
// @Summary      Complete an order
// @Tags         orders
// @Produce      json
// @Param        id  path  int  true  "Order id"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Router       /orders/{id}/complete [post]
func (h *OrderHandler) Complete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	h.service.CompleteOrder(c.Request().Context(), id)
	return c.NoContent(http.StatusNoContent)
}

// Cancel removes an order and its line items.
//
// @Summary      Cancel an order
// @Tags         orders
// @Produce      json
// @Param        id  path  int  true  "Order id"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Router       /orders/{id} [delete]
func (h *OrderHandler) Cancel(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	h.service.CancelOrder(c.Request().Context(), id)
	return c.NoContent(http.StatusNoContent)
}
