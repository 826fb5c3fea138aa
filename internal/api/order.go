package api

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"shop-service/internal/service"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// ListOrders returns all orders with their lines --> GET /orders
func (h *OrderHandler) ListOrders(c echo.Context) error {
	orders, err := h.orderService.ListOrders(c.Request().Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(200, orders)
}

// CreateOrder creates an order with its lines --> POST /orders
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	req := struct {
		SellerID int                      `json:"seller_id"`
		Lines    []service.OrderLineInput `json:"lines"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	order, err := h.orderService.CreateOrder(c.Request().Context(), req.SellerID, req.Lines)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(200, order)
}

// DeleteOrder removes an order and its lines --> DELETE /orders/:id
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	if err := h.orderService.DeleteOrder(c.Request().Context(), id); err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(200, map[string]bool{"success": true})
}
