package api

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"shop-service/internal/service"
)

type ClientHandler struct {
	clientService service.ClientService
}

func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// ListClients returns all clients --> GET /clients
func (h *ClientHandler) ListClients(c echo.Context) error {
	clients, err := h.clientService.ListClients(c.Request().Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(200, clients)
}

// CreateClient creates a client --> POST /clients
func (h *ClientHandler) CreateClient(c echo.Context) error {
	req := struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	client, err := h.clientService.CreateClient(c.Request().Context(), req.Name, req.Email, req.Phone, req.Address)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(200, client)
}

// UpdateClient applies a partial update --> PUT /clients/:id
func (h *ClientHandler) UpdateClient(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	req := struct {
		Name    *string `json:"name"`
		Email   *string `json:"email"`
		Phone   *string `json:"phone"`
		Address *string `json:"address"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	client, err := h.clientService.UpdateClient(c.Request().Context(), id, req.Name, req.Email, req.Phone, req.Address)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(200, client)
}

// DeleteClient removes a client --> DELETE /clients/:id
func (h *ClientHandler) DeleteClient(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	if err := h.clientService.DeleteClient(c.Request().Context(), id); err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(200, map[string]bool{"success": true})
}
