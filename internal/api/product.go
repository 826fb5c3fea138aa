package api

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"shop-service/internal/service"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ListProducts returns all products --> GET /products
func (h *ProductHandler) ListProducts(c echo.Context) error {
	products, err := h.productService.ListProducts(c.Request().Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(200, products)
}

// CreateProduct creates a product --> POST /products
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	req := struct {
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		Stock    int     `json:"stock"`
		SellerID int     `json:"seller_id"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	product, err := h.productService.CreateProduct(c.Request().Context(), req.Name, req.Price, req.Stock, req.SellerID)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(200, product)
}

// UpdateProduct applies a partial update --> PUT /products/:id
// Absent fields stay unchanged.
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	req := struct {
		Name  *string  `json:"name"`
		Price *float64 `json:"price"`
		Stock *int     `json:"stock"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	product, err := h.productService.UpdateProduct(c.Request().Context(), id, req.Name, req.Price, req.Stock)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(200, product)
}

// DeleteProduct removes a product --> DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	if err := h.productService.DeleteProduct(c.Request().Context(), id); err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(200, map[string]bool{"success": true})
}
