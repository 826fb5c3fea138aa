package api

import (
	"errors"

	"github.com/labstack/echo/v4"

	"shop-service/internal/repository"
	"shop-service/internal/service"
)

// errorJSON maps domain errors onto HTTP statuses and renders them as the
// usual {"error": ...} payload.
func errorJSON(c echo.Context, err error) error {
	status := 500
	switch {
	case errors.Is(err, repository.ErrInvalidInput):
		status = 400
	case errors.Is(err, service.ErrUnauthorized):
		status = 401
	case errors.Is(err, repository.ErrNotFound):
		status = 404
	case errors.Is(err, repository.ErrDuplicate):
		status = 409
	}
	return c.JSON(status, map[string]string{"error": err.Error()})
}
