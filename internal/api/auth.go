package api

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"shop-service/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
	userService service.UserService
}

func NewAuthHandler(authService service.AuthService, userService service.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService}
}

// Register creates a new user --> POST /auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	req := struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Email    string `json:"email"`
		Role     string `json:"role"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	user, err := h.userService.Register(c.Request().Context(), req.Username, req.Password, req.Email, req.Role)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(200, user)
}

// ObtainToken checks credentials and issues a token --> POST /auth/token
func (h *AuthHandler) ObtainToken(c echo.Context) error {
	req := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	token, err := h.authService.ObtainToken(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(200, map[string]string{"token": token})
}

// VerifyToken validates a token --> POST /auth/verify
func (h *AuthHandler) VerifyToken(c echo.Context) error {
	req := struct {
		Token string `json:"token"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	claims, err := h.authService.VerifyToken(c.Request().Context(), req.Token)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(200, map[string]interface{}{
		"valid":    true,
		"username": claims.Username,
		"role":     claims.Role,
	})
}

// RefreshToken exchanges a valid token for a new one --> POST /auth/refresh
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	req := struct {
		Token string `json:"token"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	token, err := h.authService.RefreshToken(c.Request().Context(), req.Token)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(200, map[string]string{"token": token})
}

// Me returns the caller's identity from the verified claims --> GET /auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return c.JSON(401, map[string]string{"error": "Unauthorized"})
	}

	// The route gate only checks signature and expiry; the service also
	// rejects revoked tokens.
	claims, err := h.authService.VerifyToken(c.Request().Context(), token.Raw)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(200, map[string]interface{}{
		"user_id":  claims.UserID,
		"username": claims.Username,
		"role":     claims.Role,
	})
}

// ChangePassword replaces the caller's password --> POST /auth/password
// The route is gated by the JWT middleware; the caller identity comes from
// the verified claims, never from the payload.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return c.JSON(401, map[string]string{"error": "Unauthorized"})
	}

	claims, err := h.authService.VerifyToken(c.Request().Context(), token.Raw)
	if err != nil {
		return errorJSON(c, err)
	}

	req := struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	if err := h.userService.ChangePassword(c.Request().Context(), claims.UserID, req.OldPassword, req.NewPassword); err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(200, map[string]bool{"success": true})
}
