package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hostelops/complaints/internal/errs"
	"github.com/hostelops/complaints/internal/service"
	"github.com/hostelops/complaints/internal/transport"
)

type AuthHandler struct {
	Service *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{Service: svc}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return httpError(errs.Validation("invalid request body"))
	}

	res, err := h.Service.Register(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Registration successful",
		"token":   res.Token,
		"user":    transport.NewUserResponse(res.User),
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return httpError(errs.Validation("invalid request body"))
	}

	res, err := h.Service.Login(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   res.Token,
		"user":    transport.NewUserResponse(res.User),
	})
}

func (h *AuthHandler) Seed(c echo.Context) error {
	res, err := h.Service.Seed(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	if !res.Created {
		return c.JSON(http.StatusOK, map[string]any{
			"message": "Admin account already exists",
			"email":   res.User.Email,
		})
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Admin account created successfully",
		"user":    transport.NewUserResponse(res.User),
		"token":   res.Token,
	})
}
