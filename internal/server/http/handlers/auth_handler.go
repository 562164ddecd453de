package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feasthq/mealdesk/internal/server/http/dto"
	"github.com/feasthq/mealdesk/internal/server/http/middleware"
)

// AuthHandler processes registration and login.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	customer, token, err := h.facade.Register(c.Request.Context(), req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	customer, token, err := h.facade.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}
