// File: handlers/auth.go
package handlers

import (
	"net/http"

	"clinibook/services/account"
	"clinibook/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes registration and login.
type AuthHandler struct {
	Accounts account.AccountService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accounts account.AccountService) *AuthHandler {
	return &AuthHandler{Accounts: accounts}
}

// RegisterHandler handles POST /api/auth/register.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var input account.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.Accounts.Register(c.Request.Context(), input)
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// LoginHandler handles POST /api/auth/login.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.Accounts.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		// A wrong password and an unknown email look identical to the caller.
		if utils.HasCode(err, utils.CodeNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		utils.JSONDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
