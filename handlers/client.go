// File: handlers/client.go
package handlers

import (
	"net/http"

	clientRepo "clinibook/database/repository/client"
	"clinibook/services/account"
	"clinibook/utils"

	"github.com/gin-gonic/gin"
)

// ClientHandler exposes the client-side profile surface.
type ClientHandler struct {
	Accounts account.AccountService
	Clients  clientRepo.ClientRepository
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(accounts account.AccountService, clients clientRepo.ClientRepository) *ClientHandler {
	return &ClientHandler{Accounts: accounts, Clients: clients}
}

// MeHandler handles GET /api/clients/me.
func (h *ClientHandler) MeHandler(c *gin.Context) {
	userID := c.GetString("userID")

	user, err := h.Accounts.GetUser(c.Request.Context(), userID)
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	client, err := h.Clients.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "client": client})
}

// UpdateMeHandler handles PUT /api/clients/me.
func (h *ClientHandler) UpdateMeHandler(c *gin.Context) {
	var input account.UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	user, err := h.Accounts.Update(c.Request.Context(), c.GetString("userID"), input)
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteMeHandler handles DELETE /api/clients/me.
func (h *ClientHandler) DeleteMeHandler(c *gin.Context) {
	if err := h.Accounts.Delete(c.Request.Context(), c.GetString("userID")); err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}
