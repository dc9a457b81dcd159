// File: handlers/admin.go
package handlers

import (
	"net/http"

	clientRepo "clinibook/database/repository/client"
	professionalRepo "clinibook/database/repository/professional"
	"clinibook/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes admin-gated listings.
type AdminHandler struct {
	Clients clientRepo.ClientRepository
	Pros    professionalRepo.ProfessionalRepository
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(clients clientRepo.ClientRepository, pros professionalRepo.ProfessionalRepository) *AdminHandler {
	return &AdminHandler{Clients: clients, Pros: pros}
}

// ListClientsHandler handles GET /api/admin/clients.
func (h *AdminHandler) ListClientsHandler(c *gin.Context) {
	clients, err := h.Clients.ListAll(c.Request.Context())
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

// ListProfessionalsHandler handles GET /api/admin/professionals.
func (h *AdminHandler) ListProfessionalsHandler(c *gin.Context) {
	pros, err := h.Pros.ListAll(c.Request.Context())
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, pros)
}
