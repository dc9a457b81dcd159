// File: handlers/professional.go
package handlers

import (
	"net/http"

	professionalRepo "clinibook/database/repository/professional"
	userRepo "clinibook/database/repository/user"
	"clinibook/models"
	"clinibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProfessionalHandler exposes the public professional directory.
type ProfessionalHandler struct {
	Pros  professionalRepo.ProfessionalRepository
	Users userRepo.UserRepository
}

// NewProfessionalHandler creates a new ProfessionalHandler.
func NewProfessionalHandler(pros professionalRepo.ProfessionalRepository, users userRepo.UserRepository) *ProfessionalHandler {
	return &ProfessionalHandler{Pros: pros, Users: users}
}

// professionalCard is the public directory entry: the record plus display name.
type professionalCard struct {
	models.Professional
	Name string `json:"name,omitempty"`
}

// ListHandler handles GET /api/professionals.
func (h *ProfessionalHandler) ListHandler(c *gin.Context) {
	pros, err := h.Pros.ListAll(c.Request.Context())
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}

	cards := make([]professionalCard, 0, len(pros))
	for _, pro := range pros {
		card := professionalCard{Professional: pro}
		if user, err := h.Users.GetByID(c.Request.Context(), pro.UserID); err == nil {
			card.Name = user.Name
		} else {
			utils.GetLogger().Warn("professional has no backing user",
				zap.String("professionalID", pro.ID), zap.Error(err))
		}
		cards = append(cards, card)
	}
	c.JSON(http.StatusOK, cards)
}

// GetHandler handles GET /api/professionals/:id.
func (h *ProfessionalHandler) GetHandler(c *gin.Context) {
	pro, err := h.Pros.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}

	card := professionalCard{Professional: *pro}
	if user, err := h.Users.GetByID(c.Request.Context(), pro.UserID); err == nil {
		card.Name = user.Name
	}
	c.JSON(http.StatusOK, card)
}
