// File: handlers/availability.go
package handlers

import (
	"net/http"
	"strconv"

	"clinibook/models"
	"clinibook/services/availability"
	"clinibook/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler exposes window management for professionals and the
// public slot/window queries.
type AvailabilityHandler struct {
	Svc availability.AvailabilityService
}

// NewAvailabilityHandler creates a new AvailabilityHandler.
func NewAvailabilityHandler(svc availability.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Svc: svc}
}

// RegisterWindowsHandler handles PUT /api/professionals/me/availability.
func (h *AvailabilityHandler) RegisterWindowsHandler(c *gin.Context) {
	var input struct {
		Windows []models.WindowInput `json:"windows"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	windows, err := h.Svc.RegisterWindows(c.Request.Context(), c.GetString("professionalID"), input.Windows)
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"windows": windows, "count": len(windows)})
}

// MyWindowsHandler handles GET /api/professionals/me/availability.
func (h *AvailabilityHandler) MyWindowsHandler(c *gin.Context) {
	windows, err := h.Svc.Windows(c.Request.Context(), c.GetString("professionalID"))
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, windows)
}

// RemoveWindowsHandler handles DELETE /api/professionals/me/availability.
// Accepts either a window id or an exact (date, start_time, end_time) match.
func (h *AvailabilityHandler) RemoveWindowsHandler(c *gin.Context) {
	var input struct {
		ID        string `json:"id,omitempty"`
		Date      string `json:"date,omitempty"`
		StartTime string `json:"start_time,omitempty"`
		EndTime   string `json:"end_time,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	professionalID := c.GetString("professionalID")
	if input.ID != "" {
		if err := h.Svc.RemoveWindowByID(c.Request.Context(), professionalID, input.ID); err != nil {
			utils.JSONDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"removed": 1})
		return
	}
	if input.Date == "" || input.StartTime == "" || input.EndTime == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "either id or date, start_time and end_time are required"})
		return
	}

	removed, err := h.Svc.RemoveWindows(c.Request.Context(), professionalID, input.Date, input.StartTime, input.EndTime)
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// PublicWindowsHandler handles GET /api/professionals/:id/windows.
func (h *AvailabilityHandler) PublicWindowsHandler(c *gin.Context) {
	windows, err := h.Svc.WindowsInRange(c.Request.Context(), c.Param("id"),
		c.Query("from"), c.Query("to"))
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, windows)
}

// SlotsHandler handles GET /api/professionals/:id/slots.
func (h *AvailabilityHandler) SlotsHandler(c *gin.Context) {
	step := 0
	if raw := c.Query("step"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "step must be an integer"})
			return
		}
		step = parsed
	}

	days, err := h.Svc.FreeSlots(c.Request.Context(), c.Param("id"),
		c.Query("from"), c.Query("to"), step)
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, days)
}
