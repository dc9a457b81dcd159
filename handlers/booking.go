// File: handlers/booking.go
package handlers

import (
	"net/http"

	"clinibook/services/booking"
	"clinibook/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the reservation lifecycle.
type BookingHandler struct {
	Svc booking.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Svc: svc}
}

// BookHandler handles POST /api/reservations.
func (h *BookingHandler) BookHandler(c *gin.Context) {
	var input struct {
		ProfessionalID string `json:"professional_id"`
		Date           string `json:"date"`
		Time           string `json:"time"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if input.ProfessionalID == "" || input.Date == "" || input.Time == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "professional_id, date and time are required"})
		return
	}

	res, err := h.Svc.RequestBooking(c.Request.Context(), c.GetString("clientID"),
		input.ProfessionalID, input.Date, input.Time)
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// ConfirmHandler handles PUT /api/reservations/:id/confirm.
func (h *BookingHandler) ConfirmHandler(c *gin.Context) {
	res, err := h.Svc.Confirm(c.Request.Context(), c.GetString("professionalID"), c.Param("id"))
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// CancelHandler handles PUT /api/reservations/:id/cancel.
func (h *BookingHandler) CancelHandler(c *gin.Context) {
	res, err := h.Svc.CancelByClient(c.Request.Context(), c.GetString("clientID"), c.Param("id"))
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DeleteHandler handles DELETE /api/reservations/:id.
func (h *BookingHandler) DeleteHandler(c *gin.Context) {
	if err := h.Svc.DeleteCancelled(c.Request.Context(), c.GetString("clientID"), c.Param("id")); err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reservation deleted"})
}

// MineHandler handles GET /api/reservations/mine.
func (h *BookingHandler) MineHandler(c *gin.Context) {
	reservations, err := h.Svc.MyReservations(c.Request.Context(), c.GetString("clientID"))
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// QueueHandler handles GET /api/reservations/queue.
func (h *BookingHandler) QueueHandler(c *gin.Context) {
	queue, err := h.Svc.Queue(c.Request.Context(), c.GetString("professionalID"), c.Query("status"))
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, queue)
}
