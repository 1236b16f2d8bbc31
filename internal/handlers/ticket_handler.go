package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/railbook/train-booking-backend/internal/services"
)

// TicketHandler handles read-only ticket lookups
type TicketHandler struct {
	ticketQueryService *services.TicketQueryService
}

// NewTicketHandler creates a new TicketHandler
func NewTicketHandler(ticketQueryService *services.TicketQueryService) *TicketHandler {
	return &TicketHandler{ticketQueryService: ticketQueryService}
}

// GetTicketByPNR returns a ticket with its train summary.
// GET /api/v1/tickets/:pnrNumber
func (h *TicketHandler) GetTicketByPNR(c *gin.Context) {
	pnrNumber := c.Param("pnrNumber")
	if pnrNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "PNR number is required"})
		return
	}

	ticket, err := h.ticketQueryService.GetTicketByPNR(pnrNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    ticket,
	})
}
