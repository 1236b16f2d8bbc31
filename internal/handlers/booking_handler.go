package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/railbook/train-booking-backend/internal/middleware"
	"github.com/railbook/train-booking-backend/internal/models"
	"github.com/railbook/train-booking-backend/internal/services"
)

// BookingHandler handles reservation requests and booking history
type BookingHandler struct {
	reservationService *services.ReservationService
	ticketQueryService *services.TicketQueryService
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(reservationService *services.ReservationService, ticketQueryService *services.TicketQueryService) *BookingHandler {
	return &BookingHandler{
		reservationService: reservationService,
		ticketQueryService: ticketQueryService,
	}
}

// BookTickets reserves seats for every passenger in the request, all or
// nothing.
// POST /api/v1/bookings
func (h *BookingHandler) BookTickets(c *gin.Context) {
	accountCtx, exists := middleware.GetAccountContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.BookTicketsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "Invalid request body", "details": err.Error()})
		return
	}

	result, err := h.reservationService.BookTickets(accountCtx.AccountID.String(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    result,
	})
}

// GetBookingHistory returns the account's bookings with tickets, most recent
// first.
// GET /api/v1/bookings
func (h *BookingHandler) GetBookingHistory(c *gin.Context) {
	accountCtx, exists := middleware.GetAccountContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	history, err := h.ticketQueryService.GetAccountBookings(accountCtx.AccountID.String())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    history,
	})
}
