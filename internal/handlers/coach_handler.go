package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/railbook/train-booking-backend/internal/models"
	"github.com/railbook/train-booking-backend/internal/services"
)

// CoachHandler handles coach provisioning and seat ledger views
type CoachHandler struct {
	coachService *services.CoachService
}

// NewCoachHandler creates a new CoachHandler
func NewCoachHandler(coachService *services.CoachService) *CoachHandler {
	return &CoachHandler{coachService: coachService}
}

// AddCoach provisions a coach with its seat block (admin).
// POST /api/v1/coaches
func (h *CoachHandler) AddCoach(c *gin.Context) {
	var req models.CreateCoachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "Invalid request body", "details": err.Error()})
		return
	}

	coach, err := h.coachService.AddCoach(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": coach})
}

// ListCoachesForTrain returns a train's coach listing.
// GET /api/v1/trains/:trainNumber/coaches
func (h *CoachHandler) ListCoachesForTrain(c *gin.Context) {
	coaches, err := h.coachService.GetCoachesForTrain(c.Param("trainNumber"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": coaches})
}

// GetCoachDetails returns one coach with its seat ledger.
// GET /api/v1/coaches/:coachNumber
func (h *CoachHandler) GetCoachDetails(c *gin.Context) {
	coach, err := h.coachService.GetCoachDetails(c.Param("coachNumber"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": coach})
}
