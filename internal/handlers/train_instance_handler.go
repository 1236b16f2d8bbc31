package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/railbook/train-booking-backend/internal/models"
	"github.com/railbook/train-booking-backend/internal/services"
)

// TrainInstanceHandler handles journey creation and the reservation chart
type TrainInstanceHandler struct {
	instanceService *services.TrainInstanceService
	chartService    *services.ChartService
}

// NewTrainInstanceHandler creates a new TrainInstanceHandler
func NewTrainInstanceHandler(instanceService *services.TrainInstanceService, chartService *services.ChartService) *TrainInstanceHandler {
	return &TrainInstanceHandler{instanceService: instanceService, chartService: chartService}
}

// CreateTrainInstance opens a journey for booking (admin).
// POST /api/v1/train-instances
func (h *TrainInstanceHandler) CreateTrainInstance(c *gin.Context) {
	var req models.CreateTrainInstanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "Invalid request body", "details": err.Error()})
		return
	}

	instance, err := h.instanceService.CreateTrainInstance(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": instance})
}

// GetReservationChart returns the chart for one journey.
// GET /api/v1/charts?trainNumber=...&journeyDate=...
func (h *TrainInstanceHandler) GetReservationChart(c *gin.Context) {
	trainNumber := c.Query("trainNumber")
	journeyDate := c.Query("journeyDate")
	if trainNumber == "" || journeyDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "trainNumber and journeyDate are required"})
		return
	}

	chart, err := h.chartService.GetReservationChart(trainNumber, journeyDate)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": chart})
}
