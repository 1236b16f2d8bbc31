package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/railbook/train-booking-backend/internal/models"
	"github.com/railbook/train-booking-backend/internal/services"
)

// TrainHandler handles train catalog operations
type TrainHandler struct {
	trainService *services.TrainService
}

// NewTrainHandler creates a new TrainHandler
func NewTrainHandler(trainService *services.TrainService) *TrainHandler {
	return &TrainHandler{trainService: trainService}
}

// ListTrains returns the whole catalog.
// GET /api/v1/trains
func (h *TrainHandler) ListTrains(c *gin.Context) {
	trains, err := h.trainService.ListTrains()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": trains})
}

// GetTrainByNumber returns one train.
// GET /api/v1/trains/:trainNumber
func (h *TrainHandler) GetTrainByNumber(c *gin.Context) {
	train, err := h.trainService.GetTrainByNumber(c.Param("trainNumber"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": train})
}

// GetTrainInfo returns a train with upcoming journeys and availability.
// GET /api/v1/trains/:trainNumber/info
func (h *TrainHandler) GetTrainInfo(c *gin.Context) {
	info, err := h.trainService.GetTrainInfo(c.Param("trainNumber"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": info})
}

// SearchTrains returns trains between two stations.
// GET /api/v1/trains/search?source=...&destination=...
func (h *TrainHandler) SearchTrains(c *gin.Context) {
	trains, err := h.trainService.SearchTrains(c.Query("source"), c.Query("destination"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": trains})
}

// ListActiveTrains returns trains open for booking within the window.
// GET /api/v1/trains/active
func (h *TrainHandler) ListActiveTrains(c *gin.Context) {
	trains, err := h.trainService.ListActiveTrains()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": trains})
}

// ListCities returns every station city.
// GET /api/v1/trains/cities
func (h *TrainHandler) ListCities(c *gin.Context) {
	cities, err := h.trainService.ListCities()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": cities})
}

// AddTrain creates a catalog entry (admin).
// POST /api/v1/trains
func (h *TrainHandler) AddTrain(c *gin.Context) {
	var req models.CreateTrainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "Invalid request body", "details": err.Error()})
		return
	}

	train, err := h.trainService.AddTrain(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": train})
}
