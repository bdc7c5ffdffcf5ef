package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"cmueats/services/dining"
	"cmueats/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LocationHandler serves dining location statuses.
type LocationHandler struct {
	Service dining.LocationService
	Clock   func() time.Time
}

func NewLocationHandler(svc dining.LocationService) *LocationHandler {
	return &LocationHandler{Service: svc, Clock: time.Now}
}

// GetLocationsHandler returns every location with its current status.
func (h *LocationHandler) GetLocationsHandler(c *gin.Context) {
	statuses := h.Service.Statuses(c.Request.Context(), h.Clock())
	c.JSON(http.StatusOK, gin.H{"locations": statuses})
}

// GetLocationHandler returns one location by concept ID.
func (h *LocationHandler) GetLocationHandler(c *gin.Context) {
	raw := c.Param("conceptId")
	conceptID, err := strconv.Atoi(raw)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid concept ID", raw)
		return
	}

	status, err := h.Service.Status(c.Request.Context(), conceptID, h.Clock())
	if errors.Is(err, dining.ErrLocationNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Location not found", raw)
		return
	}
	if err != nil {
		getLogger(c).Error("Failed to load location", zap.Int("conceptId", conceptID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load location", "")
		return
	}
	c.JSON(http.StatusOK, status)
}

// GetBlockPeriodHandler returns the meal window for the current dining-zone time.
func (h *LocationHandler) GetBlockPeriodHandler(c *gin.Context) {
	now := h.Clock().In(h.Service.TimeZone())
	c.JSON(http.StatusOK, dining.CurrentBlockPeriod(now))
}
