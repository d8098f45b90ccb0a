package handlers

import (
	"net/http"

	"agendly/middleware"
	"agendly/models"

	"github.com/gin-gonic/gin"
)

// GetAvailability returns the slot grid for a professional, service and date
// within the caller's unit.
func GetAvailability(c *gin.Context) {
	scope, ok := middleware.ScopeFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing scope"})
		return
	}

	req := models.AvailabilityRequest{
		UnitID:               scope.UnitID,
		ProfessionalID:       c.Query("professional_id"),
		ServiceID:            c.Query("service_id"),
		Date:                 c.Query("date"),
		ExcludeAppointmentID: c.Query("exclude_appointment_id"),
	}
	if req.ProfessionalID == "" || req.ServiceID == "" || req.Date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "professional_id, service_id and date are required"})
		return
	}

	slots, err := BookingService.Availability(c.Request.Context(), scope, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}
