package handlers

import (
	"errors"
	"net/http"
	"time"

	unitRepo "agendly/database/repository/unit"
	"agendly/models"
	"agendly/services/booking"
	"agendly/utils"

	"github.com/gin-gonic/gin"
)

// appointmentTokenTTL bounds how long a public booking token stays usable.
const appointmentTokenTTL = 90 * 24 * time.Hour

// resolveSlug turns a public unit slug into the unit and its derived scope.
// The slug is the only unit handle the public surface ever sees.
func resolveSlug(c *gin.Context) (*models.BusinessUnit, models.Scope, bool) {
	unit, err := UnitRepo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, unitRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown booking page"})
		} else {
			utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
		}
		return nil, models.Scope{}, false
	}
	scope, err := models.NewScope(unit.TenantID, unit.ID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
		return nil, models.Scope{}, false
	}
	return unit, scope, true
}

// resolveToken validates a signed public appointment token and rebuilds the
// scope it was issued under.
func resolveToken(c *gin.Context) (string, models.Scope, bool) {
	appointmentID, tenantID, unitID, err := utils.ParseAppointmentToken(c.Param("token"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown appointment"})
		return "", models.Scope{}, false
	}
	scope, err := models.NewScope(tenantID, unitID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown appointment"})
		return "", models.Scope{}, false
	}
	return appointmentID, scope, true
}

// PublicAvailability serves the slot grid for a unit's public booking page.
func PublicAvailability(c *gin.Context) {
	_, scope, ok := resolveSlug(c)
	if !ok {
		return
	}

	req := models.AvailabilityRequest{
		UnitID:         scope.UnitID,
		ProfessionalID: c.Query("professional_id"),
		ServiceID:      c.Query("service_id"),
		Date:           c.Query("date"),
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

// PublicCreateAppointment books a slot from the public page. The response
// carries a signed token, never the internal appointment id.
func PublicCreateAppointment(c *gin.Context) {
	unit, scope, ok := resolveSlug(c)
	if !ok {
		return
	}

	var input struct {
		ProfessionalID string    `json:"professional_id" binding:"required"`
		ServiceID      string    `json:"service_id" binding:"required"`
		CustomerName   string    `json:"customer_name" binding:"required"`
		CustomerPhone  string    `json:"customer_phone" binding:"required"`
		CustomerEmail  string    `json:"customer_email"`
		StartAt        time.Time `json:"start_at" binding:"required"`
		Notes          string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := BookingService.Create(c.Request.Context(), scope, booking.CreateInput{
		ProfessionalID: input.ProfessionalID,
		ServiceID:      input.ServiceID,
		CustomerName:   input.CustomerName,
		CustomerPhone:  input.CustomerPhone,
		CustomerEmail:  input.CustomerEmail,
		StartAt:        input.StartAt,
		Notes:          input.Notes,
		Origin:         models.OriginPublic,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := utils.GenerateAppointmentToken(appt.ID, unit.TenantID, unit.ID, appointmentTokenTTL)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":        token,
		"status":       appt.Status,
		"scheduled_at": appt.ScheduledAt,
		"duration":     appt.DurationMinutes,
	})
}

// PublicRescheduleAppointment moves a booking addressed by its signed token.
func PublicRescheduleAppointment(c *gin.Context) {
	appointmentID, scope, ok := resolveToken(c)
	if !ok {
		return
	}

	var input struct {
		NewStartAt time.Time `json:"new_start_at" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := BookingService.Reschedule(c.Request.Context(), scope, appointmentID, input.NewStartAt)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       appt.Status,
		"scheduled_at": appt.ScheduledAt,
		"duration":     appt.DurationMinutes,
	})
}

// PublicCancelAppointment cancels a booking addressed by its signed token.
// The actor is always the customer, so the cancellation window applies.
func PublicCancelAppointment(c *gin.Context) {
	appointmentID, scope, ok := resolveToken(c)
	if !ok {
		return
	}

	var input struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&input)

	appt, err := BookingService.Cancel(c.Request.Context(), scope, appointmentID, input.Reason, models.ActorCustomer)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": appt.Status})
}
