package handlers

import (
	"net/http"
	"time"

	"agendly/middleware"
	"agendly/models"
	"agendly/services/booking"

	"github.com/gin-gonic/gin"
)

// CreateAppointment books a slot on behalf of staff.
func CreateAppointment(c *gin.Context) {
	scope, ok := middleware.ScopeFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing scope"})
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
		Origin:         models.OriginInternal,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, appt)
}

// RescheduleAppointment moves an appointment to a new start time.
func RescheduleAppointment(c *gin.Context) {
	scope, ok := middleware.ScopeFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing scope"})
		return
	}

	var input struct {
		NewStartAt time.Time `json:"new_start_at" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := BookingService.Reschedule(c.Request.Context(), scope, c.Param("id"), input.NewStartAt)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, appt)
}

// CancelAppointment cancels an appointment. The actor kind follows the staff
// role: admins bypass the cancellation window.
func CancelAppointment(c *gin.Context) {
	scope, ok := middleware.ScopeFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing scope"})
		return
	}

	var input struct {
		Reason string `json:"reason"`
	}
	// Body is optional for cancellation.
	_ = c.ShouldBindJSON(&input)

	actor := models.ActorCustomer
	if middleware.RoleFrom(c) == middleware.RoleAdmin {
		actor = models.ActorAdmin
	}

	appt, err := BookingService.Cancel(c.Request.Context(), scope, c.Param("id"), input.Reason, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": appt.Status, "appointment": appt})
}

// ChangeAppointmentStatus applies an administrative lifecycle transition.
func ChangeAppointmentStatus(c *gin.Context) {
	scope, ok := middleware.ScopeFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing scope"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := BookingService.AdminStatusChange(c.Request.Context(), scope, c.Param("id"), models.AppointmentStatus(input.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, appt)
}
