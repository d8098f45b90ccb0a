package handlers

import (
	"errors"
	"net/http"

	unitRepo "agendly/database/repository/unit"
	"agendly/services/booking"
	"agendly/utils"

	"github.com/gin-gonic/gin"
)

// Wired from main at startup.
var (
	BookingService booking.BookingService
	UnitRepo       unitRepo.UnitRepository
)

// statusFor maps a domain error code onto an HTTP status. Slot conflicts get
// 409 so clients know to refetch availability and retry; everything else is a
// non-retryable request problem.
func statusFor(code string) int {
	switch code {
	case booking.CodeNotFound:
		return http.StatusNotFound
	case booking.CodeValidation:
		return http.StatusBadRequest
	case booking.CodeSlotConflict, booking.CodeInvalidTransition:
		return http.StatusConflict
	case booking.CodeClosedDay, booking.CodeOutsideHours,
		booking.CodeLeadTime, booking.CodeCancellationWindow,
		booking.CodeRescheduleLimit:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// respondError renders a booking domain error, or a generic 500 for anything
// unexpected.
func respondError(c *gin.Context, err error) {
	var domainErr *booking.Error
	if errors.As(err, &domainErr) {
		c.JSON(statusFor(domainErr.Code), gin.H{
			"error":     domainErr.Message,
			"code":      domainErr.Code,
			"threshold": domainErr.Threshold,
			"retryable": booking.Retryable(err),
		})
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
}
