package routes

import (
	"agendly/handlers"
	"agendly/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers the staff-facing booking endpoints. All of
// them sit behind the staff auth middleware, which installs the tenant/unit
// scope every handler operates under.
func RegisterBookingRoutes(r *gin.Engine) {
	api := r.Group("/api", middleware.StaffAuthMiddleware())
	{
		api.GET("/availability", handlers.GetAvailability)
		api.POST("/appointments", handlers.CreateAppointment)
		api.PUT("/appointments/:id/reschedule", handlers.RescheduleAppointment)
		api.POST("/appointments/:id/cancel", handlers.CancelAppointment)
		api.PUT("/appointments/:id/status", middleware.AdminOnly(), handlers.ChangeAppointmentStatus)
	}
}

// RegisterPublicRoutes registers the customer-facing endpoints. Units are
// addressed by slug and appointments by signed token only.
func RegisterPublicRoutes(r *gin.Engine) {
	public := r.Group("/public")
	{
		public.GET("/:slug/availability", handlers.PublicAvailability)
		public.POST("/:slug/appointments", handlers.PublicCreateAppointment)
		public.PUT("/appointments/:token/reschedule", handlers.PublicRescheduleAppointment)
		public.POST("/appointments/:token/cancel", handlers.PublicCancelAppointment)
	}
}
