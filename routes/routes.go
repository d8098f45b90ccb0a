package routes

import (
	"agendly/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every endpoint group onto the router.
func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", handlers.Health)

	RegisterBookingRoutes(r)
	RegisterPublicRoutes(r)
}
