package handlers

import (
	"net/http"

	"agendly/utils"

	"github.com/gin-gonic/gin"
)

// Health reports the last known state of Mongo and Redis.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}
