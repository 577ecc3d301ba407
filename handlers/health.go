package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"courtbot/utils"
)

// HealthHandler reports the latest stored backend health snapshot.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}
