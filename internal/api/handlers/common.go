package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/murmurapp/backend/internal/utils"
)

// writeError emits the flat {"error": ...} shape every endpoint shares.
// Only the AppError safe message reaches the client.
func writeError(c *gin.Context, err error) {
	c.JSON(utils.HTTPStatus(err), gin.H{"error": utils.UserMessage(err)})
}

// userID pulls the caller-supplied identity header. Whether its absence
// is fatal is decided downstream, at save time.
func userID(c *gin.Context) string {
	return c.GetHeader("X-User-Id")
}
