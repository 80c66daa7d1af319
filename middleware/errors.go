package middleware

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/snap-point/blog-api/utils"
)

func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"message": "Not Found"})
}

// Recovery turns a panic into a generic 500 so internals never reach the client.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(os.Stdout, func(c *gin.Context, recovered any) {
		log.Printf("panic recovered request_id=%s: %v", utils.GetRequestID(c), recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
	})
}
