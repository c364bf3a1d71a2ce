package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/repstack/repstack/pkg/result"
)

// Recovery is the single error boundary for the HTTP surface. Panics are
// logged with full detail and translated into a generic 500 response so
// internal state never leaks to the client.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					zap.String("request_id", requestid.Get(c)),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"errors": []result.Error{result.Database(nil)},
				})
			}
		}()

		c.Next()
	}
}
