package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/sales-api/internal/presentation/http/dto/response"
	"github.com/sangkips/sales-api/pkg/apperror"
	"go.uber.org/zap"
)

// RecoveryMiddleware turns a panic in a handler into a 500 response in the
// standard error envelope
func RecoveryMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			zap.String("request_id", c.GetString(response.RequestIDKey)),
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
			zap.Stack("stack"),
		)
		response.Error(c, apperror.ErrInternalServer)
		c.Abort()
	})
}
