package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/sales-api/internal/domain/entity"
	"github.com/sangkips/sales-api/internal/domain/repository"
	"github.com/sangkips/sales-api/internal/presentation/http/dto/response"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the idempotency store
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// DefaultIdempotencyKeyTTL is how long keys are valid unless configured otherwise
	DefaultIdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo   repository.IdempotencyRepository
	TTL    time.Duration
	Logger *zap.Logger
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response when an authenticated client repeats
// a write with the same Idempotency-Key. Only successful responses are stored,
// so a failed attempt can be retried with the same key. A key is bound to the
// method and route it was first used on; reuse elsewhere is rejected with 422.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	ttl := config.TTL
	if ttl <= 0 {
		ttl = DefaultIdempotencyKeyTTL
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		if c.Request.Method != "POST" && c.Request.Method != "PUT" {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			c.Next()
			return
		}

		userIDValue, exists := c.Get(ContextUserID)
		if !exists {
			c.Next()
			return
		}
		userID, ok := userIDValue.(uuid.UUID)
		if !ok {
			c.Next()
			return
		}

		existing, err := config.Repo.GetByKey(c.Request.Context(), idempotencyKey, userID)
		if err != nil {
			logger.Warn("idempotency lookup failed", zap.String("key", idempotencyKey), zap.Error(err))
			c.Next()
			return
		}

		endpoint := c.Request.Method + " " + c.FullPath()
		if existing != nil && !existing.IsExpired(time.Now()) {
			if existing.Endpoint != endpoint {
				logger.Info("idempotency key reused on another endpoint",
					zap.String("key", idempotencyKey),
					zap.String("stored", existing.Endpoint),
					zap.String("endpoint", endpoint),
				)
				response.ErrorWithCode(c, http.StatusUnprocessableEntity, "Idempotency-Key was already used for a different request")
				c.Abort()
				return
			}
			c.Header(IdempotencyReplayedHeader, "true")
			c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
			c.Abort()
			return
		}

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 || existing != nil {
			return
		}

		ikey := &entity.IdempotencyKey{
			Key:          idempotencyKey,
			UserID:       userID,
			Endpoint:     endpoint,
			ResponseCode: status,
			ResponseBody: blw.body.String(),
			ExpiresAt:    time.Now().Add(ttl),
		}

		if err := config.Repo.Create(c.Request.Context(), ikey); err != nil {
			logger.Warn("failed to store idempotency key", zap.String("key", idempotencyKey), zap.Error(err))
		}
	}
}
