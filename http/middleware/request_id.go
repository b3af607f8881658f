package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lam0glia/video-gateway/domain"
	"github.com/rs/zerolog"
)

const requestIDHeader = "X-Request-Id"
const requestIDContextKey = "x-request-id"

// NewRequestID tags every request with an id, taken from the inbound
// X-Request-Id header or generated, and puts a logger carrying it on the
// request context.
func NewRequestID(uid domain.UIDGenerator, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			n, err := uid.NewUID(c.Request.Context())
			if err != nil {
				logger.Warn().Err(err).Msg("generate request id")
			} else {
				id = strconv.FormatUint(n, 10)
			}
		}

		reqLogger := logger.With().Str("request_id", id).Logger()

		c.Set(requestIDContextKey, id)
		c.Header(requestIDHeader, id)
		c.Request = c.Request.WithContext(reqLogger.WithContext(c.Request.Context()))

		c.Next()
	}
}

func NewAccessLog(c *gin.Context) {
	start := time.Now()

	c.Next()

	zerolog.Ctx(c.Request.Context()).Info().
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Int("status", c.Writer.Status()).
		Int("bytes", c.Writer.Size()).
		Dur("duration", time.Since(start)).
		Msg("request")
}

func GetRequestIDFromContext(c *gin.Context) string {
	return c.GetString(requestIDContextKey)
}
