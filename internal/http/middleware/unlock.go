package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/puzlabu/puzlabu-backend/internal/platform/logger"
	"github.com/puzlabu/puzlabu-backend/internal/services"
)

// UnlockDeviceKey is the gin context key holding the device id of a verified
// unlock token. Absent when the request carried no (valid) token.
const UnlockDeviceKey = "unlock_device_id"

type UnlockMiddleware struct {
	log        *logger.Logger
	activation services.ActivationService
}

func NewUnlockMiddleware(log *logger.Logger, activation services.ActivationService) *UnlockMiddleware {
	return &UnlockMiddleware{
		log:        log.With("middleware", "UnlockMiddleware"),
		activation: activation,
	}
}

// Attach verifies a bearer unlock token when present and stores the bound
// device id on the context. Requests without a token pass through untouched,
// so handlers can gate per-resource (locked catalog entries vs the demo).
func (um *UnlockMiddleware) Attach() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c)
		if token != "" {
			deviceID, err := um.activation.VerifyUnlockToken(token)
			if err != nil {
				um.log.Debug("Unlock token rejected", "error", err)
			} else {
				c.Set(UnlockDeviceKey, deviceID)
			}
		}
		c.Next()
	}
}

// RequireUnlock aborts with 401 unless Attach verified a token earlier in
// the chain.
func (um *UnlockMiddleware) RequireUnlock() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(UnlockDeviceKey); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "missing or invalid unlock token", "code": "locked"},
			})
			return
		}
		c.Next()
	}
}

func extractBearer(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
