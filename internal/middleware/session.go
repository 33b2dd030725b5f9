package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/tilmock/cefr-backend/internal/service"
)

// HeaderDeviceFingerprint identifies the calling device across requests.
const HeaderDeviceFingerprint = "X-Device-Fingerprint"

// TouchDeviceSession refreshes last_active for the calling device. Best
// effort: requests without the fingerprint header, or from an evicted
// device, pass through untouched. Must run after RequireAuth.
func TouchDeviceSession(sessions *service.DeviceSessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		fingerprint := c.GetHeader(HeaderDeviceFingerprint)
		if claims != nil && fingerprint != "" {
			sessions.Touch(c.Request.Context(), claims.UserID, fingerprint)
		}
		c.Next()
	}
}
