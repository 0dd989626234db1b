package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const KeyRequestID = "X-Request-ID"

// RequestID tags every request with a correlation id. An id supplied by the
// caller (a gateway or a retrying client) is kept so its logs and ours line
// up; otherwise a fresh one is minted. The id is echoed in the response
// header and bound to the context for the access log.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(KeyRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(KeyRequestID, rid)
		c.Header(KeyRequestID, rid)
		c.Next()
	}
}
