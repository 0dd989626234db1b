package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"
)

// ConcurrencyLimit caps in-flight requests to protect the database
// downstream.
func ConcurrencyLimit(max int64) gin.HandlerFunc {
	sem := semaphore.NewWeighted(max)
	return func(c *gin.Context) {
		if err := sem.Acquire(c, 1); err != nil {
			abort(c, http.StatusServiceUnavailable, "server busy")
			return
		}
		defer sem.Release(1)
		c.Next()
	}
}
