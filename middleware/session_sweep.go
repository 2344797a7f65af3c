package middleware

import (
	"github.com/gin-gonic/gin"

	"research-rag-platform/internal/logger"
	"research-rag-platform/internal/session"
)

// SessionSweepMiddleware evicts expired sessions before each API request is
// handled, so a request never observes a session past its TTL even between
// background sweeps.
func SessionSweepMiddleware(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		removed, err := store.Sweep(c.Request.Context())
		if err != nil {
			logger.Warn("inline session sweep failed", "error", err)
		} else if removed > 0 {
			logger.Info("swept expired sessions", "removed", removed)
		}
		c.Next()
	}
}
