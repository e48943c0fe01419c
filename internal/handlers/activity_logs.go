package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"crm-backend/internal/activity"
)

// GetActivityLogs returns the audit trail, newest first; admin only.
// Optional query parameters narrow the result: action (exact), user (exact
// actor email) and q (free-text across action, actor and details).
func GetActivityLogs(recorder *activity.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		entries, err := recorder.List(ctx,
			strings.TrimSpace(c.Query("action")),
			strings.TrimSpace(c.Query("user")),
			strings.TrimSpace(c.Query("q")),
		)
		if err != nil {
			log.Println("[ACTIVITY] [ERROR] audit list failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, entries)
	}
}
