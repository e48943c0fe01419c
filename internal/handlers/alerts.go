package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"crm-backend/internal/alerts"
)

// GetUnreadAlerts returns the caller's unread alerts, newest first. The
// alert feed is polled by the client on a fixed interval; there is no push
// channel, so freshness is "as of last poll".
func GetUnreadAlerts(notifier *alerts.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := ownEmailParam(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		unread, err := notifier.ListUnread(ctx, email)
		if err != nil {
			log.Println("[ALERT] [ERROR] alert list failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, unread)
	}
}

// MarkAlertRead flips one alert's read flag. The call is idempotent: a
// second mark reports zero modified documents and still succeeds.
func MarkAlertRead(notifier *alerts.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := notifier.MarkRead(ctx, id)
		if err != nil {
			log.Println("[ALERT] [ERROR] mark read failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"matchedCount": res.MatchedCount, "modifiedCount": res.ModifiedCount})
	}
}
