package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListNotifications returns the notification feed, newest first.
// GET /notifications
func (a *API) ListNotifications(c *gin.Context) {
	list := a.Notifications.All()
	c.JSON(http.StatusOK, gin.H{
		"notifications": list,
		"total":         len(list),
		"unreadCount":   a.Notifications.UnreadCount(),
	})
}

// MarkNotificationRead marks a single notification as read.
// POST /notifications/:id/read
func (a *API) MarkNotificationRead(c *gin.Context) {
	a.Notifications.MarkRead(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"unreadCount": a.Notifications.UnreadCount()})
}

// MarkAllNotificationsRead marks the whole feed as read.
// POST /notifications/read-all
func (a *API) MarkAllNotificationsRead(c *gin.Context) {
	a.Notifications.MarkAllRead(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"unreadCount": 0})
}

// RemoveNotification deletes one notification.
// DELETE /notifications/:id
func (a *API) RemoveNotification(c *gin.Context) {
	a.Notifications.Remove(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

// ClearNotifications empties the feed.
// DELETE /notifications
func (a *API) ClearNotifications(c *gin.Context) {
	a.Notifications.Clear(c.Request.Context())
	c.Status(http.StatusNoContent)
}
