package notification

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sahanchanuka24/Academix-V2.0/internal/errors"
	"github.com/sahanchanuka24/Academix-V2.0/internal/service"
)

// NotificationHandler 提供轮询式的通知读取接口
type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List 按创建时间倒序返回收件人的全部通知，:id 是收件人ID
func (h *NotificationHandler) List(c *gin.Context) {
	notifications, err := h.notificationService.ListForUser(c.Param("id"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// MarkAsRead 将单条通知标记为已读
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	notification, err := h.notificationService.MarkRead(c.Param("id"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, notification)
}

// MarkAllAsRead 批量已读，收件人没有通知时同样成功
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	if err := h.notificationService.MarkAllRead(c.Param("userId")); err != nil {
		errors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Delete 删除单条通知
func (h *NotificationHandler) Delete(c *gin.Context) {
	deleted, err := h.notificationService.Delete(c.Param("id"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, deleted)
}
