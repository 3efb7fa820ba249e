package interfaces

import "github.com/sahanchanuka24/Academix-V2.0/internal/model"

// NotificationRepository 定义了通知的存储操作接口
type NotificationRepository interface {
	Create(notification *model.Notification) error
	// FindByRecipient 按创建时间倒序返回收件人的全部通知
	FindByRecipient(userID string) ([]*model.Notification, error)
	MarkRead(id string) (*model.Notification, error)
	MarkAllRead(userID string) error
	Delete(id string) (*model.Notification, error)
}
