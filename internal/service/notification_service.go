package service

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sahanchanuka24/Academix-V2.0/internal/errors"
	"github.com/sahanchanuka24/Academix-V2.0/internal/model"
	"github.com/sahanchanuka24/Academix-V2.0/internal/repository/interfaces"
	"github.com/sahanchanuka24/Academix-V2.0/internal/util"
)

// NotificationService 处理通知的产生与消费
type NotificationService struct {
	notificationRepo interfaces.NotificationRepository
}

// NewNotificationService 创建一个新的 NotificationService 实例
func NewNotificationService(notificationRepo interfaces.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// Push 给收件人追加一条未读通知
// 纯副作用：任何参数为空时为 no-op，失败只记日志，绝不影响触发它的操作
func (s *NotificationService) Push(userID, message string) {
	if userID == "" || message == "" {
		return
	}

	notification := &model.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Message:   message,
		Read:      false,
		CreatedAt: time.Now(),
	}

	if err := s.notificationRepo.Create(notification); err != nil {
		util.Logger.Error("写入通知失败",
			zap.Error(err),
			zap.String("user_id", userID))
	}
}

// ListForUser 按创建时间倒序返回收件人的全部通知
func (s *NotificationService) ListForUser(userID string) ([]*model.Notification, error) {
	return s.notificationRepo.FindByRecipient(userID)
}

// MarkRead 将单条通知标记为已读，状态不可逆
func (s *NotificationService) MarkRead(id string) (*model.Notification, error) {
	notification, err := s.notificationRepo.MarkRead(id)
	if err != nil {
		if err == interfaces.ErrNotFound {
			return nil, errors.New(errors.ErrNotificationNotFound, "Notification not found")
		}
		return nil, errors.Wrap(errors.ErrStorage, "Failed to update notification", err)
	}
	return notification, nil
}

// MarkAllRead 批量已读，收件人没有通知时同样成功
func (s *NotificationService) MarkAllRead(userID string) error {
	if err := s.notificationRepo.MarkAllRead(userID); err != nil {
		return errors.Wrap(errors.ErrStorage, "Failed to update notifications", err)
	}
	return nil
}

// Delete 删除单条通知
func (s *NotificationService) Delete(id string) (*model.Notification, error) {
	notification, err := s.notificationRepo.Delete(id)
	if err != nil {
		if err == interfaces.ErrNotFound {
			return nil, errors.New(errors.ErrNotificationNotFound, "Notification not found")
		}
		return nil, errors.Wrap(errors.ErrStorage, "Failed to delete notification", err)
	}
	return notification, nil
}
