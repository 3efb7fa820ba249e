package jsonstore

import (
	"sort"

	"github.com/sahanchanuka24/Academix-V2.0/internal/model"
	"github.com/sahanchanuka24/Academix-V2.0/internal/repository/interfaces"
)

// NotificationRepository 是通知表的 JSON 文档实现
type NotificationRepository struct {
	store *Store
}

func NewNotificationRepository(store *Store) *NotificationRepository {
	return &NotificationRepository{store: store}
}

var _ interfaces.NotificationRepository = (*NotificationRepository)(nil)

func cloneNotification(n *model.Notification) *model.Notification {
	if n == nil {
		return nil
	}
	copied := *n
	return &copied
}

func (r *NotificationRepository) Create(notification *model.Notification) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.doc.Notifications = append(r.store.doc.Notifications, cloneNotification(notification))
	return r.store.persistLocked()
}

func (r *NotificationRepository) FindByRecipient(userID string) ([]*model.Notification, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	list := []*model.Notification{}
	for _, n := range r.store.doc.Notifications {
		if n.UserID == userID {
			list = append(list, cloneNotification(n))
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *NotificationRepository) MarkRead(id string) (*model.Notification, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, n := range r.store.doc.Notifications {
		if n.ID == id {
			n.Read = true
			if err := r.store.persistLocked(); err != nil {
				return nil, err
			}
			return cloneNotification(n), nil
		}
	}
	return nil, interfaces.ErrNotFound
}

// MarkAllRead 对收件人没有通知时同样成功
func (r *NotificationRepository) MarkAllRead(userID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, n := range r.store.doc.Notifications {
		if n.UserID == userID {
			n.Read = true
		}
	}
	return r.store.persistLocked()
}

func (r *NotificationRepository) Delete(id string) (*model.Notification, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, n := range r.store.doc.Notifications {
		if n.ID == id {
			deleted := n
			r.store.doc.Notifications = append(r.store.doc.Notifications[:i], r.store.doc.Notifications[i+1:]...)
			if err := r.store.persistLocked(); err != nil {
				return nil, err
			}
			return deleted, nil
		}
	}
	return nil, interfaces.ErrNotFound
}
