package interfaces

import (
	"errors"

	"github.com/sahanchanuka24/Academix-V2.0/internal/model"
)

// ErrNotFound 表示目标记录不存在
var ErrNotFound = errors.New("record not found")

// UserRepository 接口定义了用户仓库应该实现的方法
// Find 方法在记录不存在时返回 (nil, nil)
type UserRepository interface {
	Create(user *model.User) error
	FindByID(id string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	Update(user *model.User) error
	// AddFollow 同时维护双方的 following/followers 列表（集合语义）
	AddFollow(followerID, followedID string) ([]string, error)
	// RemoveFollow 对称移除，未关注时为静默 no-op
	RemoveFollow(followerID, followedID string) ([]string, error)
}
