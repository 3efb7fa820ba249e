package interfaces

import "github.com/sahanchanuka24/Academix-V2.0/internal/model"

// PostRepository 定义了帖子相关的存储操作接口
type PostRepository interface {
	Create(post *model.Post) error
	FindByID(id string) (*model.Post, error)
	// FindAll 按创建时间倒序返回所有帖子
	FindAll() ([]*model.Post, error)
	Update(post *model.Post) error
	// Delete 返回被删除的帖子，供调用方释放媒体文件
	Delete(id string) (*model.Post, error)
}
