package interfaces

import "github.com/sahanchanuka24/Academix-V2.0/internal/model"

// LearningProgressRepository 定义了学习进度的存储操作接口
type LearningProgressRepository interface {
	Create(progress *model.LearningProgress) error
	FindByID(id string) (*model.LearningProgress, error)
	FindAll() ([]*model.LearningProgress, error)
	Update(progress *model.LearningProgress) error
	Delete(id string) (*model.LearningProgress, error)
}

// LearningResourceRepository 定义了学习资源的存储操作接口
type LearningResourceRepository interface {
	Create(resource *model.LearningResource) error
	FindByID(id string) (*model.LearningResource, error)
	FindAll() ([]*model.LearningResource, error)
	Update(resource *model.LearningResource) error
	Delete(id string) (*model.LearningResource, error)
}
