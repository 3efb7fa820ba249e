package service

import "github.com/sahanchanuka24/Academix-V2.0/internal/model"

// UserServiceInterface 供处理器依赖，便于在测试中替换
type UserServiceInterface interface {
	Register(input RegisterInput) (*model.User, error)
	Login(email, password string) (*model.User, error)
	GetUserByID(id string) (*model.User, error)
	UpdateUser(id string, input UpdateUserInput) (*model.User, error)
	Follow(actorID, targetID string) ([]string, error)
	Unfollow(actorID, targetID string) ([]string, error)
	Following(id string) ([]string, error)
}

var _ UserServiceInterface = (*UserService)(nil)
