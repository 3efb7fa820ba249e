package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sahanchanuka24/Academix-V2.0/internal/errors"
	"github.com/sahanchanuka24/Academix-V2.0/internal/model"
	"github.com/sahanchanuka24/Academix-V2.0/internal/repository/interfaces"
	"github.com/sahanchanuka24/Academix-V2.0/internal/util"
)

// UserService 处理身份凭证与社交关系图的业务逻辑
type UserService struct {
	userRepo      interfaces.UserRepository
	notifications *NotificationService
}

// NewUserService 创建一个新的 UserService 实例
func NewUserService(userRepo interfaces.UserRepository, notifications *NotificationService) *UserService {
	return &UserService{
		userRepo:      userRepo,
		notifications: notifications,
	}
}

// RegisterInput 注册所需的字段
type RegisterInput struct {
	Fullname string
	Email    string
	Password string
	Phone    string
	Skills   []string
}

// UpdateUserInput 资料更新的可选字段，零值字段不修改
// Phone 和 Skills 用指针区分"未提供"与"清空"
type UpdateUserInput struct {
	Fullname string
	Email    string
	Password string
	Phone    *string
	Skills   *[]string
}

// Register 注册新用户，邮箱重复时返回冲突错误
func (s *UserService) Register(input RegisterInput) (*model.User, error) {
	existing, err := s.userRepo.FindByEmail(input.Email)
	if err != nil {
		return nil, errors.Wrap(errors.ErrStorage, "Failed to check email", err)
	}
	if existing != nil {
		return nil, errors.New(errors.ErrUserExists, "Email already registered")
	}

	// 生成密码哈希
	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInternal, "Failed to hash password", err)
	}

	skills := input.Skills
	if skills == nil {
		skills = []string{}
	}

	user := &model.User{
		ID:        uuid.NewString(),
		Fullname:  input.Fullname,
		Email:     input.Email,
		Password:  string(hashed),
		Phone:     input.Phone,
		Skills:    skills,
		Following: []string{},
		Followers: []string{},
		CreatedAt: time.Now(),
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, errors.Wrap(errors.ErrStorage, "Failed to create user", err)
	}

	util.Logger.Info("用户注册成功", zap.String("user_id", user.ID))
	return user.Sanitized(), nil
}

// Login 验证凭证，成功时返回最小身份信息
// 未知邮箱与密码错误返回同一个错误，不暴露区别
func (s *UserService) Login(email, password string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, errors.Wrap(errors.ErrStorage, "Failed to look up user", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrInvalidCredentials, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, errors.New(errors.ErrInvalidCredentials, "Invalid credentials")
	}

	util.Logger.Info("用户登录成功", zap.String("user_id", user.ID))
	return user, nil
}

// GetUserByID 通过ID获取用户信息
func (s *UserService) GetUserByID(id string) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrStorage, "Failed to look up user", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, "User not found")
	}
	return user, nil
}

// UpdateUser 更新用户资料，只覆盖提供的字段，密码重新哈希
func (s *UserService) UpdateUser(id string, input UpdateUserInput) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrStorage, "Failed to look up user", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, "User not found")
	}

	if input.Fullname != "" {
		user.Fullname = input.Fullname
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Skills != nil {
		user.Skills = *input.Skills
	}
	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInternal, "Failed to hash password", err)
		}
		user.Password = string(hashed)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, errors.Wrap(errors.ErrStorage, "Failed to update user", err)
	}
	return user.Sanitized(), nil
}

// Follow 建立关注关系并通知被关注者
func (s *UserService) Follow(actorID, targetID string) ([]string, error) {
	if targetID == "" || actorID == targetID {
		return nil, errors.New(errors.ErrBadRequest, "Invalid follow request")
	}

	actor, err := s.userRepo.FindByID(actorID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrStorage, "Failed to look up user", err)
	}
	if actor == nil {
		return nil, errors.New(errors.ErrUserNotFound, "User not found")
	}

	following, err := s.userRepo.AddFollow(actorID, targetID)
	if err != nil {
		if err == interfaces.ErrNotFound {
			return nil, errors.New(errors.ErrUserNotFound, "User not found")
		}
		return nil, errors.Wrap(errors.ErrStorage, "Failed to follow user", err)
	}

	s.notifications.Push(targetID, fmt.Sprintf("%s started following you.", actor.Fullname))
	return following, nil
}

// Unfollow 对称移除关注关系，未关注时为静默 no-op，不产生通知
func (s *UserService) Unfollow(actorID, targetID string) ([]string, error) {
	if targetID == "" {
		return nil, errors.New(errors.ErrBadRequest, "Invalid unfollow request")
	}

	following, err := s.userRepo.RemoveFollow(actorID, targetID)
	if err != nil {
		if err == interfaces.ErrNotFound {
			return nil, errors.New(errors.ErrUserNotFound, "User not found")
		}
		return nil, errors.Wrap(errors.ErrStorage, "Failed to unfollow user", err)
	}
	return following, nil
}

// Following 返回用户的关注列表
func (s *UserService) Following(id string) ([]string, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	if user.Following == nil {
		return []string{}, nil
	}
	return user.Following, nil
}
