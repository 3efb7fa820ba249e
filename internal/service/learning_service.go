package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sahanchanuka24/Academix-V2.0/internal/errors"
	"github.com/sahanchanuka24/Academix-V2.0/internal/model"
	"github.com/sahanchanuka24/Academix-V2.0/internal/repository/interfaces"
	"github.com/sahanchanuka24/Academix-V2.0/internal/util"
)

// LearningService 处理学习进度与学习资源的业务逻辑
type LearningService struct {
	progressRepo  interfaces.LearningProgressRepository
	resourceRepo  interfaces.LearningResourceRepository
	userRepo      interfaces.UserRepository
	notifications *NotificationService
}

// NewLearningService 创建一个新的 LearningService 实例
func NewLearningService(
	progressRepo interfaces.LearningProgressRepository,
	resourceRepo interfaces.LearningResourceRepository,
	userRepo interfaces.UserRepository,
	notifications *NotificationService,
) *LearningService {
	return &LearningService{
		progressRepo:  progressRepo,
		resourceRepo:  resourceRepo,
		userRepo:      userRepo,
		notifications: notifications,
	}
}

// CreateProgressInput 创建学习进度所需的字段
type CreateProgressInput struct {
	SkillTitle    string
	Description   string
	Field         string
	StartDate     string
	EndDate       string
	Level         string
	PostOwnerID   string
	PostOwnerName string
}

// UpdateProgressInput 更新学习进度的可选字段，空串不修改
type UpdateProgressInput struct {
	SkillTitle  string
	Description string
	Field       string
	StartDate   string
	EndDate     string
	Level       string
}

func (s *LearningService) requireUser(id string) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrStorage, "Failed to look up user", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, "User not found")
	}
	return user, nil
}

// 结束日期不得早于开始日期；无法解析的日期在绑定层已经被拒绝
func validateDateRange(startDate, endDate string) error {
	start, okStart := util.ParseDate(startDate)
	end, okEnd := util.ParseDate(endDate)
	if okStart && okEnd && end.Before(start) {
		return errors.New(errors.ErrValidation, "endDate cannot precede startDate")
	}
	return nil
}

// CreateProgress 创建学习进度记录，postOwnerName 未提供时从所有者快照
func (s *LearningService) CreateProgress(input CreateProgressInput) (*model.LearningProgress, error) {
	owner, err := s.requireUser(input.PostOwnerID)
	if err != nil {
		return nil, err
	}

	if err := validateDateRange(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	ownerName := input.PostOwnerName
	if ownerName == "" {
		ownerName = owner.Fullname
	}

	now := time.Now()
	progress := &model.LearningProgress{
		ID:            uuid.NewString(),
		SkillTitle:    input.SkillTitle,
		Description:   input.Description,
		Field:         input.Field,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		Level:         input.Level,
		PostOwnerID:   input.PostOwnerID,
		PostOwnerName: ownerName,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.progressRepo.Create(progress); err != nil {
		return nil, errors.Wrap(errors.ErrStorage, "Failed to create learning progress", err)
	}
	return progress, nil
}

// GetProgress 获取单条学习进度
func (s *LearningService) GetProgress(id string) (*model.LearningProgress, error) {
	progress, err := s.progressRepo.FindByID(id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrStorage, "Failed to look up learning progress", err)
	}
	if progress == nil {
		return nil, errors.New(errors.ErrProgressNotFound, "Learning progress not found")
	}
	return progress, nil
}

// ListProgress 按创建时间倒序返回所有学习进度
func (s *LearningService) ListProgress() ([]*model.LearningProgress, error) {
	list, err := s.progressRepo.FindAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrStorage, "Failed to list learning progress", err)
	}
	return list, nil
}

// UpdateProgress 合并提供的字段并更新 updatedAt
func (s *LearningService) UpdateProgress(id string, input UpdateProgressInput) (*model.LearningProgress, error) {
	progress, err := s.GetProgress(id)
	if err != nil {
		return nil, err
	}

	if input.SkillTitle != "" {
		progress.SkillTitle = input.SkillTitle
	}
	if input.Description != "" {
		progress.Description = input.Description
	}
	if input.Field != "" {
		progress.Field = input.Field
	}
	if input.StartDate != "" {
		progress.StartDate = input.StartDate
	}
	if input.EndDate != "" {
		progress.EndDate = input.EndDate
	}
	if input.Level != "" {
		progress.Level = input.Level
	}

	if err := validateDateRange(progress.StartDate, progress.EndDate); err != nil {
		return nil, err
	}
	progress.UpdatedAt = time.Now()

	if err := s.progressRepo.Update(progress); err != nil {
		return nil, errors.Wrap(errors.ErrStorage, "Failed to update learning progress", err)
	}
	return progress, nil
}

// DeleteProgress 删除并返回被删记录
func (s *LearningService) DeleteProgress(id string) (*model.LearningProgress, error) {
	deleted, err := s.progressRepo.Delete(id)
	if err != nil {
		if err == interfaces.ErrNotFound {
			return nil, errors.New(errors.ErrProgressNotFound, "Learning progress not found")
		}
		return nil, errors.Wrap(errors.ErrStorage, "Failed to delete learning progress", err)
	}
	return deleted, nil
}

// CreateResourceInput 创建学习资源所需的字段
type CreateResourceInput struct {
	Title       string
	Description string
	ContentURL  string
	Tags        []string
	PostOwnerID string
}

// UpdateResourceInput 更新学习资源的可选字段
type UpdateResourceInput struct {
	Title       string
	Description string
	ContentURL  string
	Tags        *[]string
}

// CreateResource 创建学习资源，所有者姓名在创建时快照
func (s *LearningService) CreateResource(input CreateResourceInput) (*model.LearningResource, error) {
	owner, err := s.requireUser(input.PostOwnerID)
	if err != nil {
		return nil, err
	}

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now()
	resource := &model.LearningResource{
		ID:            uuid.NewString(),
		Title:         input.Title,
		Description:   input.Description,
		ContentURL:    input.ContentURL,
		Tags:          tags,
		PostOwnerID:   input.PostOwnerID,
		PostOwnerName: owner.Fullname,
		Likes:         map[string]bool{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.resourceRepo.Create(resource); err != nil {
		return nil, errors.Wrap(errors.ErrStorage, "Failed to create learning resource", err)
	}

	util.Logger.Info("学习资源创建成功", zap.String("resource_id", resource.ID))
	return resource, nil
}

// GetResource 获取单条学习资源
func (s *LearningService) GetResource(id string) (*model.LearningResource, error) {
	resource, err := s.resourceRepo.FindByID(id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrStorage, "Failed to look up learning resource", err)
	}
	if resource == nil {
		return nil, errors.New(errors.ErrResourceEntryNotFound, "Learning resource not found")
	}
	return resource, nil
}

// ListResources 按创建时间倒序返回所有学习资源
func (s *LearningService) ListResources() ([]*model.LearningResource, error) {
	list, err := s.resourceRepo.FindAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrStorage, "Failed to list learning resources", err)
	}
	return list, nil
}

// UpdateResource 合并提供的字段并更新 updatedAt
func (s *LearningService) UpdateResource(id string, input UpdateResourceInput) (*model.LearningResource, error) {
	resource, err := s.GetResource(id)
	if err != nil {
		return nil, err
	}

	if input.Title != "" {
		resource.Title = input.Title
	}
	if input.Description != "" {
		resource.Description = input.Description
	}
	if input.ContentURL != "" {
		resource.ContentURL = input.ContentURL
	}
	if input.Tags != nil {
		resource.Tags = *input.Tags
	}
	resource.UpdatedAt = time.Now()

	if err := s.resourceRepo.Update(resource); err != nil {
		return nil, errors.Wrap(errors.ErrStorage, "Failed to update learning resource", err)
	}
	return resource, nil
}

// DeleteResource 删除并返回被删记录
func (s *LearningService) DeleteResource(id string) (*model.LearningResource, error) {
	deleted, err := s.resourceRepo.Delete(id)
	if err != nil {
		if err == interfaces.ErrNotFound {
			return nil, errors.New(errors.ErrResourceEntryNotFound, "Learning resource not found")
		}
		return nil, errors.Wrap(errors.ErrStorage, "Failed to delete learning resource", err)
	}
	return deleted, nil
}

// ToggleResourceLike 与帖子点赞共享同一算法
func (s *LearningService) ToggleResourceLike(resourceID, userID string) (map[string]bool, error) {
	actor, err := s.requireUser(userID)
	if err != nil {
		return nil, err
	}

	resource, err := s.GetResource(resourceID)
	if err != nil {
		return nil, err
	}

	if resource.Likes[userID] {
		delete(resource.Likes, userID)
	} else {
		resource.Likes[userID] = true
	}

	if err := s.resourceRepo.Update(resource); err != nil {
		return nil, errors.Wrap(errors.ErrStorage, "Failed to update learning resource", err)
	}

	if resource.Likes[userID] && resource.PostOwnerID != userID {
		s.notifications.Push(resource.PostOwnerID, fmt.Sprintf("%s liked your learning post %q.", actor.Fullname, resource.Title))
	}
	return resource.Likes, nil
}
