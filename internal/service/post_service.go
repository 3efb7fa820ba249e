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

// PostService 处理帖子、点赞与评论的业务逻辑
type PostService struct {
	postRepo      interfaces.PostRepository
	userRepo      interfaces.UserRepository
	notifications *NotificationService
}

// NewPostService 创建一个新的 PostService 实例
func NewPostService(postRepo interfaces.PostRepository, userRepo interfaces.UserRepository, notifications *NotificationService) *PostService {
	return &PostService{
		postRepo:      postRepo,
		userRepo:      userRepo,
		notifications: notifications,
	}
}

func (s *PostService) requireUser(id string) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrStorage, "Failed to look up user", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, "User not found")
	}
	return user, nil
}

func (s *PostService) requirePost(id string) (*model.Post, error) {
	post, err := s.postRepo.FindByID(id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrStorage, "Failed to look up post", err)
	}
	if post == nil {
		return nil, errors.New(errors.ErrPostNotFound, "Post not found")
	}
	return post, nil
}

// CreatePost 创建帖子，媒体路径由调用方上传后传入
func (s *PostService) CreatePost(userID, title, description string, media []string) (*model.Post, error) {
	if _, err := s.requireUser(userID); err != nil {
		return nil, err
	}

	if media == nil {
		media = []string{}
	}
	now := time.Now()
	post := &model.Post{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Media:       media,
		Likes:       map[string]bool{},
		Comments:    []model.Comment{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, errors.Wrap(errors.ErrStorage, "Failed to create post", err)
	}

	util.Logger.Info("帖子创建成功", zap.String("post_id", post.ID))
	return post, nil
}

// GetPost 获取单个帖子
func (s *PostService) GetPost(id string) (*model.Post, error) {
	return s.requirePost(id)
}

// ListPosts 按创建时间倒序返回所有帖子
func (s *PostService) ListPosts() ([]*model.Post, error) {
	posts, err := s.postRepo.FindAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrStorage, "Failed to list posts", err)
	}
	return posts, nil
}

// UpdatePost 覆盖提供的标题/描述并追加媒体，已有媒体永不原位替换
func (s *PostService) UpdatePost(id, title, description string, newMedia []string) (*model.Post, error) {
	post, err := s.requirePost(id)
	if err != nil {
		return nil, err
	}

	if title != "" {
		post.Title = title
	}
	if description != "" {
		post.Description = description
	}
	if len(newMedia) > 0 {
		post.Media = append(post.Media, newMedia...)
	}
	post.UpdatedAt = time.Now()

	if err := s.postRepo.Update(post); err != nil {
		return nil, errors.Wrap(errors.ErrStorage, "Failed to update post", err)
	}
	return post, nil
}

// DeletePost 删除帖子并返回被删记录，媒体文件由调用方释放
func (s *PostService) DeletePost(id string) (*model.Post, error) {
	deleted, err := s.postRepo.Delete(id)
	if err != nil {
		if err == interfaces.ErrNotFound {
			return nil, errors.New(errors.ErrPostNotFound, "Post not found")
		}
		return nil, errors.Wrap(errors.ErrStorage, "Failed to delete post", err)
	}
	return deleted, nil
}

// RemoveMedia 把单个媒体引用从帖子中过滤掉
func (s *PostService) RemoveMedia(postID, mediaURL string) (*model.Post, error) {
	if mediaURL == "" {
		return nil, errors.New(errors.ErrBadRequest, "mediaUrl is required")
	}

	post, err := s.requirePost(postID)
	if err != nil {
		return nil, err
	}

	filtered := post.Media[:0]
	for _, url := range post.Media {
		if url != mediaURL {
			filtered = append(filtered, url)
		}
	}
	post.Media = filtered
	post.UpdatedAt = time.Now()

	if err := s.postRepo.Update(post); err != nil {
		return nil, errors.Wrap(errors.ErrStorage, "Failed to update post", err)
	}
	return post, nil
}

// ToggleLike 翻转用户在点赞集合中的成员关系
// 取消点赞时删除键而不是写入 false；转为已赞且非本人帖子时通知作者
func (s *PostService) ToggleLike(postID, userID string) (map[string]bool, error) {
	actor, err := s.requireUser(userID)
	if err != nil {
		return nil, err
	}

	post, err := s.requirePost(postID)
	if err != nil {
		return nil, err
	}

	if post.Likes[userID] {
		delete(post.Likes, userID)
	} else {
		post.Likes[userID] = true
	}

	if err := s.postRepo.Update(post); err != nil {
		return nil, errors.Wrap(errors.ErrStorage, "Failed to update post", err)
	}

	if post.Likes[userID] && post.UserID != userID {
		s.notifications.Push(post.UserID, fmt.Sprintf("%s liked your post %q.", actor.Fullname, post.Title))
	}
	return post.Likes, nil
}

// AddComment 追加评论，快照评论者当前姓名，并通知帖子作者（本人除外）
func (s *PostService) AddComment(postID, userID, content string) ([]model.Comment, error) {
	if content == "" {
		return nil, errors.New(errors.ErrBadRequest, "userID and content are required")
	}

	user, err := s.requireUser(userID)
	if err != nil {
		return nil, err
	}

	post, err := s.requirePost(postID)
	if err != nil {
		return nil, err
	}

	comment := model.Comment{
		ID:           uuid.NewString(),
		UserID:       userID,
		UserFullName: user.Fullname,
		Content:      content,
		CreatedAt:    time.Now(),
	}
	post.Comments = append(post.Comments, comment)
	post.UpdatedAt = time.Now()

	if err := s.postRepo.Update(post); err != nil {
		return nil, errors.Wrap(errors.ErrStorage, "Failed to update post", err)
	}

	if post.UserID != userID {
		s.notifications.Push(post.UserID, fmt.Sprintf("%s commented on your post %q.", user.Fullname, post.Title))
	}
	return post.Comments, nil
}

// EditComment 只有评论作者可以编辑，成功时给评论打上 updatedAt
func (s *PostService) EditComment(postID, commentID, userID, content string) ([]model.Comment, error) {
	if content == "" {
		return nil, errors.New(errors.ErrBadRequest, "userID and content are required")
	}

	post, err := s.requirePost(postID)
	if err != nil {
		return nil, err
	}

	for i := range post.Comments {
		if post.Comments[i].ID != commentID {
			continue
		}
		if post.Comments[i].UserID != userID {
			return nil, errors.New(errors.ErrForbidden, "Not authorized to edit this comment")
		}
		now := time.Now()
		post.Comments[i].Content = content
		post.Comments[i].UpdatedAt = &now

		if err := s.postRepo.Update(post); err != nil {
			return nil, errors.Wrap(errors.ErrStorage, "Failed to update post", err)
		}
		return post.Comments, nil
	}
	return nil, errors.New(errors.ErrCommentNotFound, "Comment not found")
}

// DeleteComment 只有评论作者可以删除
func (s *PostService) DeleteComment(postID, commentID, userID string) ([]model.Comment, error) {
	post, err := s.requirePost(postID)
	if err != nil {
		return nil, err
	}

	for i := range post.Comments {
		if post.Comments[i].ID != commentID {
			continue
		}
		if post.Comments[i].UserID != userID {
			return nil, errors.New(errors.ErrForbidden, "Not authorized to delete this comment")
		}
		post.Comments = append(post.Comments[:i], post.Comments[i+1:]...)

		if err := s.postRepo.Update(post); err != nil {
			return nil, errors.Wrap(errors.ErrStorage, "Failed to update post", err)
		}
		return post.Comments, nil
	}
	return nil, errors.New(errors.ErrCommentNotFound, "Comment not found")
}
