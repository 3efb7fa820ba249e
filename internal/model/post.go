package model

import "time"

// Post 用户帖子
// Likes 只保存 true 值：键存在即已点赞，取消点赞时删除键
type Post struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userID"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Media       []string        `json:"media"`
	Likes       map[string]bool `json:"likes"`
	Comments    []Comment       `json:"comments"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Comment 帖子评论
// UserFullName 是评论时刻的姓名快照，作者改名后不回溯更新
type Comment struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userID"`
	UserFullName string     `json:"userFullName"`
	Content      string     `json:"content"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}
