package model

import "time"

// LearningProgress 学习进度记录
// PostOwnerName 是创建时刻的姓名快照
type LearningProgress struct {
	ID           string    `json:"id"`
	SkillTitle   string    `json:"skillTitle"`
	Description  string    `json:"description"`
	Field        string    `json:"field"`
	StartDate    string    `json:"startDate"`
	EndDate      string    `json:"endDate"`
	Level        string    `json:"level"`
	PostOwnerID  string    `json:"postOwnerID"`
	PostOwnerName string   `json:"postOwnerName"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// LearningResource 学习资源条目，点赞语义与 Post 相同
type LearningResource struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	ContentURL    string          `json:"contentURL"`
	Tags          []string        `json:"tags"`
	PostOwnerID   string          `json:"postOwnerID"`
	PostOwnerName string          `json:"postOwnerName"`
	Likes         map[string]bool `json:"likes"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
