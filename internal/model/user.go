package model

import "time"

// User 结构体表示用户模型
// Password 保存 bcrypt 哈希，持久化到数据文件但绝不返回给客户端
type User struct {
	ID        string    `json:"id"`
	Fullname  string    `json:"fullname"`
	Email     string    `json:"email"`
	Password  string    `json:"password,omitempty"`
	Phone     string    `json:"phone"`
	Skills    []string  `json:"skills"`
	Following []string  `json:"following"`
	Followers []string  `json:"followers"`
	CreatedAt time.Time `json:"createdAt"`
}

// Sanitized 返回去除密码哈希的副本
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	copied := *u
	copied.Password = ""
	return &copied
}
