// Package jsonstore 将五张实体表保存在内存中，
// 每次变更后把整个文档覆盖写入单个 JSON 数据文件。
package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sahanchanuka24/Academix-V2.0/internal/model"
)

// document 是数据文件的顶层结构，五个数组对应五张实体表
type document struct {
	Users             []*model.User             `json:"users"`
	Posts             []*model.Post             `json:"posts"`
	LearningProgress  []*model.LearningProgress `json:"learningProgress"`
	LearningResources []*model.LearningResource `json:"learningResources"`
	Notifications     []*model.Notification     `json:"notifications"`
}

// Store 持有内存中的文档和备份文件路径
// 单个 RWMutex 串行化所有变更；每个仓库方法自身是一个一致的读改写步骤
type Store struct {
	path string
	mu   sync.RWMutex
	doc  document
}

// Open 加载数据文件；文件不存在时从空文档开始
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("读取数据文件失败: %w", err)
		}
		s.initEmpty()
		return s, nil
	}

	if err := json.Unmarshal(data, &s.doc); err != nil {
		return nil, fmt.Errorf("解析数据文件失败: %w", err)
	}
	s.initEmpty()
	return s, nil
}

func (s *Store) initEmpty() {
	if s.doc.Users == nil {
		s.doc.Users = []*model.User{}
	}
	if s.doc.Posts == nil {
		s.doc.Posts = []*model.Post{}
	}
	if s.doc.LearningProgress == nil {
		s.doc.LearningProgress = []*model.LearningProgress{}
	}
	if s.doc.LearningResources == nil {
		s.doc.LearningResources = []*model.LearningResource{}
	}
	if s.doc.Notifications == nil {
		s.doc.Notifications = []*model.Notification{}
	}
}

// persistLocked 序列化整个文档并原子替换备份文件
// 调用方必须持有写锁；响应在写盘完成后才返回
func (s *Store) persistLocked() error {
	data, err := json.MarshalIndent(&s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化数据失败: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("创建数据目录失败: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("写入数据文件失败: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("替换数据文件失败: %w", err)
	}
	return nil
}
