package util

import (
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// GenerateUniqueFilename 生成唯一的文件名
func GenerateUniqueFilename(originalFilename string) string {
	ext := filepath.Ext(originalFilename)
	timestamp := strconv.FormatInt(time.Now().UnixNano(), 10)
	return timestamp + "-" + uuid.NewString()[:8] + ext
}
