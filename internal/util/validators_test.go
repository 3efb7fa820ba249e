package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParseDate 测试两种支持的日期格式
func TestParseDate(t *testing.T) {
	parsed, ok := ParseDate("2024-01-15")
	assert.True(t, ok)
	assert.Equal(t, 2024, parsed.Year())

	parsed, ok = ParseDate("2024-01-15T10:30:00Z")
	assert.True(t, ok)
	assert.Equal(t, 15, parsed.Day())

	_, ok = ParseDate("15/01/2024")
	assert.False(t, ok)

	_, ok = ParseDate("")
	assert.False(t, ok)
}

// TestGenerateUniqueFilename 测试文件名保留扩展名且两次生成不同
func TestGenerateUniqueFilename(t *testing.T) {
	first := GenerateUniqueFilename("photo.jpg")
	second := GenerateUniqueFilename("photo.jpg")

	assert.True(t, strings.HasSuffix(first, ".jpg"))
	assert.NotEqual(t, first, second)
}
