package util

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// 学习进度的日期字段接受这两种格式
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseDate 解析日期字符串
func ParseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ValidateDateString 验证字符串是否为合法日期
func ValidateDateString(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, ok = ParseDate(value)
	return ok
}
