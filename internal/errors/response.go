package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse 定义错误响应结构
// 客户端只依赖 message 字段，状态码即错误分类
type ErrorResponse struct {
	Message string `json:"message"`
}

// 错误码与HTTP状态码映射
var errorStatusMap = map[ErrorCode]int{
	// 系统错误 (1000-1999)
	ErrInternal: http.StatusInternalServerError,
	ErrStorage:  http.StatusInternalServerError,

	// 认证错误 (2000-2999)
	ErrUnauthorized:       http.StatusUnauthorized,
	ErrForbidden:          http.StatusForbidden,
	ErrInvalidCredentials: http.StatusUnauthorized,

	// 请求错误 (3000-3999)
	ErrBadRequest:       http.StatusBadRequest,
	ErrValidation:       http.StatusBadRequest,
	ErrResourceNotFound: http.StatusNotFound,
	ErrResourceExists:   http.StatusConflict,

	// 业务错误 (4000-4999)
	ErrUserNotFound:          http.StatusNotFound,
	ErrUserExists:            http.StatusConflict,
	ErrPostNotFound:          http.StatusNotFound,
	ErrCommentNotFound:       http.StatusNotFound,
	ErrProgressNotFound:      http.StatusNotFound,
	ErrResourceEntryNotFound: http.StatusNotFound,
	ErrNotificationNotFound:  http.StatusNotFound,
}

// HandleError 统一处理错误响应
func HandleError(c *gin.Context, err error) {
	if appErr, ok := err.(*AppError); ok {
		status := errorStatusMap[appErr.Code]
		if status == 0 {
			status = http.StatusInternalServerError
		}

		c.Error(appErr)
		c.JSON(status, ErrorResponse{Message: appErr.Message})
		return
	}

	// 处理非 AppError 类型的错误
	c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Server error"})
}
