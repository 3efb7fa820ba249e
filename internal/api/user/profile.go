package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sahanchanuka24/Academix-V2.0/internal/errors"
	"github.com/sahanchanuka24/Academix-V2.0/internal/model"
	"github.com/sahanchanuka24/Academix-V2.0/internal/service"
	"github.com/sahanchanuka24/Academix-V2.0/internal/util"
)

// ProfileHandler 处理用户资料的读取与更新
type ProfileHandler struct {
	userService service.UserServiceInterface
}

func NewProfileHandler(userService service.UserServiceInterface) *ProfileHandler {
	return &ProfileHandler{userService: userService}
}

// UpdateProfileRequest 资料更新请求体，全部字段可选
type UpdateProfileRequest struct {
	Fullname string    `json:"fullname"`
	Email    string    `json:"email"`
	Password string    `json:"password"`
	Phone    *string   `json:"phone"`
	Skills   *[]string `json:"skills"`
}

// 旧客户端期望资料响应里带有空的 password 占位字段
func profileResponse(u *model.User) gin.H {
	return gin.H{
		"id":        u.ID,
		"fullname":  u.Fullname,
		"email":     u.Email,
		"password":  "",
		"phone":     u.Phone,
		"skills":    u.Skills,
		"following": u.Following,
		"followers": u.Followers,
		"createdAt": u.CreatedAt,
	}
}

// GetProfile 返回净化后的用户资料
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	user, err := h.userService.GetUserByID(c.Param("id"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, profileResponse(user))
}

// UpdateProfile 只覆盖提供的字段，密码重新哈希
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	user, err := h.userService.UpdateUser(c.Param("id"), service.UpdateUserInput{
		Fullname: req.Fullname,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Skills:   req.Skills,
	})
	if err != nil {
		util.Logger.Error("更新用户资料失败", zap.Error(err), zap.String("user_id", c.Param("id")))
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
