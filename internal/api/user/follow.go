package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sahanchanuka24/Academix-V2.0/internal/errors"
	"github.com/sahanchanuka24/Academix-V2.0/internal/util"
)

// FollowRequest 关注请求体
type FollowRequest struct {
	FollowUserID string `json:"followUserID"`
}

// UnfollowRequest 取消关注请求体
type UnfollowRequest struct {
	UnfollowUserID string `json:"unfollowUserID"`
}

// Follow 建立关注关系并返回更新后的关注列表
func (h *ProfileHandler) Follow(c *gin.Context) {
	var req FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid follow request"})
		return
	}

	following, err := h.userService.Follow(c.Param("id"), req.FollowUserID)
	if err != nil {
		util.Logger.Error("关注用户失败", zap.Error(err), zap.String("user_id", c.Param("id")))
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": following})
}

// Unfollow 取消关注，未关注时为静默 no-op
func (h *ProfileHandler) Unfollow(c *gin.Context) {
	var req UnfollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid unfollow request"})
		return
	}

	following, err := h.userService.Unfollow(c.Param("id"), req.UnfollowUserID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": following})
}

// FollowedUsers 返回用户的关注列表
func (h *ProfileHandler) FollowedUsers(c *gin.Context) {
	following, err := h.userService.Following(c.Param("id"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, following)
}
