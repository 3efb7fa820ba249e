package post

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sahanchanuka24/Academix-V2.0/internal/errors"
)

// CommentRequest 新建与编辑评论共用的请求体
type CommentRequest struct {
	UserID  string `json:"userID" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// AddComment 追加评论并返回帖子完整的评论列表
func (h *PostHandler) AddComment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "userID and content are required"})
		return
	}

	comments, err := h.postService.AddComment(c.Param("id"), req.UserID, req.Content)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// EditComment 只有作者可以编辑自己的评论
func (h *PostHandler) EditComment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "userID and content are required"})
		return
	}

	comments, err := h.postService.EditComment(c.Param("id"), c.Param("commentId"), req.UserID, req.Content)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// DeleteComment 只有作者可以删除自己的评论，userID 从查询参数获取
func (h *PostHandler) DeleteComment(c *gin.Context) {
	userID := c.Query("userID")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "userID is required"})
		return
	}

	comments, err := h.postService.DeleteComment(c.Param("id"), c.Param("commentId"), userID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}
