package learning

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sahanchanuka24/Academix-V2.0/internal/errors"
	"github.com/sahanchanuka24/Academix-V2.0/internal/service"
	"github.com/sahanchanuka24/Academix-V2.0/internal/util"
)

// CreateResourceRequest 创建学习资源请求体
type CreateResourceRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	ContentURL  string   `json:"contentURL" binding:"required"`
	Tags        []string `json:"tags"`
	PostOwnerID string   `json:"postOwnerID" binding:"required"`
}

// UpdateResourceRequest 更新学习资源请求体，全部字段可选
type UpdateResourceRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ContentURL  string    `json:"contentURL"`
	Tags        *[]string `json:"tags"`
}

// ListResources 按创建时间倒序返回所有学习资源
func (h *LearningHandler) ListResources(c *gin.Context) {
	list, err := h.learningService.ListResources()
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetResource 返回单条学习资源
func (h *LearningHandler) GetResource(c *gin.Context) {
	resource, err := h.learningService.GetResource(c.Param("id"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resource)
}

// CreateResource 创建学习资源
func (h *LearningHandler) CreateResource(c *gin.Context) {
	var req CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}

	resource, err := h.learningService.CreateResource(service.CreateResourceInput{
		Title:       req.Title,
		Description: req.Description,
		ContentURL:  req.ContentURL,
		Tags:        req.Tags,
		PostOwnerID: req.PostOwnerID,
	})
	if err != nil {
		util.Logger.Error("创建学习资源失败", zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resource)
}

// UpdateResource 合并提供的字段
func (h *LearningHandler) UpdateResource(c *gin.Context) {
	var req UpdateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	resource, err := h.learningService.UpdateResource(c.Param("id"), service.UpdateResourceInput{
		Title:       req.Title,
		Description: req.Description,
		ContentURL:  req.ContentURL,
		Tags:        req.Tags,
	})
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resource)
}

// DeleteResource 删除并返回被删记录
func (h *LearningHandler) DeleteResource(c *gin.Context) {
	deleted, err := h.learningService.DeleteResource(c.Param("id"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, deleted)
}

// LikeResource 翻转点赞状态并返回完整的点赞集合
func (h *LearningHandler) LikeResource(c *gin.Context) {
	userID := c.Query("userID")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "userID is required"})
		return
	}

	likes, err := h.learningService.ToggleResourceLike(c.Param("id"), userID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes": likes})
}
