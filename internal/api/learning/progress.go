package learning

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sahanchanuka24/Academix-V2.0/internal/errors"
	"github.com/sahanchanuka24/Academix-V2.0/internal/service"
	"github.com/sahanchanuka24/Academix-V2.0/internal/util"
)

// LearningHandler 处理学习进度与学习资源
type LearningHandler struct {
	learningService *service.LearningService
}

func NewLearningHandler(learningService *service.LearningService) *LearningHandler {
	return &LearningHandler{learningService: learningService}
}

// CreateProgressRequest 创建学习进度请求体
// 日期字段经 datestr 自定义验证器校验格式，先后关系在服务层检查
type CreateProgressRequest struct {
	SkillTitle    string `json:"skillTitle" binding:"required"`
	Description   string `json:"description" binding:"required"`
	Field         string `json:"field" binding:"required"`
	StartDate     string `json:"startDate" binding:"required,datestr"`
	EndDate       string `json:"endDate" binding:"required,datestr"`
	Level         string `json:"level"`
	PostOwnerID   string `json:"postOwnerID" binding:"required"`
	PostOwnerName string `json:"postOwnerName"`
}

// UpdateProgressRequest 更新学习进度请求体，全部字段可选
type UpdateProgressRequest struct {
	SkillTitle  string `json:"skillTitle"`
	Description string `json:"description"`
	Field       string `json:"field"`
	StartDate   string `json:"startDate" binding:"omitempty,datestr"`
	EndDate     string `json:"endDate" binding:"omitempty,datestr"`
	Level       string `json:"level"`
}

// ListProgress 按创建时间倒序返回所有学习进度
func (h *LearningHandler) ListProgress(c *gin.Context) {
	list, err := h.learningService.ListProgress()
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetProgress 返回单条学习进度
func (h *LearningHandler) GetProgress(c *gin.Context) {
	progress, err := h.learningService.GetProgress(c.Param("id"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

// CreateProgress 创建学习进度记录
func (h *LearningHandler) CreateProgress(c *gin.Context) {
	var req CreateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}

	progress, err := h.learningService.CreateProgress(service.CreateProgressInput{
		SkillTitle:    req.SkillTitle,
		Description:   req.Description,
		Field:         req.Field,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Level:         req.Level,
		PostOwnerID:   req.PostOwnerID,
		PostOwnerName: req.PostOwnerName,
	})
	if err != nil {
		util.Logger.Error("创建学习进度失败", zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, progress)
}

// UpdateProgress 合并提供的字段
func (h *LearningHandler) UpdateProgress(c *gin.Context) {
	var req UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	progress, err := h.learningService.UpdateProgress(c.Param("id"), service.UpdateProgressInput{
		SkillTitle:  req.SkillTitle,
		Description: req.Description,
		Field:       req.Field,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Level:       req.Level,
	})
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// DeleteProgress 删除并返回被删记录
func (h *LearningHandler) DeleteProgress(c *gin.Context) {
	deleted, err := h.learningService.DeleteProgress(c.Param("id"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, deleted)
}
