package post

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sahanchanuka24/Academix-V2.0/internal/errors"
	"github.com/sahanchanuka24/Academix-V2.0/internal/service"
	"github.com/sahanchanuka24/Academix-V2.0/internal/storage"
	"github.com/sahanchanuka24/Academix-V2.0/internal/util"
)

const (
	maxMediaFiles    = 5
	maxMediaFileSize = 50 << 20 // 每个文件 50MB
)

// 与前端上传约定一致的 MIME 白名单
var allowedMediaTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/jpg":  true,
	"video/mp4":  true,
}

// PostHandler 处理帖子及其媒体附件
type PostHandler struct {
	postService *service.PostService
	storage     storage.Storage
}

func NewPostHandler(postService *service.PostService, storage storage.Storage) *PostHandler {
	return &PostHandler{
		postService: postService,
		storage:     storage,
	}
}

// uploadMedia 校验并上传一组多部分表单文件，返回公开路径
func (h *PostHandler) uploadMedia(c *gin.Context, field string) ([]string, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		// 纯 JSON 或空表单请求没有媒体文件
		return nil, true
	}

	files := form.File[field]
	if len(files) > maxMediaFiles {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Too many files"})
		return nil, false
	}

	var media []string
	for _, file := range files {
		if !allowedMediaTypes[file.Header.Get("Content-Type")] {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Unsupported file type"})
			return nil, false
		}
		if file.Size > maxMediaFileSize {
			c.JSON(http.StatusBadRequest, gin.H{"message": "File too large"})
			return nil, false
		}

		filename := util.GenerateUniqueFilename(file.Filename)
		url, err := h.storage.UploadFile(file, filename)
		if err != nil {
			util.Logger.Error("媒体上传失败", zap.Error(err), zap.String("filename", file.Filename))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload media"})
			return nil, false
		}
		media = append(media, url)
	}
	return media, true
}

// releaseMedia 尽力删除媒体文件，失败只记日志，不影响主操作
func (h *PostHandler) releaseMedia(paths []string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := h.storage.DeleteFile(filepath.Base(p)); err != nil {
			util.Logger.Warn("删除媒体文件失败", zap.Error(err), zap.String("path", p))
		}
	}
}

// List 按创建时间倒序返回所有帖子
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.postService.ListPosts()
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Get 返回单个帖子
func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.postService.GetPost(c.Param("id"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// Create 创建帖子，mediaFiles 表单字段携带最多 5 个附件
func (h *PostHandler) Create(c *gin.Context) {
	userID := c.PostForm("userID")
	title := c.PostForm("title")
	description := c.PostForm("description")
	if userID == "" || title == "" || description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}

	media, ok := h.uploadMedia(c, "mediaFiles")
	if !ok {
		return
	}

	post, err := h.postService.CreatePost(userID, title, description, media)
	if err != nil {
		// 帖子没有建成，上传的文件不再被引用
		h.releaseMedia(media)
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// Update 覆盖标题/描述并追加 newMediaFiles 里的新附件
func (h *PostHandler) Update(c *gin.Context) {
	media, ok := h.uploadMedia(c, "newMediaFiles")
	if !ok {
		return
	}

	post, err := h.postService.UpdatePost(c.Param("id"), c.PostForm("title"), c.PostForm("description"), media)
	if err != nil {
		h.releaseMedia(media)
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// Delete 删除帖子并释放其全部媒体文件
func (h *PostHandler) Delete(c *gin.Context) {
	deleted, err := h.postService.DeletePost(c.Param("id"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	h.releaseMedia(deleted.Media)
	c.JSON(http.StatusOK, deleted)
}

// RemoveMediaRequest 单个媒体引用删除请求体
type RemoveMediaRequest struct {
	MediaURL string `json:"mediaUrl"`
}

// RemoveMedia 从帖子中过滤掉单个媒体引用并释放文件
func (h *PostHandler) RemoveMedia(c *gin.Context) {
	var req RemoveMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "mediaUrl is required"})
		return
	}

	post, err := h.postService.RemoveMedia(c.Param("id"), req.MediaURL)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	h.releaseMedia([]string{req.MediaURL})
	c.JSON(http.StatusOK, post)
}

// Like 翻转点赞状态并返回完整的点赞集合
func (h *PostHandler) Like(c *gin.Context) {
	userID := c.Query("userID")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "userID is required"})
		return
	}

	likes, err := h.postService.ToggleLike(c.Param("id"), userID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes": likes})
}
