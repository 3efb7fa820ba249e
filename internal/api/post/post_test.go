package post

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahanchanuka24/Academix-V2.0/internal/model"
	"github.com/sahanchanuka24/Academix-V2.0/internal/repository/jsonstore"
	"github.com/sahanchanuka24/Academix-V2.0/internal/service"
	"github.com/sahanchanuka24/Academix-V2.0/internal/storage"
	"github.com/sahanchanuka24/Academix-V2.0/internal/util"
)

func init() {
	gin.SetMode(gin.TestMode)
	util.InitLogger("error")
}

type postAPIFixture struct {
	router     *gin.Engine
	uploadsDir string
	owner      *model.User
	other      *model.User
}

// newPostAPIFixture 用真实存储和本地文件系统搭起完整的帖子路由
func newPostAPIFixture(t *testing.T) *postAPIFixture {
	t.Helper()

	store, err := jsonstore.Open(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)

	uploadsDir := t.TempDir()
	localStorage, err := storage.NewLocalStorage(uploadsDir)
	require.NoError(t, err)

	userRepo := jsonstore.NewUserRepository(store)
	postRepo := jsonstore.NewPostRepository(store)
	notificationRepo := jsonstore.NewNotificationRepository(store)

	owner := &model.User{ID: "owner", Fullname: "Alice", Email: "alice@example.com", CreatedAt: time.Now()}
	other := &model.User{ID: "other", Fullname: "Bob", Email: "bob@example.com", CreatedAt: time.Now()}
	require.NoError(t, userRepo.Create(owner))
	require.NoError(t, userRepo.Create(other))

	postService := service.NewPostService(postRepo, userRepo, service.NewNotificationService(notificationRepo))
	handler := NewPostHandler(postService, localStorage)

	r := gin.New()
	r.GET("/posts", handler.List)
	r.GET("/posts/:id", handler.Get)
	r.POST("/posts", handler.Create)
	r.PUT("/posts/:id", handler.Update)
	r.DELETE("/posts/:id", handler.Delete)
	r.DELETE("/posts/:id/media", handler.RemoveMedia)
	r.PUT("/posts/:id/like", handler.Like)
	r.POST("/posts/:id/comment", handler.AddComment)
	return &postAPIFixture{router: r, uploadsDir: uploadsDir, owner: owner, other: other}
}

func (f *postAPIFixture) postForm(t *testing.T, path string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *postAPIFixture) createPost(t *testing.T, title string) model.Post {
	t.Helper()
	w := f.postForm(t, "/posts", url.Values{
		"userID":      {f.owner.ID},
		"title":       {title},
		"description": {"desc"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var post model.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	return post
}

// TestCreatePostEndpoint 测试表单创建与缺字段 400
func TestCreatePostEndpoint(t *testing.T) {
	f := newPostAPIFixture(t)

	post := f.createPost(t, "Hello")
	assert.Equal(t, "owner", post.UserID)
	assert.Equal(t, "Hello", post.Title)
	assert.Empty(t, post.Media)
	assert.Empty(t, post.Likes)

	w := f.postForm(t, "/posts", url.Values{"userID": {f.owner.ID}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing required fields")

	// 未知用户创建失败
	w = f.postForm(t, "/posts", url.Values{
		"userID":      {"ghost"},
		"title":       {"X"},
		"description": {"Y"},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")
}

// TestCreatePostWithMedia 测试多部分上传落盘并回填公开路径
func TestCreatePostWithMedia(t *testing.T) {
	f := newPostAPIFixture(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("userID", f.owner.ID))
	require.NoError(t, mw.WriteField("title", "With Media"))
	require.NoError(t, mw.WriteField("description", "desc"))

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="mediaFiles"; filename="pic.jpg"`)
	header.Set("Content-Type", "image/jpeg")
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("fake jpeg bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/posts", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var post model.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	require.Len(t, post.Media, 1)
	assert.True(t, strings.HasPrefix(post.Media[0], "/uploads/"))

	// 文件真实写到了磁盘
	onDisk := filepath.Join(f.uploadsDir, filepath.Base(post.Media[0]))
	data, err := os.ReadFile(onDisk)
	assert.NoError(t, err)
	assert.Equal(t, "fake jpeg bytes", string(data))
}

// TestRejectedMediaUpload 测试 MIME 白名单拦截
func TestRejectedMediaUpload(t *testing.T) {
	f := newPostAPIFixture(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("userID", f.owner.ID))
	require.NoError(t, mw.WriteField("title", "Bad Media"))
	require.NoError(t, mw.WriteField("description", "desc"))

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="mediaFiles"; filename="payload.exe"`)
	header.Set("Content-Type", "application/octet-stream")
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("nope"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/posts", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unsupported file type")
}

// TestLikeEndpoint 测试点赞接口的翻转与缺 userID 400
func TestLikeEndpoint(t *testing.T) {
	f := newPostAPIFixture(t)
	post := f.createPost(t, "Likeable")

	req := httptest.NewRequest(http.MethodPut, "/posts/"+post.ID+"/like?userID=other", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]map[string]bool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp["likes"]["other"])

	// 再翻转一次，键消失
	req = httptest.NewRequest(http.MethodPut, "/posts/"+post.ID+"/like?userID=other", nil)
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp["likes"])

	req = httptest.NewRequest(http.MethodPut, "/posts/"+post.ID+"/like", nil)
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "userID is required")
}

// TestCommentEndpoint 测试评论接口的追加与校验
func TestCommentEndpoint(t *testing.T) {
	f := newPostAPIFixture(t)
	post := f.createPost(t, "Commentable")

	payload, _ := json.Marshal(gin.H{"userID": "other", "content": "great"})
	req := httptest.NewRequest(http.MethodPost, "/posts/"+post.ID+"/comment", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string][]model.Comment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp["comments"], 1)
	assert.Equal(t, "Bob", resp["comments"][0].UserFullName)

	// 缺 content 直接 400
	payload, _ = json.Marshal(gin.H{"userID": "other"})
	req = httptest.NewRequest(http.MethodPost, "/posts/"+post.ID+"/comment", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "userID and content are required")
}

// TestDeletePostEndpoint 测试删除接口返回被删记录并释放媒体文件
func TestDeletePostEndpoint(t *testing.T) {
	f := newPostAPIFixture(t)
	post := f.createPost(t, "Doomed")

	req := httptest.NewRequest(http.MethodDelete, "/posts/"+post.ID, nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var deleted model.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &deleted))
	assert.Equal(t, post.ID, deleted.ID)

	req = httptest.NewRequest(http.MethodGet, "/posts/"+post.ID, nil)
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Post not found")
}
