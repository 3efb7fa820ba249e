package user

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sahanchanuka24/Academix-V2.0/internal/errors"
	"github.com/sahanchanuka24/Academix-V2.0/internal/model"
	"github.com/sahanchanuka24/Academix-V2.0/internal/service"
	"github.com/sahanchanuka24/Academix-V2.0/internal/util"
)

func init() {
	gin.SetMode(gin.TestMode)
	util.InitLogger("error")
}

// MockUserService 是 UserServiceInterface 的模拟实现
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(input service.RegisterInput) (*model.User, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Login(email, password string) (*model.User, error) {
	args := m.Called(email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) GetUserByID(id string) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(id string, input service.UpdateUserInput) (*model.User, error) {
	args := m.Called(id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Follow(actorID, targetID string) ([]string, error) {
	args := m.Called(actorID, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockUserService) Unfollow(actorID, targetID string) ([]string, error) {
	args := m.Called(actorID, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockUserService) Following(id string) ([]string, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func setupAuthRouter(mockService *MockUserService) *gin.Engine {
	r := gin.New()
	authHandler := NewAuthHandler(mockService)
	profileHandler := NewProfileHandler(mockService)
	r.POST("/user", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.PUT("/user/:id/follow", profileHandler.Follow)
	r.PUT("/user/:id/unfollow", profileHandler.Unfollow)
	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// TestRegisterEndpoint 测试注册接口的成功与缺字段两种情况
func TestRegisterEndpoint(t *testing.T) {
	mockService := new(MockUserService)
	r := setupAuthRouter(mockService)

	created := &model.User{ID: "u1", Fullname: "Test User", Email: "test@example.com"}
	mockService.On("Register", mock.AnythingOfType("service.RegisterInput")).Return(created, nil)

	w := doJSON(r, http.MethodPost, "/user", gin.H{
		"fullname": "Test User",
		"email":    "test@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp model.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "u1", resp.ID)
	assert.Empty(t, resp.Password)

	// 缺少必填字段直接 400，不触碰服务层
	w = doJSON(r, http.MethodPost, "/user", gin.H{"email": "test@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing required fields")
}

// TestRegisterEndpointConflict 测试重复邮箱返回 409
func TestRegisterEndpointConflict(t *testing.T) {
	mockService := new(MockUserService)
	r := setupAuthRouter(mockService)

	mockService.On("Register", mock.AnythingOfType("service.RegisterInput")).
		Return(nil, errors.New(errors.ErrUserExists, "Email already registered"))

	w := doJSON(r, http.MethodPost, "/user", gin.H{
		"fullname": "Test User",
		"email":    "taken@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Email already registered")
}

// TestLoginEndpoint 测试登录接口的响应形状与 401
func TestLoginEndpoint(t *testing.T) {
	mockService := new(MockUserService)
	r := setupAuthRouter(mockService)

	stored := &model.User{ID: "u1", Fullname: "Test User", Email: "test@example.com", Password: "hash"}
	mockService.On("Login", "test@example.com", "password123").Return(stored, nil)
	mockService.On("Login", "test@example.com", "wrong").
		Return(nil, errors.New(errors.ErrInvalidCredentials, "Invalid credentials"))

	w := doJSON(r, http.MethodPost, "/login", gin.H{
		"email":    "test@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "u1", resp["id"])
	// 登录响应只含最小身份信息
	_, hasPassword := resp["password"]
	assert.False(t, hasPassword)

	w = doJSON(r, http.MethodPost, "/login", gin.H{
		"email":    "test@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}

// TestFollowEndpoint 测试关注接口的成功与自关注 400
func TestFollowEndpoint(t *testing.T) {
	mockService := new(MockUserService)
	r := setupAuthRouter(mockService)

	mockService.On("Follow", "u1", "u2").Return([]string{"u2"}, nil)
	mockService.On("Follow", "u1", "u1").
		Return(nil, errors.New(errors.ErrBadRequest, "Invalid follow request"))

	w := doJSON(r, http.MethodPut, "/user/u1/follow", gin.H{"followUserID": "u2"})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"u2"}, resp["following"])

	w = doJSON(r, http.MethodPut, "/user/u1/follow", gin.H{"followUserID": "u1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid follow request")
}

// TestUnfollowEndpoint 测试取消关注接口
func TestUnfollowEndpoint(t *testing.T) {
	mockService := new(MockUserService)
	r := setupAuthRouter(mockService)

	mockService.On("Unfollow", "u1", "u2").Return([]string{}, nil)

	w := doJSON(r, http.MethodPut, "/user/u1/unfollow", gin.H{"unfollowUserID": "u2"})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp["following"])
}
