package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sahanchanuka24/Academix-V2.0/config"
	"github.com/sahanchanuka24/Academix-V2.0/internal/api/learning"
	"github.com/sahanchanuka24/Academix-V2.0/internal/api/notification"
	"github.com/sahanchanuka24/Academix-V2.0/internal/api/post"
	"github.com/sahanchanuka24/Academix-V2.0/internal/api/user"
	"github.com/sahanchanuka24/Academix-V2.0/internal/middleware"
	"github.com/sahanchanuka24/Academix-V2.0/internal/repository/jsonstore"
	"github.com/sahanchanuka24/Academix-V2.0/internal/service"
	"github.com/sahanchanuka24/Academix-V2.0/internal/storage"
	"github.com/sahanchanuka24/Academix-V2.0/internal/util"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			util.Logger.Error("程序发生严重错误", zap.Any("error", r))
		}
	}()

	// 初始化配置
	config.Init()

	// 初始化日志
	util.InitLogger(config.AppConfig.LogLevel)
	defer util.Logger.Sync()

	util.Logger.Info("应用程序启动")

	// 注册自定义验证器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("datestr", util.ValidateDateString)
	}

	// 打开 JSON 数据文件
	store, err := jsonstore.Open(config.AppConfig.DataFile)
	if err != nil {
		util.Logger.Fatal("打开数据文件失败", zap.Error(err))
	}
	util.Logger.Info("数据文件加载完成", zap.String("path", config.AppConfig.DataFile))

	// 选择媒体存储后端
	mediaStorage := newStorage()

	// 初始化存储库、服务和处理器
	userRepo := jsonstore.NewUserRepository(store)
	postRepo := jsonstore.NewPostRepository(store)
	progressRepo := jsonstore.NewLearningProgressRepository(store)
	resourceRepo := jsonstore.NewLearningResourceRepository(store)
	notificationRepo := jsonstore.NewNotificationRepository(store)

	notificationService := service.NewNotificationService(notificationRepo)
	userService := service.NewUserService(userRepo, notificationService)
	postService := service.NewPostService(postRepo, userRepo, notificationService)
	learningService := service.NewLearningService(progressRepo, resourceRepo, userRepo, notificationService)

	authHandler := user.NewAuthHandler(userService)
	profileHandler := user.NewProfileHandler(userService)
	postHandler := post.NewPostHandler(postService, mediaStorage)
	learningHandler := learning.NewLearningHandler(learningService)
	notificationHandler := notification.NewNotificationHandler(notificationService)

	// 初始化错误监控
	errorMonitor := middleware.NewErrorMonitor()

	// 设置 Gin 路由
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.ErrorMonitorMiddleware(errorMonitor))

	// 配置 CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{config.AppConfig.FrontendURL}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// 本地存储时经静态路由提供上传的媒体文件
	if config.AppConfig.StorageBackend == "local" {
		r.Static("/uploads", config.AppConfig.LocalStoragePath)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 用户相关路由
	r.POST("/user", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.GET("/user/:id", profileHandler.GetProfile)
	r.PUT("/user/:id", profileHandler.UpdateProfile)
	r.PUT("/user/:id/follow", profileHandler.Follow)
	r.PUT("/user/:id/unfollow", profileHandler.Unfollow)
	r.GET("/user/:id/followedUsers", profileHandler.FollowedUsers)

	// 帖子相关路由
	r.GET("/posts", postHandler.List)
	r.POST("/posts", postHandler.Create)
	r.GET("/posts/:id", postHandler.Get)
	r.PUT("/posts/:id", postHandler.Update)
	r.DELETE("/posts/:id", postHandler.Delete)
	r.DELETE("/posts/:id/media", postHandler.RemoveMedia)
	r.PUT("/posts/:id/like", postHandler.Like)
	r.POST("/posts/:id/comment", postHandler.AddComment)
	r.PUT("/posts/:id/comment/:commentId", postHandler.EditComment)
	r.DELETE("/posts/:id/comment/:commentId", postHandler.DeleteComment)

	// 学习进度路由
	r.GET("/learningProgress", learningHandler.ListProgress)
	r.POST("/learningProgress", learningHandler.CreateProgress)
	r.GET("/learningProgress/:id", learningHandler.GetProgress)
	r.PUT("/learningProgress/:id", learningHandler.UpdateProgress)
	r.DELETE("/learningProgress/:id", learningHandler.DeleteProgress)

	// 学习资源路由
	r.GET("/learningSystem", learningHandler.ListResources)
	r.POST("/learningSystem", learningHandler.CreateResource)
	r.GET("/learningSystem/:id", learningHandler.GetResource)
	r.PUT("/learningSystem/:id", learningHandler.UpdateResource)
	r.DELETE("/learningSystem/:id", learningHandler.DeleteResource)
	r.PUT("/learningSystem/:id/like", learningHandler.LikeResource)

	// 通知路由
	// 路由树同一位置只能用一个参数名，这里统一用 :id
	r.GET("/notifications/:id", notificationHandler.List)
	r.PUT("/notifications/:id/markAsRead", notificationHandler.MarkAsRead)
	r.PUT("/notifications/markAllAsRead/:userId", notificationHandler.MarkAllAsRead)
	r.DELETE("/notifications/:id", notificationHandler.Delete)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.Port,
		Handler: r,
	}

	// 在一个新的 goroutine 中启动服务器
	go func() {
		util.Logger.Info("服务器正在启动", zap.String("port", config.AppConfig.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			util.Logger.Fatal("启动服务器失败", zap.Error(err))
		}
	}()

	// 等待中断信号以优雅地关闭服务器（设置 5 秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	util.Logger.Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		util.Logger.Fatal("服务器强制关闭", zap.Error(err))
	}

	util.Logger.Info("服务器已优雅关闭")
}

// newStorage 按配置选择媒体存储后端，默认本地磁盘
func newStorage() storage.Storage {
	switch config.AppConfig.StorageBackend {
	case "s3":
		client, err := storage.NewS3Client(config.AppConfig.S3Region, config.AppConfig.S3Bucket)
		if err != nil {
			util.Logger.Fatal("初始化 S3 存储失败", zap.Error(err))
		}
		return client
	case "gcs":
		client, err := storage.NewGCSClient(config.AppConfig.GCSBucketName, config.AppConfig.GCSCredentialsFile)
		if err != nil {
			util.Logger.Fatal("初始化 GCS 存储失败", zap.Error(err))
		}
		return client
	default:
		local, err := storage.NewLocalStorage(config.AppConfig.LocalStoragePath)
		if err != nil {
			util.Logger.Fatal("初始化本地存储失败", zap.Error(err))
		}
		return local
	}
}
