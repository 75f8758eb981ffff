package route

import (
	"net/http"
	"time"

	"terminal-terrace/conduit/internal/article"
	"terminal-terrace/conduit/internal/comment"
	_ "terminal-terrace/conduit/internal/docs"
	"terminal-terrace/conduit/internal/events"
	"terminal-terrace/conduit/internal/feed"
	"terminal-terrace/conduit/internal/metrics"
	"terminal-terrace/conduit/internal/middleware"
	"terminal-terrace/conduit/internal/profile"
	"terminal-terrace/conduit/internal/social"
	"terminal-terrace/conduit/internal/tag"
	"terminal-terrace/conduit/internal/user"
	authsdk "terminal-terrace/conduit/packages/auth-sdk"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Dependencies 路由所需的外部依赖
type Dependencies struct {
	DB        *gorm.DB
	Issuer    *authsdk.Issuer
	Redis     redis.Cmdable // 可为 nil
	TagTTL    time.Duration
	Publisher events.Publisher // 可为 nil
	Metrics   *metrics.Metrics // 可为 nil

	FrontendURL string
	// UserOptions 测试中用于降低 bcrypt 开销
	UserOptions []user.UserServiceOption
}

func initRoute(api *gin.RouterGroup, deps Dependencies) {
	// 初始化依赖
	userRepo := user.NewUserRepository(deps.DB)
	guard := middleware.NewGuard(deps.Issuer, userRepo)

	socialService := social.NewSocialService(social.NewSocialRepository(deps.DB), deps.Publisher)
	userService := user.NewUserService(userRepo, deps.Issuer, deps.UserOptions...)
	articleService := article.NewArticleService(deps.DB, userRepo, socialService, deps.Publisher)
	feedService := feed.NewFeedService(socialService, articleService)
	commentService := comment.NewCommentService(comment.NewCommentRepository(deps.DB), articleService, userRepo, socialService)
	profileService := profile.NewProfileService(userRepo, socialService)

	var tagCache tag.Cache
	if deps.Redis != nil {
		tagCache = tag.NewRedisCache(deps.Redis, deps.TagTTL)
	}
	tagService := tag.NewTagService(tag.NewTagRepository(deps.DB), tagCache)

	// 注册路由
	user.SetupUserRoutes(api, user.NewUserHandler(userService), guard)
	profile.SetupProfileRoutes(api, profile.NewProfileHandler(profileService), guard)
	feed.SetupFeedRoutes(api, feed.NewFeedHandler(feedService), guard)
	article.SetupArticleRoutes(api, article.NewArticleHandler(articleService), guard)
	comment.SetupCommentRoutes(api, comment.NewCommentHandler(commentService), guard)
	tag.SetupTagRoutes(api, tag.NewTagHandler(tagService))
}

func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger())

	origin := deps.FrontendURL
	if origin == "" {
		origin = "http://localhost:5173" // 默认值
	}

	// 设置跨域请求
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	}))

	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
		r.GET("/metrics", deps.Metrics.Handler())
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	initRoute(r.Group("/api"), deps)

	return r
}
