package article

import (
	"terminal-terrace/conduit/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupArticleRoutes 设置文章相关路由
func SetupArticleRoutes(r *gin.RouterGroup, h *ArticleHandler, guard *middleware.Guard) {
	// 文章路由 - 可选认证（favorited / following 相对于访问者）
	articlesOptional := r.Group("/articles")
	articlesOptional.Use(guard.Soft())
	{
		articlesOptional.GET("", h.ListArticles)
		articlesOptional.GET("/:slug", h.GetArticle)
	}

	// 文章路由 - 需要认证
	articlesAuth := r.Group("/articles")
	articlesAuth.Use(guard.Hard())
	{
		articlesAuth.POST("", h.CreateArticle)
		articlesAuth.PUT("/:slug", h.UpdateArticle)
		articlesAuth.DELETE("/:slug", h.DeleteArticle)
		articlesAuth.POST("/:slug/favorite", h.FavoriteArticle)
		articlesAuth.DELETE("/:slug/favorite", h.UnfavoriteArticle)
	}
}
