package article

import (
	"terminal-terrace/conduit/internal/dto"
	"terminal-terrace/conduit/internal/middleware"

	"github.com/gin-gonic/gin"
)

type ArticleHandler struct {
	articleService *ArticleService
}

func NewArticleHandler(articleService *ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

// ListArticles 文章列表
// @Summary 文章列表（按标签、作者、收藏者过滤）
// @Tags Article
// @Produce json
// @Param tag query string false "标签"
// @Param author query string false "作者用户名"
// @Param favorited query string false "收藏者用户名"
// @Param offset query int false "偏移" default(0)
// @Param limit query int false "数量" default(20)
// @Success 200 {object} response.Response{data=dto.ArticleListView}
// @Router /articles [get]
func (h *ArticleHandler) ListArticles(c *gin.Context) {
	page := dto.ParsePage(c)
	result, err := h.articleService.List(c.Request.Context(), middleware.ViewerID(c), ListFilter{
		Tag:       c.Query("tag"),
		Author:    c.Query("author"),
		Favorited: c.Query("favorited"),
		Offset:    page.Offset,
		Limit:     page.Limit,
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.SuccessResponse(c, result)
}

// GetArticle 文章详情
// @Summary 获取文章详情
// @Tags Article
// @Produce json
// @Param slug path string true "文章 slug"
// @Success 200 {object} response.Response{data=dto.ArticleView}
// @Router /articles/{slug} [get]
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	view, err := h.articleService.Get(c.Request.Context(), c.Param("slug"), middleware.ViewerID(c))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.SuccessResponse(c, gin.H{"article": view})
}

// CreateArticle 创建文章
// @Summary 创建文章
// @Tags Article
// @Accept json
// @Produce json
// @Param request body CreateArticleRequest true "创建文章请求"
// @Success 200 {object} response.Response{data=dto.ArticleView}
// @Router /articles [post]
func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	var req CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	author, err := middleware.CurrentUser(c)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	ctx := c.Request.Context()
	art, err := h.articleService.Create(ctx, author.ID, CreateInput{
		Title:       req.Article.Title,
		Description: req.Article.Description,
		Body:        req.Article.Body,
		Tags:        req.Article.TagList,
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	h.respondArticle(c, art.Slug, author.ID)
}

// UpdateArticle 更新文章
// @Summary 更新文章（仅作者）
// @Tags Article
// @Accept json
// @Produce json
// @Param slug path string true "文章 slug"
// @Param request body UpdateArticleRequest true "更新文章请求"
// @Success 200 {object} response.Response{data=dto.ArticleView}
// @Router /articles/{slug} [put]
func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	// 非作者在校验请求体之前就拒绝
	if err := h.articleService.Authorize(c.Request.Context(), c.Param("slug"), caller.ID); err != nil {
		dto.HandleError(c, err)
		return
	}

	var req UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	art, err := h.articleService.Update(c.Request.Context(), c.Param("slug"), caller.ID, UpdateInput{
		Title:       req.Article.Title,
		Description: req.Article.Description,
		Body:        req.Article.Body,
		Tags:        req.Article.TagList,
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	h.respondArticle(c, art.Slug, caller.ID)
}

// DeleteArticle 删除文章
// @Summary 删除文章（仅作者）
// @Tags Article
// @Produce json
// @Param slug path string true "文章 slug"
// @Success 200 {object} response.Response
// @Router /articles/{slug} [delete]
func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	if err := h.articleService.Destroy(c.Request.Context(), c.Param("slug"), caller.ID); err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.SuccessResponse(c, nil)
}

// FavoriteArticle 收藏
// @Summary 收藏文章
// @Tags Article
// @Produce json
// @Param slug path string true "文章 slug"
// @Success 200 {object} response.Response{data=dto.ArticleView}
// @Router /articles/{slug}/favorite [post]
func (h *ArticleHandler) FavoriteArticle(c *gin.Context) {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	view, err := h.articleService.Favorite(c.Request.Context(), c.Param("slug"), caller.ID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.SuccessResponse(c, gin.H{"article": view})
}

// UnfavoriteArticle 取消收藏
// @Summary 取消收藏文章
// @Tags Article
// @Produce json
// @Param slug path string true "文章 slug"
// @Success 200 {object} response.Response{data=dto.ArticleView}
// @Router /articles/{slug}/favorite [delete]
func (h *ArticleHandler) UnfavoriteArticle(c *gin.Context) {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	view, err := h.articleService.Unfavorite(c.Request.Context(), c.Param("slug"), caller.ID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.SuccessResponse(c, gin.H{"article": view})
}

func (h *ArticleHandler) respondArticle(c *gin.Context, slug string, viewerID uint) {
	view, err := h.articleService.Get(c.Request.Context(), slug, viewerID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.SuccessResponse(c, gin.H{"article": view})
}
