package feed

import (
	"terminal-terrace/conduit/internal/dto"
	"terminal-terrace/conduit/internal/middleware"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	feedService *FeedService
}

func NewFeedHandler(feedService *FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// GetFeed 关注作者的文章
// @Summary 关注作者的文章动态
// @Tags Article
// @Produce json
// @Param offset query int false "偏移（也可用 skip）" default(0)
// @Param limit query int false "数量，最大 100" default(20)
// @Success 200 {object} response.Response{data=dto.ArticleListView}
// @Router /articles/feed [get]
func (h *FeedHandler) GetFeed(c *gin.Context) {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	page := dto.ParsePage(c)
	result, err := h.feedService.BuildFeed(c.Request.Context(), caller.ID, page.Offset, page.Limit)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.SuccessResponse(c, result)
}

// SetupFeedRoutes 动态路由
func SetupFeedRoutes(r *gin.RouterGroup, h *FeedHandler, guard *middleware.Guard) {
	r.GET("/articles/feed", guard.Hard(), h.GetFeed)
}
