package tag

import (
	"terminal-terrace/conduit/internal/dto"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	tagService *TagService
}

func NewTagHandler(tagService *TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// ListTags 热门标签
// @Summary 按使用次数排序的标签
// @Tags Tag
// @Produce json
// @Success 200 {object} response.Response{data=object{tags=[]string}}
// @Router /tags [get]
func (h *TagHandler) ListTags(c *gin.Context) {
	tags, err := h.tagService.Popular(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.SuccessResponse(c, gin.H{"tags": tags})
}

// SetupTagRoutes 标签路由
func SetupTagRoutes(r *gin.RouterGroup, h *TagHandler) {
	r.GET("/tags", h.ListTags)
}
