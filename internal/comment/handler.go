package comment

import (
	"strconv"

	"terminal-terrace/conduit/internal/dto"
	"terminal-terrace/conduit/internal/middleware"
	"terminal-terrace/conduit/packages/response"

	"github.com/gin-gonic/gin"
)

// CreateCommentRequest 发表评论请求
type CreateCommentRequest struct {
	Comment struct {
		Body string `json:"body" binding:"required"`
	} `json:"comment" binding:"required"`
}

type CommentHandler struct {
	commentService *CommentService
}

func NewCommentHandler(commentService *CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// ListComments 评论列表
// @Summary 文章评论列表（最新在前）
// @Tags Comment
// @Produce json
// @Param slug path string true "文章 slug"
// @Success 200 {object} response.Response{data=[]dto.CommentView}
// @Router /articles/{slug}/comments [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	comments, err := h.commentService.List(c.Request.Context(), c.Param("slug"), middleware.ViewerID(c))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.SuccessResponse(c, gin.H{"comments": comments})
}

// CreateComment 发表评论
// @Summary 发表评论
// @Tags Comment
// @Accept json
// @Produce json
// @Param slug path string true "文章 slug"
// @Param request body CreateCommentRequest true "评论"
// @Success 200 {object} response.Response{data=dto.CommentView}
// @Router /articles/{slug}/comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	author, err := middleware.CurrentUser(c)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	view, err := h.commentService.Create(c.Request.Context(), c.Param("slug"), author.ID, req.Comment.Body)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.SuccessResponse(c, gin.H{"comment": view})
}

// DeleteComment 删除自己的评论
// @Summary 删除评论（仅评论作者）
// @Tags Comment
// @Produce json
// @Param slug path string true "文章 slug"
// @Param id path int true "评论ID"
// @Success 200 {object} response.Response
// @Router /articles/{slug}/comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("无效的评论ID"),
		))
		return
	}

	caller, err := middleware.CurrentUser(c)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), c.Param("slug"), uint(id), caller.ID); err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.SuccessResponse(c, nil)
}

// SetupCommentRoutes 评论路由
func SetupCommentRoutes(r *gin.RouterGroup, h *CommentHandler, guard *middleware.Guard) {
	comments := r.Group("/articles/:slug/comments")
	{
		comments.GET("", guard.Soft(), h.ListComments)
		comments.POST("", guard.Hard(), h.CreateComment)
		comments.DELETE("/:id", guard.Hard(), h.DeleteComment)
	}
}
