package profile

import (
	"terminal-terrace/conduit/internal/dto"
	"terminal-terrace/conduit/internal/middleware"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService *ProfileService
}

func NewProfileHandler(profileService *ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetProfile 用户资料
// @Summary 获取用户资料
// @Tags Profile
// @Produce json
// @Param username path string true "用户名"
// @Success 200 {object} response.Response{data=dto.ProfileView}
// @Router /profiles/{username} [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	view, err := h.profileService.Show(c.Request.Context(), c.Param("username"), middleware.ViewerID(c))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.SuccessResponse(c, gin.H{"profile": view})
}

// FollowUser 关注
// @Summary 关注用户
// @Tags Profile
// @Produce json
// @Param username path string true "用户名"
// @Success 200 {object} response.Response{data=dto.ProfileView}
// @Router /profiles/{username}/follow [post]
func (h *ProfileHandler) FollowUser(c *gin.Context) {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	view, err := h.profileService.Follow(c.Request.Context(), c.Param("username"), caller.ID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.SuccessResponse(c, gin.H{"profile": view})
}

// UnfollowUser 取消关注
// @Summary 取消关注用户
// @Tags Profile
// @Produce json
// @Param username path string true "用户名"
// @Success 200 {object} response.Response{data=dto.ProfileView}
// @Router /profiles/{username}/follow [delete]
func (h *ProfileHandler) UnfollowUser(c *gin.Context) {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	view, err := h.profileService.Unfollow(c.Request.Context(), c.Param("username"), caller.ID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.SuccessResponse(c, gin.H{"profile": view})
}

// SetupProfileRoutes 资料路由
func SetupProfileRoutes(r *gin.RouterGroup, h *ProfileHandler, guard *middleware.Guard) {
	profiles := r.Group("/profiles/:username")
	{
		profiles.GET("", guard.Soft(), h.GetProfile)
		profiles.POST("/follow", guard.Hard(), h.FollowUser)
		profiles.DELETE("/follow", guard.Hard(), h.UnfollowUser)
	}
}
