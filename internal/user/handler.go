package user

import (
	"terminal-terrace/conduit/internal/dto"
	"terminal-terrace/conduit/internal/middleware"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *UserService
}

func NewUserHandler(userService *UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register 注册
// @Summary 注册新用户
// @Tags User
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "注册请求"
// @Success 200 {object} response.Response{data=dto.UserView}
// @Router /users [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	result, err := h.userService.Register(c.Request.Context(), RegisterInput{
		Username: req.User.Username,
		Email:    req.User.Email,
		Password: req.User.Password,
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.SuccessResponse(c, gin.H{"user": dto.NewUserView(result.User, result.Token)})
}

// Login 登录
// @Summary 邮箱密码登录
// @Tags User
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录请求"
// @Success 200 {object} response.Response{data=dto.UserView}
// @Router /users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	result, err := h.userService.Login(c.Request.Context(), req.User.Email, req.User.Password)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.SuccessResponse(c, gin.H{"user": dto.NewUserView(result.User, result.Token)})
}

// Current 当前用户
// @Summary 获取当前用户
// @Tags User
// @Produce json
// @Success 200 {object} response.Response{data=dto.UserView}
// @Router /user [get]
func (h *UserHandler) Current(c *gin.Context) {
	u, err := middleware.CurrentUser(c)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	result, err := h.userService.Token(u)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.SuccessResponse(c, gin.H{"user": dto.NewUserView(result.User, result.Token)})
}

// Update 更新当前用户
// @Summary 更新当前用户
// @Tags User
// @Accept json
// @Produce json
// @Param request body UpdateRequest true "更新请求"
// @Success 200 {object} response.Response{data=dto.UserView}
// @Router /user [put]
func (h *UserHandler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	u, err := middleware.CurrentUser(c)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	result, err := h.userService.Update(c.Request.Context(), u, req.User)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.SuccessResponse(c, gin.H{"user": dto.NewUserView(result.User, result.Token)})
}
