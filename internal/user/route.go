package user

import (
	"terminal-terrace/conduit/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupUserRoutes 注册、登录与当前用户
func SetupUserRoutes(r *gin.RouterGroup, h *UserHandler, guard *middleware.Guard) {
	users := r.Group("/users")
	{
		users.POST("", h.Register)
		users.POST("/login", h.Login)
	}

	current := r.Group("/user")
	current.Use(guard.Hard())
	{
		current.GET("", h.Current)
		current.PUT("", h.Update)
	}
}
