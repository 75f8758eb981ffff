package user

import userModel "terminal-terrace/conduit/internal/model/user"

// RegisterRequest 注册请求
type RegisterRequest struct {
	User struct {
		Username string `json:"username" binding:"required,max=50"`
		Email    string `json:"email" binding:"required,email,max=100"`
		Password string `json:"password" binding:"required,min=8,max=72"`
	} `json:"user" binding:"required"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	User struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	} `json:"user" binding:"required"`
}

// UpdateRequest 更新当前用户，未提供的字段保持不变
type UpdateRequest struct {
	User UpdateFields `json:"user" binding:"required"`
}

// UpdateFields 可更新的字段
type UpdateFields struct {
	Username *string `json:"username" binding:"omitempty,max=50"`
	Email    *string `json:"email" binding:"omitempty,email,max=100"`
	Password *string `json:"password" binding:"omitempty,min=8,max=72"`
	Bio      *string `json:"bio"`
	Image    *string `json:"image" binding:"omitempty,max=500"`
}

// AuthResult 用户及其新签发的令牌
type AuthResult struct {
	User  *userModel.User
	Token string
}
