package dto

import (
	"time"

	"terminal-terrace/conduit/internal/model/user"
)

// ProfileView 对外的用户资料，following 相对于当前访问者
type ProfileView struct {
	Username  string  `json:"username"`
	Bio       string  `json:"bio"`
	Image     *string `json:"image"`
	Following bool    `json:"following"`
}

// NewProfileView 构造资料视图
func NewProfileView(u *user.User, following bool) ProfileView {
	return ProfileView{
		Username:  u.Username,
		Bio:       u.Bio,
		Image:     u.Image,
		Following: following,
	}
}

// UserView 当前用户信息，附带访问令牌
type UserView struct {
	Email    string  `json:"email"`
	Token    string  `json:"token"`
	Username string  `json:"username"`
	Bio      string  `json:"bio"`
	Image    *string `json:"image"`
}

// NewUserView 构造当前用户视图
func NewUserView(u *user.User, token string) UserView {
	return UserView{
		Email:    u.Email,
		Token:    token,
		Username: u.Username,
		Bio:      u.Bio,
		Image:    u.Image,
	}
}

// ArticleView 文章详情
type ArticleView struct {
	Slug           string      `json:"slug"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Body           string      `json:"body"`
	TagList        []string    `json:"tag_list"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
	Favorited      bool        `json:"favorited"`
	FavoritesCount int64       `json:"favorites_count"`
	Author         ProfileView `json:"author"`
}

// ArticleListView 文章列表，articles_count 为过滤后总数
type ArticleListView struct {
	Articles      []ArticleView `json:"articles"`
	ArticlesCount int64         `json:"articles_count"`
}

// CommentView 评论
type CommentView struct {
	ID        uint        `json:"id"`
	Body      string      `json:"body"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	Author    ProfileView `json:"author"`
}
