package article

// CreateArticleRequest 创建文章请求
type CreateArticleRequest struct {
	Article struct {
		Title       string   `json:"title" binding:"required,max=255"`
		Description string   `json:"description"`
		Body        string   `json:"body" binding:"required"`
		TagList     []string `json:"tag_list" binding:"max=20,dive,max=50"`
	} `json:"article" binding:"required"`
}

// UpdateArticleRequest 更新文章请求，未提供的字段保持不变
type UpdateArticleRequest struct {
	Article struct {
		Title       *string  `json:"title" binding:"omitempty,max=255"`
		Description *string  `json:"description"`
		Body        *string  `json:"body"`
		TagList     []string `json:"tag_list" binding:"max=20,dive,max=50"`
	} `json:"article" binding:"required"`
}
