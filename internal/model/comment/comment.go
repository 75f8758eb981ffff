// Package comment 评论模型
package comment

import (
	"strings"
	"time"

	"terminal-terrace/conduit/internal/model/article"

	"gorm.io/gorm"
)

// Comment 文章评论，随文章一起删除
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ArticleID uint      `gorm:"not null;index" json:"article_id"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Article *article.Article `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Comment) TableName() string {
	return "comments"
}

// BeforeCreate GORM钩子：创建前的验证
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if strings.TrimSpace(c.Body) == "" {
		return gorm.ErrInvalidData
	}
	return nil
}
