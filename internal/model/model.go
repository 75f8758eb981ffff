package model

import (
	"fmt"

	"terminal-terrace/conduit/internal/model/article"
	"terminal-terrace/conduit/internal/model/comment"
	"terminal-terrace/conduit/internal/model/user"

	"gorm.io/gorm"
)

// GetModels 返回所有需要迁移的模型
func GetModels() []interface{} {
	return []interface{}{
		// 用户与关注关系
		&user.User{},
		&user.Follow{},
		// 文章相关模型
		&article.Article{},
		&article.Tag{},
		&article.ArticleTag{},
		&article.Favorite{},
		// 评论
		&comment.Comment{},
	}
}

func InitTable(db *gorm.DB) error {
	if err := db.AutoMigrate(GetModels()...); err != nil {
		return fmt.Errorf("数据库表迁移失败: %w", err)
	}
	return nil
}
