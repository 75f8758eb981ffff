package tag

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

// Popular 按被使用的文章数倒序，同数量按名称排序；没有文章使用的标签不返回
func (r *TagRepository) Popular(ctx context.Context) ([]string, error) {
	names := []string{}
	err := r.db.WithContext(ctx).Table("tags").
		Select("tags.name").
		Joins("JOIN article_tags ON article_tags.tag_id = tags.id").
		Group("tags.id, tags.name").
		Order("COUNT(DISTINCT article_tags.article_id) DESC").
		Order("tags.name ASC").
		Pluck("tags.name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("查询热门标签失败: %w", err)
	}
	return names, nil
}
