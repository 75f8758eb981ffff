package article

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"terminal-terrace/conduit/internal/model/article"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TagRepository 标签仓储层
type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

// NormalizeTags 去掉空白标签并去重，结果有序
func NormalizeTags(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	result := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// FindOrCreateTags 查找或创建标签
func (r *TagRepository) FindOrCreateTags(ctx context.Context, names []string) ([]article.Tag, error) {
	if len(names) == 0 {
		return nil, nil
	}
	db := r.db.WithContext(ctx)

	rows := make([]article.Tag, len(names))
	for i, name := range names {
		rows[i] = article.Tag{Name: name}
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
		return nil, fmt.Errorf("创建标签失败: %w", err)
	}

	var tags []article.Tag
	if err := db.Where("name IN ?", names).Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("查询标签失败: %w", err)
	}
	return tags, nil
}

// ReplaceArticleTags 用新的标签集合替换文章原有的标签
func (r *TagRepository) ReplaceArticleTags(ctx context.Context, articleID uint, names []string) error {
	tags, err := r.FindOrCreateTags(ctx, NormalizeTags(names))
	if err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	if err := db.Where("article_id = ?", articleID).Delete(&article.ArticleTag{}).Error; err != nil {
		return fmt.Errorf("移除文章标签失败: %w", err)
	}
	if len(tags) == 0 {
		return nil
	}

	links := make([]article.ArticleTag, len(tags))
	for i, tag := range tags {
		links[i] = article.ArticleTag{ArticleID: articleID, TagID: tag.ID}
	}
	if err := db.Create(&links).Error; err != nil {
		return fmt.Errorf("添加文章标签失败: %w", err)
	}
	return nil
}

// TagsOf 批量获取文章的标签名，按名称排序
func (r *TagRepository) TagsOf(ctx context.Context, articleIDs []uint) (map[uint][]string, error) {
	result := make(map[uint][]string, len(articleIDs))
	if len(articleIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		ArticleID uint
		Name      string
	}
	err := r.db.WithContext(ctx).Table("article_tags").
		Select("article_tags.article_id, tags.name").
		Joins("JOIN tags ON tags.id = article_tags.tag_id").
		Where("article_tags.article_id IN ?", articleIDs).
		Order("tags.name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("查询文章标签失败: %w", err)
	}
	for _, row := range rows {
		result[row.ArticleID] = append(result[row.ArticleID], row.Name)
	}
	return result, nil
}
