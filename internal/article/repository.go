package article

import (
	"context"
	"errors"
	"fmt"

	"terminal-terrace/conduit/internal/errs"
	"terminal-terrace/conduit/internal/model/article"
	"terminal-terrace/conduit/internal/model/comment"
	userModel "terminal-terrace/conduit/internal/model/user"

	"gorm.io/gorm"
)

// ListFilter 文章列表过滤条件，多个条件取交集
type ListFilter struct {
	Tag       string
	Author    string
	Favorited string
	Offset    int
	Limit     int
}

// ArticleRepository 文章仓储层
type ArticleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// ===== Article 基础操作 =====

// GetBySlug 不存在时返回 errs.ErrNotFound
func (r *ArticleRepository) GetBySlug(ctx context.Context, slug string) (*article.Article, error) {
	var art article.Article
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&art).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("article %q: %w", slug, errs.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("查询文章失败: %w", err)
	}
	return &art, nil
}

// SlugTaken 检查 slug 是否被其他文章占用
func (r *ArticleRepository) SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&article.Article{}).Where("slug = ?", slug)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("检查 slug 失败: %w", err)
	}
	return count > 0, nil
}

func (r *ArticleRepository) Create(ctx context.Context, art *article.Article) error {
	return r.db.WithContext(ctx).Create(art).Error
}

func (r *ArticleRepository) Update(ctx context.Context, art *article.Article) error {
	return r.db.WithContext(ctx).Save(art).Error
}

// Delete 级联删除评论、标签关联，收藏由 social 删除
func (r *ArticleRepository) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("article_id = ?", id).Delete(&comment.Comment{}).Error; err != nil {
		return fmt.Errorf("删除评论失败: %w", err)
	}
	if err := db.Where("article_id = ?", id).Delete(&article.ArticleTag{}).Error; err != nil {
		return fmt.Errorf("删除标签关联失败: %w", err)
	}
	if err := db.Delete(&article.Article{}, id).Error; err != nil {
		return fmt.Errorf("删除文章失败: %w", err)
	}
	return nil
}

// List 按条件过滤，按创建时间倒序
func (r *ArticleRepository) List(ctx context.Context, f ListFilter) ([]article.Article, int64, error) {
	db := r.db.WithContext(ctx)
	query := db.Model(&article.Article{})

	if f.Tag != "" {
		tagged := db.Table("article_tags").
			Select("article_tags.article_id").
			Joins("JOIN tags ON tags.id = article_tags.tag_id").
			Where("tags.name = ?", f.Tag)
		query = query.Where("articles.id IN (?)", tagged)
	}
	if f.Author != "" {
		authors := db.Model(&userModel.User{}).Select("id").Where("username = ?", f.Author)
		query = query.Where("articles.author_id IN (?)", authors)
	}
	if f.Favorited != "" {
		favorited := db.Table("favorites").
			Select("favorites.article_id").
			Joins("JOIN users ON users.id = favorites.user_id").
			Where("users.username = ?", f.Favorited)
		query = query.Where("articles.id IN (?)", favorited)
	}

	return r.page(query, f.Offset, f.Limit)
}

// ListByAuthors 作者集合内的文章，按创建时间倒序
func (r *ArticleRepository) ListByAuthors(ctx context.Context, authorIDs []uint, offset, limit int) ([]article.Article, int64, error) {
	if len(authorIDs) == 0 {
		return []article.Article{}, 0, nil
	}
	query := r.db.WithContext(ctx).Model(&article.Article{}).Where("articles.author_id IN ?", authorIDs)
	return r.page(query, offset, limit)
}

func (r *ArticleRepository) page(query *gorm.DB, offset, limit int) ([]article.Article, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("统计文章失败: %w", err)
	}

	articles := []article.Article{}
	err := query.
		Order("articles.created_at DESC").
		Order("articles.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&articles).Error
	if err != nil {
		return nil, 0, fmt.Errorf("查询文章失败: %w", err)
	}
	return articles, total, nil
}
