package comment

import (
	"context"
	"errors"
	"fmt"

	"terminal-terrace/conduit/internal/errs"
	"terminal-terrace/conduit/internal/model/comment"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, c *comment.Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// GetInArticle 评论必须属于该文章，否则视为不存在
func (r *CommentRepository) GetInArticle(ctx context.Context, articleID, id uint) (*comment.Comment, error) {
	var c comment.Comment
	err := r.db.WithContext(ctx).Where("id = ? AND article_id = ?", id, articleID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("comment %d: %w", id, errs.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("查询评论失败: %w", err)
	}
	return &c, nil
}

// ListByArticle 最新的在前
func (r *CommentRepository) ListByArticle(ctx context.Context, articleID uint) ([]comment.Comment, error) {
	comments := []comment.Comment{}
	err := r.db.WithContext(ctx).
		Where("article_id = ?", articleID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("查询评论失败: %w", err)
	}
	return comments, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&comment.Comment{}, id).Error
}
