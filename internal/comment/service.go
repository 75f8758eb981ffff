// Package comment 文章评论
package comment

import (
	"context"
	"fmt"
	"strings"

	"terminal-terrace/conduit/internal/article"
	"terminal-terrace/conduit/internal/dto"
	"terminal-terrace/conduit/internal/errs"
	"terminal-terrace/conduit/internal/model/comment"
	"terminal-terrace/conduit/internal/social"
	"terminal-terrace/conduit/internal/user"
)

type CommentService struct {
	repo     *CommentRepository
	articles *article.ArticleService
	users    *user.UserRepository
	social   *social.SocialService
}

func NewCommentService(
	repo *CommentRepository,
	articles *article.ArticleService,
	users *user.UserRepository,
	socialService *social.SocialService,
) *CommentService {
	return &CommentService{
		repo:     repo,
		articles: articles,
		users:    users,
		social:   socialService,
	}
}

// List 文章的全部评论，最新的在前
func (s *CommentService) List(ctx context.Context, slug string, viewerID uint) ([]dto.CommentView, error) {
	art, err := s.articles.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	comments, err := s.repo.ListByArticle(ctx, art.ID)
	if err != nil {
		return nil, err
	}
	return s.present(ctx, viewerID, comments)
}

// Create 发表评论
func (s *CommentService) Create(ctx context.Context, slug string, authorID uint, body string) (*dto.CommentView, error) {
	if strings.TrimSpace(body) == "" {
		return nil, errs.Blank("body")
	}

	art, err := s.articles.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	c := &comment.Comment{ArticleID: art.ID, AuthorID: authorID, Body: body}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("保存评论失败: %w", err)
	}

	views, err := s.present(ctx, authorID, []comment.Comment{*c})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Delete 只能删除自己的评论
func (s *CommentService) Delete(ctx context.Context, slug string, id uint, callerID uint) error {
	art, err := s.articles.FindBySlug(ctx, slug)
	if err != nil {
		return err
	}
	c, err := s.repo.GetInArticle(ctx, art.ID, id)
	if err != nil {
		return err
	}
	if c.AuthorID != callerID {
		return errs.ErrForbidden
	}
	if err := s.repo.Delete(ctx, c.ID); err != nil {
		return fmt.Errorf("删除评论失败: %w", err)
	}
	return nil
}

func (s *CommentService) present(ctx context.Context, viewerID uint, comments []comment.Comment) ([]dto.CommentView, error) {
	views := make([]dto.CommentView, 0, len(comments))
	if len(comments) == 0 {
		return views, nil
	}

	authorIDs := make([]uint, 0, len(comments))
	for _, c := range comments {
		authorIDs = append(authorIDs, c.AuthorID)
	}
	authors, err := s.users.FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	following, err := s.social.FollowingAmong(ctx, viewerID, authorIDs)
	if err != nil {
		return nil, err
	}

	for _, c := range comments {
		author, ok := authors[c.AuthorID]
		if !ok {
			return nil, fmt.Errorf("评论 %d 的作者 %d 不存在", c.ID, c.AuthorID)
		}
		views = append(views, dto.CommentView{
			ID:        c.ID,
			Body:      c.Body,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
			Author:    dto.NewProfileView(author, following[c.AuthorID]),
		})
	}
	return views, nil
}
