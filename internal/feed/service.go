// Package feed 关注作者的文章动态
package feed

import (
	"context"

	"terminal-terrace/conduit/internal/dto"
	"terminal-terrace/conduit/internal/model/article"
)

// FolloweeSource 查询用户关注的人
type FolloweeSource interface {
	FolloweesOf(ctx context.Context, userID uint) ([]uint, error)
}

// ArticleSource 按作者取文章并组装视图
type ArticleSource interface {
	ListByAuthors(ctx context.Context, authorIDs []uint, page dto.Page) ([]article.Article, int64, error)
	Present(ctx context.Context, viewerID uint, arts []article.Article) ([]dto.ArticleView, error)
}

type FeedService struct {
	followees FolloweeSource
	articles  ArticleSource
}

func NewFeedService(followees FolloweeSource, articles ArticleSource) *FeedService {
	return &FeedService{followees: followees, articles: articles}
}

// BuildFeed 关注作者的文章，按创建时间倒序
// 没有关注任何人时返回空列表
// 与并发的关注/取消关注之间不保证一致
func (s *FeedService) BuildFeed(ctx context.Context, userID uint, skip, limit int) (*dto.ArticleListView, error) {
	page := dto.NewPage(skip, limit)

	followees, err := s.followees.FolloweesOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(followees) == 0 {
		return &dto.ArticleListView{Articles: []dto.ArticleView{}}, nil
	}

	arts, total, err := s.articles.ListByAuthors(ctx, followees, page)
	if err != nil {
		return nil, err
	}
	views, err := s.articles.Present(ctx, userID, arts)
	if err != nil {
		return nil, err
	}
	return &dto.ArticleListView{Articles: views, ArticlesCount: total}, nil
}
