package article

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"terminal-terrace/conduit/internal/dto"
	"terminal-terrace/conduit/internal/errs"
	"terminal-terrace/conduit/internal/events"
	"terminal-terrace/conduit/internal/model/article"
	"terminal-terrace/conduit/internal/social"
	"terminal-terrace/conduit/internal/user"

	"gorm.io/gorm"
)

// CreateInput 创建文章参数
type CreateInput struct {
	Title       string
	Description string
	Body        string
	Tags        []string
}

// UpdateInput nil 字段保持不变，Tags 为 nil 时不修改标签
type UpdateInput struct {
	Title       *string
	Description *string
	Body        *string
	Tags        []string
}

type ArticleService struct {
	db        *gorm.DB
	repo      *ArticleRepository
	tagRepo   *TagRepository
	users     *user.UserRepository
	social    *social.SocialService
	publisher events.Publisher
}

func NewArticleService(
	db *gorm.DB,
	users *user.UserRepository,
	socialService *social.SocialService,
	publisher events.Publisher,
) *ArticleService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &ArticleService{
		db:        db,
		repo:      NewArticleRepository(db),
		tagRepo:   NewTagRepository(db),
		users:     users,
		social:    socialService,
		publisher: publisher,
	}
}

// Create 创建文章，slug 由标题生成且必须唯一
func (s *ArticleService) Create(ctx context.Context, authorID uint, in CreateInput) (*article.Article, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, errs.Blank("title")
	}
	if strings.TrimSpace(in.Body) == "" {
		return nil, errs.Blank("body")
	}

	slug, err := s.availableSlug(ctx, title, 0)
	if err != nil {
		return nil, err
	}

	art := &article.Article{
		Title:       title,
		Slug:        slug,
		Description: in.Description,
		Body:        in.Body,
		AuthorID:    authorID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := NewArticleRepository(tx).Create(ctx, art); err != nil {
			return mapSlugConflict(err)
		}
		return NewTagRepository(tx).ReplaceArticleTags(ctx, art.ID, in.Tags)
	})
	if err != nil {
		return nil, err
	}

	events.Emit(ctx, s.publisher, events.New(events.ArticleCreated, art.Slug, map[string]any{
		"article_id": art.ID,
		"author_id":  art.AuthorID,
		"title":      art.Title,
	}))
	return art, nil
}

// Update 只有作者本人可以修改，所有权在应用任何字段之前检查
func (s *ArticleService) Update(ctx context.Context, slug string, callerID uint, in UpdateInput) (*article.Article, error) {
	art, err := s.ownedArticle(ctx, slug, callerID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, errs.Blank("title")
		}
		if title != art.Title {
			newSlug, err := s.availableSlug(ctx, title, art.ID)
			if err != nil {
				return nil, err
			}
			art.Title = title
			art.Slug = newSlug
		}
	}
	if in.Description != nil {
		art.Description = *in.Description
	}
	if in.Body != nil {
		if strings.TrimSpace(*in.Body) == "" {
			return nil, errs.Blank("body")
		}
		art.Body = *in.Body
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := NewArticleRepository(tx).Update(ctx, art); err != nil {
			return mapSlugConflict(err)
		}
		if in.Tags == nil {
			return nil
		}
		return NewTagRepository(tx).ReplaceArticleTags(ctx, art.ID, in.Tags)
	})
	if err != nil {
		return nil, err
	}
	return art, nil
}

// Destroy 只有作者本人可以删除，评论、标签关联和收藏在同一事务中删除
func (s *ArticleService) Destroy(ctx context.Context, slug string, callerID uint) error {
	art, err := s.ownedArticle(ctx, slug, callerID)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := social.DeleteFavoritesOf(tx.WithContext(ctx), art.ID); err != nil {
			return err
		}
		return NewArticleRepository(tx).Delete(ctx, art.ID)
	})
	if err != nil {
		return err
	}

	events.Emit(ctx, s.publisher, events.New(events.ArticleDeleted, art.Slug, map[string]any{
		"article_id": art.ID,
		"author_id":  art.AuthorID,
	}))
	return nil
}

// FindBySlug 不存在时返回 errs.ErrNotFound
func (s *ArticleService) FindBySlug(ctx context.Context, slug string) (*article.Article, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// Get 单篇文章视图
func (s *ArticleService) Get(ctx context.Context, slug string, viewerID uint) (*dto.ArticleView, error) {
	art, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.presentOne(ctx, viewerID, art)
}

// List 文章列表
func (s *ArticleService) List(ctx context.Context, viewerID uint, f ListFilter) (*dto.ArticleListView, error) {
	page := dto.NewPage(f.Offset, f.Limit)
	f.Offset, f.Limit = page.Offset, page.Limit

	arts, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	views, err := s.Present(ctx, viewerID, arts)
	if err != nil {
		return nil, err
	}
	return &dto.ArticleListView{Articles: views, ArticlesCount: total}, nil
}

// ListByAuthors 给定作者集合的文章，按创建时间倒序，用于构建动态
func (s *ArticleService) ListByAuthors(ctx context.Context, authorIDs []uint, page dto.Page) ([]article.Article, int64, error) {
	return s.repo.ListByAuthors(ctx, authorIDs, page.Offset, page.Limit)
}

// Favorite 收藏并返回最新视图
func (s *ArticleService) Favorite(ctx context.Context, slug string, userID uint) (*dto.ArticleView, error) {
	art, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := s.social.Favorite(ctx, userID, art.ID); err != nil {
		return nil, err
	}
	return s.presentOne(ctx, userID, art)
}

// Unfavorite 取消收藏并返回最新视图
func (s *ArticleService) Unfavorite(ctx context.Context, slug string, userID uint) (*dto.ArticleView, error) {
	art, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := s.social.Unfavorite(ctx, userID, art.ID); err != nil {
		return nil, err
	}
	return s.presentOne(ctx, userID, art)
}

// Present 批量组装文章视图：作者资料、标签、收藏数、当前访问者的收藏与关注状态
func (s *ArticleService) Present(ctx context.Context, viewerID uint, arts []article.Article) ([]dto.ArticleView, error) {
	views := make([]dto.ArticleView, 0, len(arts))
	if len(arts) == 0 {
		return views, nil
	}

	articleIDs := make([]uint, len(arts))
	authorIDs := make([]uint, 0, len(arts))
	seenAuthor := make(map[uint]bool)
	for i, a := range arts {
		articleIDs[i] = a.ID
		if !seenAuthor[a.AuthorID] {
			seenAuthor[a.AuthorID] = true
			authorIDs = append(authorIDs, a.AuthorID)
		}
	}

	authors, err := s.users.FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	tags, err := s.tagRepo.TagsOf(ctx, articleIDs)
	if err != nil {
		return nil, err
	}
	counts, err := s.social.FavoritesCounts(ctx, articleIDs)
	if err != nil {
		return nil, err
	}
	favorited, err := s.social.FavoritedAmong(ctx, viewerID, articleIDs)
	if err != nil {
		return nil, err
	}
	following, err := s.social.FollowingAmong(ctx, viewerID, authorIDs)
	if err != nil {
		return nil, err
	}

	for _, a := range arts {
		author, ok := authors[a.AuthorID]
		if !ok {
			return nil, fmt.Errorf("文章 %d 的作者 %d 不存在", a.ID, a.AuthorID)
		}
		tagList := tags[a.ID]
		if tagList == nil {
			tagList = []string{}
		}
		views = append(views, dto.ArticleView{
			Slug:           a.Slug,
			Title:          a.Title,
			Description:    a.Description,
			Body:           a.Body,
			TagList:        tagList,
			CreatedAt:      a.CreatedAt,
			UpdatedAt:      a.UpdatedAt,
			Favorited:      favorited[a.ID],
			FavoritesCount: counts[a.ID],
			Author:         dto.NewProfileView(author, following[a.AuthorID]),
		})
	}
	return views, nil
}

func (s *ArticleService) presentOne(ctx context.Context, viewerID uint, art *article.Article) (*dto.ArticleView, error) {
	views, err := s.Present(ctx, viewerID, []article.Article{*art})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Authorize 检查 callerID 是否为文章作者，不做任何修改
func (s *ArticleService) Authorize(ctx context.Context, slug string, callerID uint) error {
	_, err := s.ownedArticle(ctx, slug, callerID)
	return err
}

// ownedArticle 文章不存在返回 ErrNotFound，调用者不是作者返回 ErrForbidden
func (s *ArticleService) ownedArticle(ctx context.Context, slug string, callerID uint) (*article.Article, error) {
	art, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if art.AuthorID != callerID {
		return nil, errs.ErrForbidden
	}
	return art, nil
}

func (s *ArticleService) availableSlug(ctx context.Context, title string, excludeID uint) (string, error) {
	slug := Slugify(title)
	if slug == "" {
		return "", errs.Invalid("title")
	}
	taken, err := s.repo.SlugTaken(ctx, slug, excludeID)
	if err != nil {
		return "", err
	}
	if taken {
		return "", errs.ErrDuplicateSlug
	}
	return slug, nil
}

// mapSlugConflict 唯一索引冲突说明并发创建了同一 slug
func mapSlugConflict(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.ErrDuplicateSlug
	}
	return fmt.Errorf("保存文章失败: %w", err)
}
