// Package tag 标签列表
package tag

import "context"

type TagService struct {
	repo  *TagRepository
	cache Cache
}

// NewTagService cache 为 nil 时每次都查询数据库
func NewTagService(repo *TagRepository, cache Cache) *TagService {
	return &TagService{repo: repo, cache: cache}
}

// Popular 热门标签，缓存过期前新增的标签可能不可见
func (s *TagService) Popular(ctx context.Context) ([]string, error) {
	if s.cache != nil {
		if tags, ok := s.cache.Get(ctx); ok {
			return tags, nil
		}
	}

	tags, err := s.repo.Popular(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, tags)
	}
	return tags, nil
}
