// Package social 关注与收藏关系
package social

import (
	"context"
	"fmt"
	"strconv"

	"terminal-terrace/conduit/internal/events"
)

// SocialService 关注、收藏的幂等操作
type SocialService struct {
	repo      *SocialRepository
	publisher events.Publisher
}

func NewSocialService(repo *SocialRepository, publisher events.Publisher) *SocialService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &SocialService{repo: repo, publisher: publisher}
}

// Follow 关注，返回操作后的关注状态
// 关注自己静默忽略，重复关注不报错也不发事件
func (s *SocialService) Follow(ctx context.Context, followerID, followeeID uint) (bool, error) {
	if followerID == followeeID {
		return false, nil
	}
	created, err := s.repo.InsertFollow(ctx, followerID, followeeID)
	if err != nil {
		return false, fmt.Errorf("关注失败: %w", err)
	}
	if !created {
		return true, nil
	}

	events.Emit(ctx, s.publisher, events.New(events.UserFollowed, strconv.FormatUint(uint64(followeeID), 10), map[string]uint{
		"follower_id": followerID,
		"followee_id": followeeID,
	}))
	return true, nil
}

// Unfollow 取消关注，返回操作后的关注状态
func (s *SocialService) Unfollow(ctx context.Context, followerID, followeeID uint) (bool, error) {
	removed, err := s.repo.DeleteFollow(ctx, followerID, followeeID)
	if err != nil {
		return false, fmt.Errorf("取消关注失败: %w", err)
	}
	if !removed {
		return false, nil
	}

	events.Emit(ctx, s.publisher, events.New(events.UserUnfollowed, strconv.FormatUint(uint64(followeeID), 10), map[string]uint{
		"follower_id": followerID,
		"followee_id": followeeID,
	}))
	return false, nil
}

// IsFollowing 匿名访问者（id 为 0）永远为 false
func (s *SocialService) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	if followerID == 0 || followerID == followeeID {
		return false, nil
	}
	ok, err := s.repo.FollowExists(ctx, followerID, followeeID)
	if err != nil {
		return false, fmt.Errorf("查询关注关系失败: %w", err)
	}
	return ok, nil
}

// FollowingAmong 批量判断 viewer 是否关注 authorIDs
func (s *SocialService) FollowingAmong(ctx context.Context, viewerID uint, authorIDs []uint) (map[uint]bool, error) {
	m, err := s.repo.FollowedAmong(ctx, viewerID, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("查询关注关系失败: %w", err)
	}
	return m, nil
}

// FolloweesOf 用户关注的所有人
func (s *SocialService) FolloweesOf(ctx context.Context, userID uint) ([]uint, error) {
	ids, err := s.repo.Followees(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("查询关注列表失败: %w", err)
	}
	return ids, nil
}

// Favorite 收藏，幂等
func (s *SocialService) Favorite(ctx context.Context, userID, articleID uint) error {
	if err := s.repo.InsertFavorite(ctx, userID, articleID); err != nil {
		return fmt.Errorf("收藏失败: %w", err)
	}
	return nil
}

// Unfavorite 取消收藏，幂等
func (s *SocialService) Unfavorite(ctx context.Context, userID, articleID uint) error {
	if err := s.repo.DeleteFavorite(ctx, userID, articleID); err != nil {
		return fmt.Errorf("取消收藏失败: %w", err)
	}
	return nil
}

func (s *SocialService) IsFavorited(ctx context.Context, userID, articleID uint) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	ok, err := s.repo.FavoriteExists(ctx, userID, articleID)
	if err != nil {
		return false, fmt.Errorf("查询收藏失败: %w", err)
	}
	return ok, nil
}

func (s *SocialService) FavoritesCount(ctx context.Context, articleID uint) (int64, error) {
	counts, err := s.FavoritesCounts(ctx, []uint{articleID})
	if err != nil {
		return 0, err
	}
	return counts[articleID], nil
}

// FavoritesCounts 批量统计收藏数
func (s *SocialService) FavoritesCounts(ctx context.Context, articleIDs []uint) (map[uint]int64, error) {
	counts, err := s.repo.FavoriteCounts(ctx, articleIDs)
	if err != nil {
		return nil, fmt.Errorf("统计收藏数失败: %w", err)
	}
	return counts, nil
}

// FavoritedAmong 批量判断是否收藏
func (s *SocialService) FavoritedAmong(ctx context.Context, userID uint, articleIDs []uint) (map[uint]bool, error) {
	m, err := s.repo.FavoritedAmong(ctx, userID, articleIDs)
	if err != nil {
		return nil, fmt.Errorf("查询收藏失败: %w", err)
	}
	return m, nil
}
