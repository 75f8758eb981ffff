package social

import (
	"context"
	"fmt"

	articleModel "terminal-terrace/conduit/internal/model/article"
	userModel "terminal-terrace/conduit/internal/model/user"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SocialRepository 关注与收藏两张关系表
type SocialRepository struct {
	db *gorm.DB
}

func NewSocialRepository(db *gorm.DB) *SocialRepository {
	return &SocialRepository{db: db}
}

// ===== 关注 =====

// InsertFollow 已存在时什么也不做，返回是否新建了关系
func (r *SocialRepository) InsertFollow(ctx context.Context, followerID, followeeID uint) (bool, error) {
	edge := &userModel.Follow{FollowerID: followerID, FolloweeID: followeeID}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(edge)
	return result.RowsAffected == 1, result.Error
}

// DeleteFollow 返回是否真的删除了关系
func (r *SocialRepository) DeleteFollow(ctx context.Context, followerID, followeeID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&userModel.Follow{})
	return result.RowsAffected == 1, result.Error
}

func (r *SocialRepository) FollowExists(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&userModel.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	return count > 0, err
}

// FollowedAmong 返回 candidates 中被 followerID 关注的 id 集合
func (r *SocialRepository) FollowedAmong(ctx context.Context, followerID uint, candidates []uint) (map[uint]bool, error) {
	result := make(map[uint]bool)
	if followerID == 0 || len(candidates) == 0 {
		return result, nil
	}

	var ids []uint
	err := r.db.WithContext(ctx).Model(&userModel.Follow{}).
		Where("follower_id = ? AND followee_id IN ?", followerID, candidates).
		Pluck("followee_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

func (r *SocialRepository) Followees(ctx context.Context, followerID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&userModel.Follow{}).
		Where("follower_id = ?", followerID).
		Order("followee_id").
		Pluck("followee_id", &ids).Error
	return ids, err
}

// ===== 收藏 =====

func (r *SocialRepository) InsertFavorite(ctx context.Context, userID, articleID uint) error {
	fav := &articleModel.Favorite{UserID: userID, ArticleID: articleID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(fav).Error
}

func (r *SocialRepository) DeleteFavorite(ctx context.Context, userID, articleID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Delete(&articleModel.Favorite{}).Error
}

func (r *SocialRepository) FavoriteExists(ctx context.Context, userID, articleID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&articleModel.Favorite{}).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Count(&count).Error
	return count > 0, err
}

// FavoriteCounts 批量统计收藏数，没有收藏的文章不出现在结果中
func (r *SocialRepository) FavoriteCounts(ctx context.Context, articleIDs []uint) (map[uint]int64, error) {
	result := make(map[uint]int64, len(articleIDs))
	if len(articleIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		ArticleID uint
		Count     int64
	}
	err := r.db.WithContext(ctx).Model(&articleModel.Favorite{}).
		Select("article_id, COUNT(*) AS count").
		Where("article_id IN ?", articleIDs).
		Group("article_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.ArticleID] = row.Count
	}
	return result, nil
}

// FavoritedAmong 返回 articleIDs 中被 userID 收藏的集合
func (r *SocialRepository) FavoritedAmong(ctx context.Context, userID uint, articleIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool)
	if userID == 0 || len(articleIDs) == 0 {
		return result, nil
	}

	var ids []uint
	err := r.db.WithContext(ctx).Model(&articleModel.Favorite{}).
		Where("user_id = ? AND article_id IN ?", userID, articleIDs).
		Pluck("article_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

// DeleteFavoritesOf 删除文章的全部收藏，在删除文章的事务中调用
func DeleteFavoritesOf(tx *gorm.DB, articleID uint) error {
	if err := tx.Where("article_id = ?", articleID).Delete(&articleModel.Favorite{}).Error; err != nil {
		return fmt.Errorf("删除收藏失败: %w", err)
	}
	return nil
}
