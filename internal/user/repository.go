package user

import (
	"context"
	"errors"
	"fmt"

	"terminal-terrace/conduit/internal/errs"
	userModel "terminal-terrace/conduit/internal/model/user"

	"gorm.io/gorm"
)

// UserRepository 用户数据访问层
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库实例
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID 用户不存在时返回 errs.ErrNotFound
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*userModel.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*userModel.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*userModel.User, error) {
	return r.first(ctx, "email = ?", email)
}

// FindByIDs 批量查询，返回 id -> 用户
func (r *UserRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]*userModel.User, error) {
	result := make(map[uint]*userModel.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var users []userModel.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	for i := range users {
		result[users[i].ID] = &users[i]
	}
	return result, nil
}

// Taken 检查字段值是否已被其他用户占用
// column 只接受 username / email
func (r *UserRepository) Taken(ctx context.Context, column, value string, excludeID uint) (bool, error) {
	if column != "username" && column != "email" {
		return false, fmt.Errorf("不支持的字段: %s", column)
	}

	var count int64
	query := r.db.WithContext(ctx).Model(&userModel.User{}).Where(column+" = ?", value)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("检查%s唯一性失败: %w", column, err)
	}
	return count > 0, nil
}

func (r *UserRepository) Create(ctx context.Context, u *userModel.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) Update(ctx context.Context, u *userModel.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *UserRepository) first(ctx context.Context, query string, args ...any) (*userModel.User, error) {
	var u userModel.User
	err := r.db.WithContext(ctx).Where(query, args...).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user: %w", errs.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return &u, nil
}
