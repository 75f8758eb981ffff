// Package profile 用户公开资料与关注操作
package profile

import (
	"context"

	"terminal-terrace/conduit/internal/dto"
	"terminal-terrace/conduit/internal/social"
	"terminal-terrace/conduit/internal/user"
)

type ProfileService struct {
	users  *user.UserRepository
	social *social.SocialService
}

func NewProfileService(users *user.UserRepository, socialService *social.SocialService) *ProfileService {
	return &ProfileService{users: users, social: socialService}
}

// Show 用户资料，following 相对于 viewerID（匿名为 0）
func (s *ProfileService) Show(ctx context.Context, username string, viewerID uint) (*dto.ProfileView, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	following, err := s.social.IsFollowing(ctx, viewerID, u.ID)
	if err != nil {
		return nil, err
	}
	view := dto.NewProfileView(u, following)
	return &view, nil
}

// Follow 关注用户，返回关注后的资料
func (s *ProfileService) Follow(ctx context.Context, username string, followerID uint) (*dto.ProfileView, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	following, err := s.social.Follow(ctx, followerID, u.ID)
	if err != nil {
		return nil, err
	}
	view := dto.NewProfileView(u, following)
	return &view, nil
}

// Unfollow 取消关注，返回取消后的资料
func (s *ProfileService) Unfollow(ctx context.Context, username string, followerID uint) (*dto.ProfileView, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	following, err := s.social.Unfollow(ctx, followerID, u.ID)
	if err != nil {
		return nil, err
	}
	view := dto.NewProfileView(u, following)
	return &view, nil
}
