package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"terminal-terrace/conduit/internal/errs"
	userModel "terminal-terrace/conduit/internal/model/user"
	authsdk "terminal-terrace/conduit/packages/auth-sdk"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials 邮箱或密码错误，不区分具体原因
var ErrInvalidCredentials = &errs.ValidationError{Field: "email or password", Reason: "is invalid"}

// RegisterInput 注册参数
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// UserService 用户服务层
type UserService struct {
	repo       *UserRepository
	issuer     *authsdk.Issuer
	bcryptCost int
}

// UserServiceOption 服务配置项
type UserServiceOption func(*UserService)

// WithBcryptCost 测试中使用 bcrypt.MinCost 加速
func WithBcryptCost(cost int) UserServiceOption {
	return func(s *UserService) {
		s.bcryptCost = cost
	}
}

// NewUserService 创建用户服务实例
func NewUserService(repo *UserRepository, issuer *authsdk.Issuer, opts ...UserServiceOption) *UserService {
	s := &UserService{
		repo:       repo,
		issuer:     issuer,
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register 注册新用户并签发令牌
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if username == "" {
		return nil, errs.Blank("username")
	}
	if email == "" {
		return nil, errs.Blank("email")
	}
	if in.Password == "" {
		return nil, errs.Blank("password")
	}

	if err := s.ensureAvailable(ctx, username, email, 0); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("密码加密失败: %w", err)
	}

	u := &userModel.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, s.mapDuplicate(ctx, err, u)
	}

	return s.withToken(u)
}

// Login 邮箱 + 密码登录
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.withToken(u)
}

// Update 更新当前用户，用户名和邮箱变更时重新校验唯一性
func (s *UserService) Update(ctx context.Context, current *userModel.User, in UpdateFields) (*AuthResult, error) {
	u := *current

	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if username == "" {
			return nil, errs.Blank("username")
		}
		u.Username = username
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email == "" {
			return nil, errs.Blank("email")
		}
		u.Email = email
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, errs.Blank("password")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("密码加密失败: %w", err)
		}
		u.PasswordHash = string(hash)
	}
	if in.Bio != nil {
		u.Bio = *in.Bio
	}
	if in.Image != nil {
		if *in.Image == "" {
			u.Image = nil
		} else {
			image := *in.Image
			u.Image = &image
		}
	}

	if err := s.ensureAvailable(ctx, u.Username, u.Email, u.ID); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, &u); err != nil {
		return nil, s.mapDuplicate(ctx, err, &u)
	}

	// 令牌中包含用户名，更新后重新签发
	return s.withToken(&u)
}

// Token 为已存在的用户签发令牌
func (s *UserService) Token(u *userModel.User) (*AuthResult, error) {
	return s.withToken(u)
}

func (s *UserService) ensureAvailable(ctx context.Context, username, email string, excludeID uint) error {
	taken, err := s.repo.Taken(ctx, "username", username, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return errs.ErrDuplicateUsername
	}

	taken, err = s.repo.Taken(ctx, "email", email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return errs.ErrDuplicateEmail
	}
	return nil
}

// mapDuplicate 唯一索引冲突（并发注册）转换为校验错误
func (s *UserService) mapDuplicate(ctx context.Context, err error, u *userModel.User) error {
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("保存用户失败: %w", err)
	}
	if taken, terr := s.repo.Taken(ctx, "email", u.Email, u.ID); terr == nil && taken {
		return errs.ErrDuplicateEmail
	}
	return errs.ErrDuplicateUsername
}

func (s *UserService) withToken(u *userModel.User) (*AuthResult, error) {
	token, err := s.issuer.Issue(u.ID, u.Username)
	if err != nil {
		return nil, fmt.Errorf("签发令牌失败: %w", err)
	}
	return &AuthResult{User: u, Token: token}, nil
}
