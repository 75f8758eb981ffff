package user

import (
	"context"
	"testing"

	"terminal-terrace/conduit/internal/errs"
	"terminal-terrace/conduit/internal/testutils"
	authsdk "terminal-terrace/conduit/packages/auth-sdk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) (*UserService, *UserRepository, *authsdk.Issuer) {
	t.Helper()
	db := testutils.SetupTestDB(t)
	repo := NewUserRepository(db)
	issuer := authsdk.NewIssuer("user-test-secret", 0)
	return NewUserService(repo, issuer, WithBcryptCost(bcrypt.MinCost)), repo, issuer
}

func TestUserService_Register(t *testing.T) {
	svc, repo, issuer := newTestService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, RegisterInput{Username: "jake", Email: "Jake@Jake.jake", Password: "jakejake"})
	require.NoError(t, err)
	assert.Equal(t, "jake", result.User.Username)
	assert.Equal(t, "jake@jake.jake", result.User.Email)
	assert.NotEqual(t, "jakejake", result.User.PasswordHash)

	uc, err := issuer.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, uc.UserID)

	stored, err := repo.FindByUsername(ctx, "jake")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, stored.ID)
}

func TestUserService_RegisterValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "jake", Email: "jake@jake.jake", Password: "jakejake"})
	require.NoError(t, err)

	tests := []struct {
		name string
		in   RegisterInput
		want error
	}{
		{"用户名为空", RegisterInput{Username: "  ", Email: "a@b.c", Password: "x"}, errs.Blank("username")},
		{"邮箱为空", RegisterInput{Username: "a", Email: "", Password: "x"}, errs.Blank("email")},
		{"密码为空", RegisterInput{Username: "a", Email: "a@b.c"}, errs.Blank("password")},
		{"用户名重复", RegisterInput{Username: "jake", Email: "other@jake.jake", Password: "x"}, errs.ErrDuplicateUsername},
		{"邮箱重复", RegisterInput{Username: "jill", Email: "JAKE@jake.jake", Password: "x"}, errs.ErrDuplicateEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUserService_Login(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{Username: "jake", Email: "jake@jake.jake", Password: "jakejake"})
	require.NoError(t, err)

	result, err := svc.Login(ctx, "jake@jake.jake", "jakejake")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, result.User.ID)
	assert.NotEmpty(t, result.Token)

	_, err = svc.Login(ctx, "jake@jake.jake", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@jake.jake", "jakejake")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_Update(t *testing.T) {
	svc, repo, issuer := newTestService(t)
	ctx := context.Background()
	db := repo.db

	jake := testutils.CreateTestUser(db, testutils.WithUsername("jake"))
	testutils.CreateTestUser(db, testutils.WithUsername("jill"), testutils.WithEmail("jill@jill.jill"))

	t.Run("更新资料并重新签发令牌", func(t *testing.T) {
		bio := "I work at statefarm"
		image := "https://example.com/jake.png"
		name := "jacob"
		result, err := svc.Update(ctx, jake, UpdateFields{Username: &name, Bio: &bio, Image: &image})
		require.NoError(t, err)

		stored, err := repo.FindByID(ctx, jake.ID)
		require.NoError(t, err)
		assert.Equal(t, "jacob", stored.Username)
		assert.Equal(t, bio, stored.Bio)
		require.NotNil(t, stored.Image)
		assert.Equal(t, image, *stored.Image)

		uc, err := issuer.Verify(result.Token)
		require.NoError(t, err)
		assert.Equal(t, "jacob", uc.Username)
	})

	t.Run("用户名被占用", func(t *testing.T) {
		name := "jill"
		_, err := svc.Update(ctx, jake, UpdateFields{Username: &name})
		assert.ErrorIs(t, err, errs.ErrDuplicateUsername)
	})

	t.Run("邮箱被占用", func(t *testing.T) {
		email := "jill@jill.jill"
		_, err := svc.Update(ctx, jake, UpdateFields{Email: &email})
		assert.ErrorIs(t, err, errs.ErrDuplicateEmail)
	})

	t.Run("保留自己的用户名不算冲突", func(t *testing.T) {
		stored, err := repo.FindByID(ctx, jake.ID)
		require.NoError(t, err)
		name := stored.Username
		_, err = svc.Update(ctx, stored, UpdateFields{Username: &name})
		assert.NoError(t, err)
	})

	t.Run("修改密码后可以登录", func(t *testing.T) {
		stored, err := repo.FindByID(ctx, jake.ID)
		require.NoError(t, err)
		password := "newpassword"
		_, err = svc.Update(ctx, stored, UpdateFields{Password: &password})
		require.NoError(t, err)

		_, err = svc.Login(ctx, stored.Email, password)
		assert.NoError(t, err)
	})
}

func TestUserRepository_FindByID_NotFound(t *testing.T) {
	_, repo, _ := newTestService(t)
	_, err := repo.FindByID(context.Background(), 404)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
