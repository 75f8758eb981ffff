package profile

import (
	"context"
	"testing"

	"terminal-terrace/conduit/internal/errs"
	"terminal-terrace/conduit/internal/social"
	"terminal-terrace/conduit/internal/testutils"
	"terminal-terrace/conduit/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService(t *testing.T) {
	db := testutils.SetupTestDB(t)
	ctx := context.Background()
	svc := NewProfileService(user.NewUserRepository(db), social.NewSocialService(social.NewSocialRepository(db), nil))

	jake := testutils.CreateTestUser(db, testutils.WithUsername("jake"))
	testutils.CreateTestUser(db, testutils.WithUsername("jill"), testutils.WithBio("hello"))

	view, err := svc.Show(ctx, "jill", jake.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", view.Bio)
	assert.False(t, view.Following)

	view, err = svc.Follow(ctx, "jill", jake.ID)
	require.NoError(t, err)
	assert.True(t, view.Following)

	view, err = svc.Show(ctx, "jill", jake.ID)
	require.NoError(t, err)
	assert.True(t, view.Following)

	// 匿名访问者
	view, err = svc.Show(ctx, "jill", 0)
	require.NoError(t, err)
	assert.False(t, view.Following)

	// 关注自己静默忽略
	view, err = svc.Follow(ctx, "jake", jake.ID)
	require.NoError(t, err)
	assert.False(t, view.Following)

	view, err = svc.Unfollow(ctx, "jill", jake.ID)
	require.NoError(t, err)
	assert.False(t, view.Following)

	_, err = svc.Show(ctx, "nobody", 0)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	_, err = svc.Follow(ctx, "nobody", jake.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
