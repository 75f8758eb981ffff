package tag

import (
	"context"
	"testing"
	"time"

	"terminal-terrace/conduit/internal/article"
	"terminal-terrace/conduit/internal/testutils"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	tags []string
	hit  bool
	sets int
}

func (m *memoryCache) Get(context.Context) ([]string, bool) {
	return m.tags, m.hit
}

func (m *memoryCache) Set(_ context.Context, tags []string) {
	m.tags, m.hit = tags, true
	m.sets++
}

func TestTagService_Popular(t *testing.T) {
	db := testutils.SetupTestDB(t)
	ctx := context.Background()
	tags := article.NewTagRepository(db)

	jake := testutils.CreateTestUser(db)
	a1 := testutils.CreateTestArticle(db, jake.ID)
	a2 := testutils.CreateTestArticle(db, jake.ID)
	a3 := testutils.CreateTestArticle(db, jake.ID)

	require.NoError(t, tags.ReplaceArticleTags(ctx, a1.ID, []string{"go", "dragons", "zoo"}))
	require.NoError(t, tags.ReplaceArticleTags(ctx, a2.ID, []string{"go", "dragons"}))
	require.NoError(t, tags.ReplaceArticleTags(ctx, a3.ID, []string{"go", "alpha"}))
	// 不再被任何文章使用的标签
	require.NoError(t, tags.ReplaceArticleTags(ctx, a3.ID, []string{"go"}))
	require.NoError(t, tags.ReplaceArticleTags(ctx, a3.ID, []string{"go", "zoo"}))

	svc := NewTagService(NewTagRepository(db), nil)
	popular, err := svc.Popular(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "dragons", "zoo"}, popular)
}

func TestTagService_Cache(t *testing.T) {
	db := testutils.SetupTestDB(t)
	ctx := context.Background()
	tags := article.NewTagRepository(db)

	jake := testutils.CreateTestUser(db)
	art := testutils.CreateTestArticle(db, jake.ID)
	require.NoError(t, tags.ReplaceArticleTags(ctx, art.ID, []string{"go"}))

	cache := &memoryCache{}
	svc := NewTagService(NewTagRepository(db), cache)

	popular, err := svc.Popular(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, popular)
	assert.Equal(t, 1, cache.sets)

	// 命中缓存时不查询数据库
	require.NoError(t, tags.ReplaceArticleTags(ctx, art.ID, []string{"rust"}))
	popular, err = svc.Popular(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, popular)
	assert.Equal(t, 1, cache.sets)
}

func TestRedisCache_Unavailable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	cache := NewRedisCache(client, time.Minute)
	ctx := context.Background()

	assert.NotPanics(t, func() { cache.Set(ctx, []string{"go"}) })
	_, ok := cache.Get(ctx)
	assert.False(t, ok)
}
