package route

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"terminal-terrace/conduit/internal/metrics"
	"terminal-terrace/conduit/internal/testutils"
	"terminal-terrace/conduit/internal/user"
	authsdk "terminal-terrace/conduit/packages/auth-sdk"
	"terminal-terrace/conduit/packages/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type client struct {
	t *testing.T
	r http.Handler
}

func newClient(t *testing.T) *client {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutils.SetupTestDB(t)
	r := SetupRouter(Dependencies{
		DB:          db,
		Issuer:      authsdk.NewIssuer("route-test-secret", 0),
		Metrics:     metrics.New(),
		UserOptions: []user.UserServiceOption{user.WithBcryptCost(bcrypt.MinCost)},
	})
	return &client{t: t, r: r}
}

// do 发送请求并解析响应信封，data 解码到 out
func (c *client) do(method, path, token string, body any, out any) int {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	w := httptest.NewRecorder()
	c.r.ServeHTTP(w, req)

	if out != nil && w.Code == http.StatusOK {
		envelope := response.Response{Data: out}
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String())
	}
	return w.Code
}

type userEnvelope struct {
	User struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Token    string `json:"token"`
	} `json:"user"`
}

type articleEnvelope struct {
	Article struct {
		Slug           string   `json:"slug"`
		Title          string   `json:"title"`
		TagList        []string `json:"tag_list"`
		Favorited      bool     `json:"favorited"`
		FavoritesCount int64    `json:"favorites_count"`
		Author         struct {
			Username  string `json:"username"`
			Following bool   `json:"following"`
		} `json:"author"`
	} `json:"article"`
}

type listEnvelope struct {
	Articles []struct {
		Slug string `json:"slug"`
	} `json:"articles"`
	ArticlesCount int64 `json:"articles_count"`
}

type profileEnvelope struct {
	Profile struct {
		Username  string `json:"username"`
		Following bool   `json:"following"`
	} `json:"profile"`
}

func (c *client) register(username string) string {
	c.t.Helper()
	var out userEnvelope
	code := c.do(http.MethodPost, "/api/users", "", gin.H{"user": gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": username + "-password",
	}}, &out)
	require.Equal(c.t, http.StatusOK, code)
	require.NotEmpty(c.t, out.User.Token)
	return out.User.Token
}

func TestConduitScenario(t *testing.T) {
	c := newClient(t)

	jake := c.register("jake")
	jill := c.register("jill")

	// 登录
	var login userEnvelope
	code := c.do(http.MethodPost, "/api/users/login", "", gin.H{"user": gin.H{
		"email": "jake@example.com", "password": "jake-password",
	}}, &login)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "jake", login.User.Username)

	code = c.do(http.MethodPost, "/api/users/login", "", gin.H{"user": gin.H{
		"email": "jake@example.com", "password": "wrong-password",
	}}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	// jill 发布文章
	var created articleEnvelope
	code = c.do(http.MethodPost, "/api/articles", jill, gin.H{"article": gin.H{
		"title":       "How to train your dragon",
		"description": "Ever wonder how?",
		"body":        "You have to believe",
		"tag_list":    []string{"dragons", "training"},
	}}, &created)
	require.Equal(t, http.StatusOK, code)
	slug := created.Article.Slug
	assert.Equal(t, "how-to-train-your-dragon", slug)
	assert.Equal(t, []string{"dragons", "training"}, created.Article.TagList)

	// 同名文章
	code = c.do(http.MethodPost, "/api/articles", jake, gin.H{"article": gin.H{
		"title": "How to Train Your Dragon", "body": "copy",
	}}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	// 匿名创建
	code = c.do(http.MethodPost, "/api/articles", "", gin.H{"article": gin.H{"title": "x", "body": "y"}}, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	// jake 关注 jill 之前动态为空
	var feed listEnvelope
	code = c.do(http.MethodGet, "/api/articles/feed", jake, nil, &feed)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, feed.Articles)

	var prof profileEnvelope
	code = c.do(http.MethodPost, "/api/profiles/jill/follow", jake, nil, &prof)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, prof.Profile.Following)

	code = c.do(http.MethodGet, "/api/articles/feed", jake, nil, &feed)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, feed.Articles, 1)
	assert.Equal(t, slug, feed.Articles[0].Slug)
	assert.Equal(t, int64(1), feed.ArticlesCount)

	// 文章详情中的 following 相对于访问者
	var got articleEnvelope
	code = c.do(http.MethodGet, "/api/articles/"+slug, jake, nil, &got)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, got.Article.Author.Following)

	code = c.do(http.MethodGet, "/api/articles/"+slug, "", nil, &got)
	require.Equal(t, http.StatusOK, code)
	assert.False(t, got.Article.Author.Following)

	// jake 不能修改或删除 jill 的文章
	code = c.do(http.MethodPut, "/api/articles/"+slug, jake, gin.H{"article": gin.H{"title": "Hijacked"}}, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code = c.do(http.MethodDelete, "/api/articles/"+slug, jake, nil, nil)
	assert.Equal(t, http.StatusForbidden, code)

	// 收藏
	var fav articleEnvelope
	code = c.do(http.MethodPost, "/api/articles/"+slug+"/favorite", jake, nil, &fav)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, fav.Article.Favorited)
	assert.Equal(t, int64(1), fav.Article.FavoritesCount)

	var list listEnvelope
	code = c.do(http.MethodGet, "/api/articles?favorited=jake", "", nil, &list)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(1), list.ArticlesCount)

	// 评论
	var comment struct {
		Comment struct {
			ID uint `json:"id"`
		} `json:"comment"`
	}
	code = c.do(http.MethodPost, "/api/articles/"+slug+"/comments", jake, gin.H{"comment": gin.H{"body": "Thank you so much!"}}, &comment)
	require.Equal(t, http.StatusOK, code)

	code = c.do(http.MethodDelete, "/api/articles/"+slug+"/comments/"+itoa(comment.Comment.ID), jill, nil, nil)
	assert.Equal(t, http.StatusForbidden, code)

	// 标签
	var tags struct {
		Tags []string `json:"tags"`
	}
	code = c.do(http.MethodGet, "/api/tags", "", nil, &tags)
	require.Equal(t, http.StatusOK, code)
	assert.ElementsMatch(t, []string{"dragons", "training"}, tags.Tags)

	// jill 修改标题后 slug 变化
	var updated articleEnvelope
	code = c.do(http.MethodPut, "/api/articles/"+slug, jill, gin.H{"article": gin.H{"title": "Did you train your dragon?"}}, &updated)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "did-you-train-your-dragon", updated.Article.Slug)
	assert.Equal(t, []string{"dragons", "training"}, updated.Article.TagList)

	code = c.do(http.MethodGet, "/api/articles/"+slug, "", nil, nil)
	assert.Equal(t, http.StatusNotFound, code)

	// jill 删除文章，评论与收藏一并删除
	code = c.do(http.MethodDelete, "/api/articles/did-you-train-your-dragon", jill, nil, nil)
	require.Equal(t, http.StatusOK, code)

	code = c.do(http.MethodGet, "/api/articles/feed", jake, nil, &feed)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, feed.Articles)
}

func TestUpdateArticleOwnershipBeforeValidation(t *testing.T) {
	c := newClient(t)
	jake := c.register("jake")
	jill := c.register("jill")

	var created articleEnvelope
	code := c.do(http.MethodPost, "/api/articles", jill, gin.H{"article": gin.H{
		"title": "Owned by jill", "description": "d", "body": "b",
	}}, &created)
	require.Equal(t, http.StatusOK, code)
	path := "/api/articles/" + created.Article.Slug

	longTitle := strings.Repeat("x", 300)

	// 非作者即使请求体不合法也得到 403
	code = c.do(http.MethodPut, path, jake, gin.H{"article": gin.H{"title": longTitle}}, nil)
	assert.Equal(t, http.StatusForbidden, code)

	// 作者本人提交同样的请求体才走到校验
	code = c.do(http.MethodPut, path, jill, gin.H{"article": gin.H{"title": longTitle}}, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	// 不存在的文章
	code = c.do(http.MethodPut, "/api/articles/missing", jake, gin.H{"article": gin.H{"title": longTitle}}, nil)
	assert.Equal(t, http.StatusNotFound, code)

	var got articleEnvelope
	code = c.do(http.MethodGet, path, "", nil, &got)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Owned by jill", got.Article.Title)
}

func TestCurrentUserEndpoints(t *testing.T) {
	c := newClient(t)
	jake := c.register("jake")

	var me userEnvelope
	code := c.do(http.MethodGet, "/api/user", jake, nil, &me)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "jake@example.com", me.User.Email)

	code = c.do(http.MethodGet, "/api/user", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code = c.do(http.MethodGet, "/api/user", "not-a-token", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	var updated userEnvelope
	code = c.do(http.MethodPut, "/api/user", jake, gin.H{"user": gin.H{"username": "jacob"}}, &updated)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "jacob", updated.User.Username)

	// 新令牌可用
	code = c.do(http.MethodGet, "/api/user", updated.User.Token, nil, &me)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "jacob", me.User.Username)

	// 重复注册
	code = c.do(http.MethodPost, "/api/users", "", gin.H{"user": gin.H{
		"username": "jacob", "email": "other@example.com", "password": "password-123",
	}}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	// 请求体缺少字段
	code = c.do(http.MethodPost, "/api/users", "", gin.H{"user": gin.H{"username": "x"}}, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestInfraEndpoints(t *testing.T) {
	c := newClient(t)

	for _, path := range []string{"/healthz", "/metrics", "/swagger/doc.json"} {
		w := httptest.NewRecorder()
		c.r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	code := c.do(http.MethodGet, "/api/profiles/nobody", "", nil, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
