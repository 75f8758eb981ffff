package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"terminal-terrace/conduit/internal/errs"
	userModel "terminal-terrace/conduit/internal/model/user"
	authsdk "terminal-terrace/conduit/packages/auth-sdk"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "guard-test-secret"

type memoryStore map[uint]*userModel.User

func (m memoryStore) FindByID(_ context.Context, id uint) (*userModel.User, error) {
	if u, ok := m[id]; ok {
		return u, nil
	}
	return nil, errs.ErrNotFound
}

func newTestGuard(store memoryStore) (*Guard, *authsdk.Issuer) {
	issuer := authsdk.NewIssuer(testSecret, authsdk.DefaultTTL)
	return NewGuard(issuer, store), issuer
}

func newTestRouter(g *Guard) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())

	whoami := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": ViewerID(c)})
	}
	r.GET("/soft", g.Soft(), whoami)
	r.GET("/hard", g.Hard(), whoami)
	r.GET("/me", g.Hard(), func(c *gin.Context) {
		u, err := CurrentUser(c)
		if err != nil {
			c.Status(http.StatusUnauthorized)
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": u.Username})
	})
	return r
}

func do(r http.Handler, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestResolveCaller(t *testing.T) {
	g, issuer := newTestGuard(memoryStore{})
	ctx := context.Background()

	token, err := issuer.Issue(7, "jake")
	require.NoError(t, err)

	expired := authsdk.NewIssuer(testSecret, time.Hour, authsdk.WithClock(func() time.Time {
		return time.Now().Add(-2 * time.Hour)
	}))
	expiredToken, err := expired.Issue(7, "jake")
	require.NoError(t, err)

	foreignToken, err := authsdk.NewIssuer("other-secret", 0).Issue(7, "jake")
	require.NoError(t, err)

	tests := []struct {
		name       string
		credential string
		mode       Mode
		wantID     uint
		wantErr    error
		cause      error
	}{
		{"soft 无凭证为匿名", "", Soft, 0, nil, nil},
		{"hard 无凭证拒绝", "", Hard, 0, errs.ErrUnauthenticated, authsdk.ErrNoToken},
		{"soft 有效令牌", token, Soft, 7, nil, nil},
		{"hard 有效令牌", token, Hard, 7, nil, nil},
		{"soft 无效令牌拒绝", "garbage", Soft, 0, errs.ErrUnauthenticated, authsdk.ErrMalformedToken},
		{"hard 过期令牌", expiredToken, Hard, 0, errs.ErrUnauthenticated, authsdk.ErrExpiredToken},
		{"hard 错误签名", foreignToken, Hard, 0, errs.ErrUnauthenticated, authsdk.ErrBadSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := g.ResolveCaller(ctx, tt.credential, tt.mode)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, tt.cause)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, identity.UserID)
			assert.Equal(t, tt.wantID == 0, identity.Anonymous())
		})
	}
}

func TestGuardMiddleware(t *testing.T) {
	g, issuer := newTestGuard(memoryStore{7: {ID: 7, Username: "jake"}})
	r := newTestRouter(g)

	token, err := issuer.Issue(7, "jake")
	require.NoError(t, err)

	t.Run("soft 匿名放行", func(t *testing.T) {
		w := do(r, "/soft", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id":0}`, w.Body.String())
	})

	t.Run("soft 错误格式拒绝", func(t *testing.T) {
		w := do(r, "/soft", "Basic abc")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("hard 无令牌拒绝", func(t *testing.T) {
		w := do(r, "/hard", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Token 方案", func(t *testing.T) {
		w := do(r, "/hard", "Token "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id":7}`, w.Body.String())
	})

	t.Run("Bearer 方案", func(t *testing.T) {
		w := do(r, "/hard", "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("cookie 兜底", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/hard", nil)
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: token})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("请求 id 回写", func(t *testing.T) {
		w := do(r, "/soft", "")
		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	})
}

func TestCurrentUser(t *testing.T) {
	store := memoryStore{7: {ID: 7, Username: "jake"}}
	g, issuer := newTestGuard(store)
	r := newTestRouter(g)

	live, err := issuer.Issue(7, "jake")
	require.NoError(t, err)
	ghost, err := issuer.Issue(99, "ghost")
	require.NoError(t, err)

	w := do(r, "/me", "Token "+live)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":"jake"}`, w.Body.String())

	// 令牌有效但用户已删除
	w = do(r, "/me", "Token "+ghost)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCurrentUser_WithoutGuard(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := CurrentUser(c)
	assert.True(t, errors.Is(err, errs.ErrUnauthenticated))
}

func TestCustomSteps(t *testing.T) {
	g, issuer := newTestGuard(memoryStore{})
	denyAll := func(_ *Guard, _ *gin.Context, _ *Pass) error { return errs.ErrForbidden }
	g.steps = append(g.steps, denyAll)
	r := newTestRouter(g)

	token, err := issuer.Issue(7, "jake")
	require.NoError(t, err)

	w := do(r, "/hard", "Token "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
