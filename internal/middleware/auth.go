package middleware

import (
	"context"
	"errors"
	"fmt"

	"terminal-terrace/conduit/internal/dto"
	"terminal-terrace/conduit/internal/errs"
	userModel "terminal-terrace/conduit/internal/model/user"
	authsdk "terminal-terrace/conduit/packages/auth-sdk"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// 上下文键
const (
	ctxUserID      = "user_id"
	ctxUsername    = "username"
	ctxIdentity    = "identity"
	ctxGuard       = "guard"
	ctxCurrentUser = "current_user"

	// AccessTokenCookie header 中没有令牌时读取的 cookie
	AccessTokenCookie = "access_token"
)

// Mode 认证模式
type Mode int

const (
	// Soft 无令牌视为匿名，令牌无效则拒绝
	Soft Mode = iota
	// Hard 必须携带有效令牌
	Hard
)

func (m Mode) String() string {
	if m == Hard {
		return "hard"
	}
	return "soft"
}

// Identity 令牌解析出的调用者，在 CurrentUser 确认前不可信
type Identity struct {
	UserID   uint
	Username string
}

// Anonymous 未携带令牌的访问者
func (i Identity) Anonymous() bool {
	return i.UserID == 0
}

// IdentityStore 按 id 查询用户，用户不存在时返回 errs.ErrNotFound
type IdentityStore interface {
	FindByID(ctx context.Context, id uint) (*userModel.User, error)
}

// Pass 一次认证流程中在各步骤间传递的状态
type Pass struct {
	Mode       Mode
	Credential string
	Identity   Identity
}

// Step 认证流水线中的一步，返回错误即中止请求
type Step func(g *Guard, c *gin.Context, p *Pass) error

// Guard 访问控制：提取凭证 -> 校验 -> 写入身份
type Guard struct {
	issuer *authsdk.Issuer
	store  IdentityStore
	steps  []Step
}

// NewGuard 使用默认流水线
func NewGuard(issuer *authsdk.Issuer, store IdentityStore) *Guard {
	return &Guard{
		issuer: issuer,
		store:  store,
		steps:  []Step{ExtractCredential, VerifyCredential, StoreIdentity},
	}
}

// Soft 可选认证中间件
func (g *Guard) Soft() gin.HandlerFunc {
	return g.handler(Soft)
}

// Hard 必须认证中间件
func (g *Guard) Hard() gin.HandlerFunc {
	return g.handler(Hard)
}

func (g *Guard) handler(mode Mode) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := &Pass{Mode: mode}
		for _, step := range g.steps {
			if err := step(g, c, p); err != nil {
				zerolog.Ctx(c.Request.Context()).Debug().Err(err).
					Str("mode", mode.String()).
					Msg("认证失败")
				dto.HandleError(c, err)
				c.Abort()
				return
			}
		}
		c.Next()
	}
}

// ResolveCaller 校验凭证并返回调用者身份
// Soft 模式下空凭证返回匿名身份；凭证存在但无效时两种模式都拒绝
func (g *Guard) ResolveCaller(ctx context.Context, credential string, mode Mode) (Identity, error) {
	if credential == "" {
		if mode == Soft {
			return Identity{}, nil
		}
		return Identity{}, fmt.Errorf("%w: %w", errs.ErrUnauthenticated, authsdk.ErrNoToken)
	}

	uc, err := g.issuer.Verify(credential)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", errs.ErrUnauthenticated, err)
	}
	return Identity{UserID: uc.UserID, Username: uc.Username}, nil
}

// ExtractCredential 优先读取 Authorization header，其次读取 access_token cookie
// header 存在但格式错误时直接拒绝
func ExtractCredential(_ *Guard, c *gin.Context, p *Pass) error {
	token, err := authsdk.ExtractToken(c.GetHeader("Authorization"))
	switch {
	case err == nil:
		p.Credential = token
		return nil
	case errors.Is(err, authsdk.ErrNoToken):
		if cookie, cerr := c.Cookie(AccessTokenCookie); cerr == nil {
			p.Credential = cookie
		}
		return nil
	default:
		return fmt.Errorf("%w: %w", errs.ErrUnauthenticated, err)
	}
}

// VerifyCredential 校验签名与过期时间
func VerifyCredential(g *Guard, c *gin.Context, p *Pass) error {
	identity, err := g.ResolveCaller(c.Request.Context(), p.Credential, p.Mode)
	if err != nil {
		return err
	}
	p.Identity = identity
	return nil
}

// StoreIdentity 将身份写入 gin 上下文
func StoreIdentity(g *Guard, c *gin.Context, p *Pass) error {
	c.Set(ctxGuard, g)
	c.Set(ctxIdentity, p.Identity)
	if !p.Identity.Anonymous() {
		c.Set(ctxUserID, p.Identity.UserID)
		c.Set(ctxUsername, p.Identity.Username)
	}
	return nil
}

// CallerIdentity 返回当前请求的身份，未经过 Guard 时为匿名
func CallerIdentity(c *gin.Context) Identity {
	if v, ok := c.Get(ctxIdentity); ok {
		if identity, ok := v.(Identity); ok {
			return identity
		}
	}
	return Identity{}
}

// ViewerID 当前访问者 id，匿名为 0
func ViewerID(c *gin.Context) uint {
	return CallerIdentity(c).UserID
}

// CurrentUser 到用户库确认调用者仍然存在，结果缓存在请求上下文中
func CurrentUser(c *gin.Context) (*userModel.User, error) {
	if v, ok := c.Get(ctxCurrentUser); ok {
		return v.(*userModel.User), nil
	}

	identity := CallerIdentity(c)
	if identity.Anonymous() {
		return nil, errs.ErrUnauthenticated
	}

	v, ok := c.Get(ctxGuard)
	if !ok {
		return nil, errs.ErrUnauthenticated
	}
	g := v.(*Guard)

	u, err := g.store.FindByID(c.Request.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %d no longer exists", errs.ErrUnauthenticated, identity.UserID)
		}
		return nil, err
	}

	c.Set(ctxCurrentUser, u)
	return u, nil
}
