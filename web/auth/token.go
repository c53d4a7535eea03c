package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"login-panel/database/model"
	"login-panel/web/service"
)

const bearerPrefix = "Bearer "

// TokenCarrier implements the stateless JWT login mode. The artifact is the
// signed token itself, returned in the login response and presented back as a
// bearer Authorization header. Nothing is kept server-side.
type TokenCarrier struct {
	users  *service.UserService
	tokens *service.TokenService
}

func NewTokenCarrier(users *service.UserService, tokens *service.TokenService) *TokenCarrier {
	return &TokenCarrier{users: users, tokens: tokens}
}

func (tc *TokenCarrier) Mode() string { return "jwt-login" }

func (tc *TokenCarrier) Establish(c *gin.Context, user *model.User) (string, error) {
	return tc.tokens.Issue(user.LoginId)
}

// Resolve treats a missing Authorization header as anonymous. A present token
// that fails signature or expiry checks is an error; it must never fall back
// to anonymous-but-accepted.
func (tc *TokenCarrier) Resolve(c *gin.Context) (*model.User, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, nil
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return nil, service.ErrInvalidToken
	}

	loginId, err := tc.tokens.Parse(strings.TrimPrefix(header, bearerPrefix))
	if err != nil {
		return nil, err
	}

	return tc.users.GetUserByLoginId(loginId)
}

// Clear is a client-side no-op: the server cannot revoke an issued token, the
// caller just drops it.
func (tc *TokenCarrier) Clear(c *gin.Context) error {
	return nil
}
