package auth

import (
	"errors"

	"github.com/gin-gonic/gin"

	"login-panel/database/model"
	"login-panel/web/service"
	"login-panel/web/session"
)

// SessionCookieName carries the registry key of the session login mode. Only
// the unguessable key travels to the client; the user id stays server-side.
const SessionCookieName = "SESSION_ID"

// SessionCarrier implements the session login mode over the hand-rolled
// server-side registry.
type SessionCarrier struct {
	users    *service.UserService
	registry *session.Registry
}

func NewSessionCarrier(users *service.UserService, registry *session.Registry) *SessionCarrier {
	return &SessionCarrier{users: users, registry: registry}
}

func (sc *SessionCarrier) Mode() string { return "session-login" }

// Establish invalidates any session the request already carries before
// creating a new one, so a key fixed before login never survives it.
func (sc *SessionCarrier) Establish(c *gin.Context, user *model.User) (string, error) {
	if old, err := c.Cookie(SessionCookieName); err == nil && old != "" {
		sc.registry.Invalidate(old)
	}

	key := sc.registry.Start(user.Id)
	c.SetCookie(SessionCookieName, key, 0, "/", "", false, true)
	return key, nil
}

// Resolve treats a missing, expired or dangling session as anonymous.
func (sc *SessionCarrier) Resolve(c *gin.Context) (*model.User, error) {
	key, err := c.Cookie(SessionCookieName)
	if err != nil || key == "" {
		return nil, nil
	}

	userId, ok := sc.registry.Get(key)
	if !ok {
		return nil, nil
	}

	user, err := sc.users.GetUserById(userId)
	if errors.Is(err, service.ErrUserNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

func (sc *SessionCarrier) Clear(c *gin.Context) error {
	if key, err := c.Cookie(SessionCookieName); err == nil && key != "" {
		sc.registry.Invalidate(key)
	}
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
	return nil
}
