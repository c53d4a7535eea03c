package auth

import (
	"errors"

	"github.com/gin-gonic/gin"

	"login-panel/database/model"
	"login-panel/web/service"
	"login-panel/web/session"
)

// FormCarrier implements the form login mode on the framework-managed session
// store (gin-contrib/sessions). The store owns the cookie and its key; the
// carrier only reads and writes the principal. This is the mode whose role
// denial surfaces an explicit forbidden response instead of a silent redirect.
type FormCarrier struct {
	users  *service.UserService
	maxAge int // seconds
}

func NewFormCarrier(users *service.UserService, maxAge int) *FormCarrier {
	return &FormCarrier{users: users, maxAge: maxAge}
}

func (fc *FormCarrier) Mode() string { return "form-login" }

func (fc *FormCarrier) Establish(c *gin.Context, user *model.User) (string, error) {
	// Renew clears pre-login state first; the store cookie is opaque to us.
	if err := session.Renew(c, user.Id, fc.maxAge); err != nil {
		return "", err
	}
	return "", nil
}

func (fc *FormCarrier) Resolve(c *gin.Context) (*model.User, error) {
	userId, ok := session.GetLoginUserId(c)
	if !ok {
		return nil, nil
	}

	user, err := fc.users.GetUserById(userId)
	if errors.Is(err, service.ErrUserNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

func (fc *FormCarrier) Clear(c *gin.Context) error {
	return session.ClearSession(c)
}
