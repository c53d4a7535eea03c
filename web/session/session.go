// Package session provides the two server-side session mechanisms of the
// panel: a hand-rolled registry (session-login) and helpers over the
// framework-managed gin-contrib store (form-login).
package session

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const loginUserId = "LOGIN_USER_ID"

// Renew drops whatever the framework session held before login, sets the new
// lifetime and stores the user id, all in a single save.
func Renew(c *gin.Context, userId int, maxAge int) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
	})
	s.Set(loginUserId, userId)
	return s.Save()
}

// GetLoginUserId returns the user id stored in the framework session, or
// false when the request carries no login.
func GetLoginUserId(c *gin.Context) (int, bool) {
	s := sessions.Default(c)
	if obj := s.Get(loginUserId); obj != nil {
		if id, ok := obj.(int); ok {
			return id, true
		}
	}
	return 0, false
}

// ClearSession destroys the framework session and expires its cookie.
func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	return s.Save()
}
