// Package auth implements the session artifact carriers of the four login
// modes. A Carrier binds a verified user to a request-borne artifact
// (cookie value, server-side session key or signed token) and recovers the
// identity from later requests.
package auth

import (
	"github.com/gin-gonic/gin"

	"login-panel/database/model"
)

// Carrier is the narrow collaborator the login controllers and middleware
// share. Establish issues an artifact for a verified user and returns its
// value. Resolve recovers the principal from the inbound request; (nil, nil)
// means anonymous, an error means the attempt must not be treated as a valid
// login. Clear invalidates whatever the mode can invalidate; for client-held
// artifacts it only signals the client to drop them. Resolving the same
// artifact twice without intervening mutation yields the same result.
type Carrier interface {
	Mode() string
	Establish(c *gin.Context, user *model.User) (string, error)
	Resolve(c *gin.Context) (*model.User, error)
	Clear(c *gin.Context) error
}
