package auth

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"login-panel/database/model"
	"login-panel/web/service"
)

// CookieName is the plain cookie artifact key. Its value is the user id, so
// this mode trusts the client completely; it exists to demonstrate the
// weakest strategy.
const CookieName = "userId"

// CookieCarrier implements the cookie login mode: the artifact is the user id
// itself, held client-side for a fixed lifetime.
type CookieCarrier struct {
	users  *service.UserService
	maxAge int // seconds
}

func NewCookieCarrier(users *service.UserService, maxAge int) *CookieCarrier {
	return &CookieCarrier{users: users, maxAge: maxAge}
}

func (cc *CookieCarrier) Mode() string { return "cookie-login" }

func (cc *CookieCarrier) Establish(c *gin.Context, user *model.User) (string, error) {
	value := strconv.Itoa(user.Id)
	c.SetCookie(CookieName, value, cc.maxAge, "/", "", false, true)
	return value, nil
}

// Resolve treats a missing or unparsable cookie as anonymous, but a
// well-formed id that matches no user is a hard error, not anonymous. The
// other modes treat a dangling reference as anonymous; the asymmetry is
// intentional.
func (cc *CookieCarrier) Resolve(c *gin.Context) (*model.User, error) {
	value, err := c.Cookie(CookieName)
	if err != nil {
		return nil, nil
	}

	id, err := strconv.Atoi(value)
	if err != nil {
		return nil, nil
	}

	return cc.users.GetUserById(id)
}

func (cc *CookieCarrier) Clear(c *gin.Context) error {
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
	return nil
}
