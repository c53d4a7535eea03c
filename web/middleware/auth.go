package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"login-panel/database/model"
	"login-panel/logger"
	"login-panel/web/auth"
	"login-panel/web/entity"
	"login-panel/web/locale"
	"login-panel/web/service"
)

const principalKey = "loginUser"

// GetPrincipal returns the identity the Principal middleware resolved for
// this request, or nil for anonymous.
func GetPrincipal(c *gin.Context) *model.User {
	if v, ok := c.Get(principalKey); ok {
		if user, ok := v.(*model.User); ok {
			return user
		}
	}
	return nil
}

// Principal resolves the request's session artifact through the mode's
// carrier and stores the principal in the context. Token failures abort with
// 401: a bad or expired token must leave the request unauthenticated, never
// pass through. Any other resolution failure (including the cookie mode's
// dangling user id) aborts as a server error rather than being downgraded to
// anonymous.
func Principal(carrier auth.Carrier) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := carrier.Resolve(c)
		if err != nil {
			if errors.Is(err, service.ErrInvalidToken) || errors.Is(err, service.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, entity.Msg{
					Msg: locale.I18n(locale.Web, "auth.invalidToken"),
				})
				return
			}
			logger.Warning("resolve principal failed:", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, entity.Msg{
				Msg: locale.I18n(locale.Web, "auth.resolveFailed"),
			})
			return
		}

		if user != nil {
			c.Set(principalKey, user)
		}
		c.Next()
	}
}

// Denial selects how a mode answers a negative access decision. The cookie
// and session modes redirect silently; the form mode names the role denial;
// the jwt mode speaks plain status codes.
type Denial struct {
	API               bool   // respond 401/403 JSON instead of redirecting
	LoginURL          string // redirect target when unauthenticated
	HomeURL           string // redirect target on role denial
	ExplicitForbidden bool   // 403 on role denial instead of redirecting home
}

// RequireLevel gates a route on the access decision for the resolved
// principal. The decision itself is pure; only the denial differs per mode.
func RequireLevel(level service.AccessLevel, denial Denial) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetPrincipal(c)
		if service.Authorize(user, level) {
			c.Next()
			return
		}

		if user == nil {
			if denial.API {
				c.AbortWithStatusJSON(http.StatusUnauthorized, entity.Msg{
					Msg: locale.I18n(locale.Web, "auth.loginRequired"),
				})
			} else {
				c.Redirect(http.StatusTemporaryRedirect, denial.LoginURL)
				c.Abort()
			}
			return
		}

		// Authenticated but lacking the role.
		if denial.API || denial.ExplicitForbidden {
			c.AbortWithStatusJSON(http.StatusForbidden, entity.Msg{
				Msg: locale.I18n(locale.Web, "auth.accessDenied"),
			})
			return
		}
		c.Redirect(http.StatusTemporaryRedirect, denial.HomeURL)
		c.Abort()
	}
}
