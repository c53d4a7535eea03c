// Package controller provides the HTTP request handlers of the login panel.
// One LoginController serves all four login modes; the mode's carrier and
// denial style are the only things that differ between the route groups.
package controller

import (
	"login-panel/logger"
	"login-panel/web/locale"

	"github.com/gin-gonic/gin"
)

// BaseController provides common functionality for all controllers.
type BaseController struct{}

// I18nWeb retrieves an internationalized message for the web interface based
// on the current locale.
func I18nWeb(c *gin.Context, name string, params ...string) string {
	anyfunc, funcExists := c.Get("I18n")
	if !funcExists {
		logger.Warning("I18n function not exists in gin context!")
		return ""
	}
	i18nFunc, _ := anyfunc.(func(i18nType locale.I18nType, key string, keyParams ...string) string)
	msg := i18nFunc(locale.Web, name, params...)
	return msg
}
