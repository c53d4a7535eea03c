package controller

import (
	"errors"
	"net/http"

	"login-panel/logger"
	"login-panel/web/auth"
	"login-panel/web/entity"
	"login-panel/web/middleware"
	"login-panel/web/service"

	"github.com/gin-gonic/gin"
)

// JoinForm represents the signup request structure.
type JoinForm struct {
	LoginId       string `json:"loginId" form:"loginId"`
	Password      string `json:"password" form:"password"`
	PasswordCheck string `json:"passwordCheck" form:"passwordCheck"`
	Nickname      string `json:"nickname" form:"nickname"`
}

// LoginForm represents the login request structure.
type LoginForm struct {
	LoginId  string `json:"loginId" form:"loginId"`
	Password string `json:"password" form:"password"`
}

// LoginController serves one login mode's route group. The same handlers back
// every mode; the artifact carrier, the signup hashing policy and the denial
// style are configuration.
type LoginController struct {
	BaseController

	userService service.UserService

	carrier    auth.Carrier
	hashOnJoin bool
	denial     middleware.Denial
}

// NewLoginController mounts a login mode under g and returns the controller.
// hashOnJoin selects whether signup stores a bcrypt hash or the verbatim
// credential.
func NewLoginController(g *gin.RouterGroup, carrier auth.Carrier, hashOnJoin bool, denial middleware.Denial) *LoginController {
	a := &LoginController{
		carrier:    carrier,
		hashOnJoin: hashOnJoin,
		denial:     denial,
	}
	a.initRouter(g)
	return a
}

func (a *LoginController) initRouter(g *gin.RouterGroup) {
	g.Use(middleware.Principal(a.carrier))

	g.GET("/", a.home)
	g.GET("/join", a.joinPage)
	g.POST("/join", a.join)
	g.GET("/login", a.loginPage)
	g.POST("/login", a.login)
	g.GET("/logout", a.logout)

	g.GET("/info", middleware.RequireLevel(service.Authenticated, a.denial), a.info)
	g.GET("/admin", middleware.RequireLevel(service.AdminOnly, a.denial), a.admin)
}

// home greets the resolved user, or reports anonymous.
func (a *LoginController) home(c *gin.Context) {
	obj := gin.H{"loginType": a.carrier.Mode()}

	user := middleware.GetPrincipal(c)
	if user == nil {
		jsonMsgObj(c, I18nWeb(c, "home.anonymous"), obj, nil)
		return
	}

	obj["nickname"] = user.Nickname
	jsonMsgObj(c, I18nWeb(c, "home.greeting", "nickname=="+user.Nickname), obj, nil)
}

func (a *LoginController) joinPage(c *gin.Context) {
	jsonObj(c, gin.H{"loginType": a.carrier.Mode(), "page": "join"}, nil)
}

// join registers a new account. Every validation failure is collected and
// returned together as field errors, not one at a time.
func (a *LoginController) join(c *gin.Context) {
	var form JoinForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "join.invalid"))
		return
	}

	fieldErrors := make([]entity.FieldError, 0)
	if form.LoginId == "" {
		fieldErrors = append(fieldErrors, entity.FieldError{Field: "loginId", Msg: "join.emptyLoginId"})
	}
	if form.Password == "" {
		fieldErrors = append(fieldErrors, entity.FieldError{Field: "password", Msg: "join.emptyPassword"})
	}
	if form.Nickname == "" {
		fieldErrors = append(fieldErrors, entity.FieldError{Field: "nickname", Msg: "join.emptyNickname"})
	}

	dupErrors, err := a.userService.ValidateJoin(form.LoginId, form.Nickname, form.Password, form.PasswordCheck)
	if err != nil {
		jsonMsg(c, I18nWeb(c, "join.invalid"), err)
		return
	}
	fieldErrors = append(fieldErrors, dupErrors...)

	if len(fieldErrors) > 0 {
		for i := range fieldErrors {
			fieldErrors[i].Msg = I18nWeb(c, fieldErrors[i].Msg)
		}
		c.JSON(http.StatusOK, entity.Msg{
			Success: false,
			Msg:     I18nWeb(c, "join.invalid"),
			Obj:     fieldErrors,
		})
		return
	}

	user, err := a.userService.Register(form.LoginId, form.Password, form.Nickname, a.hashOnJoin)
	if err != nil {
		jsonMsg(c, I18nWeb(c, "join.invalid"), err)
		return
	}

	logger.Infof("%s joined via %s", user.LoginId, a.carrier.Mode())
	jsonMsg(c, I18nWeb(c, "join.success"), nil)
}

func (a *LoginController) loginPage(c *gin.Context) {
	jsonObj(c, gin.H{"loginType": a.carrier.Mode(), "page": "login"}, nil)
}

// login verifies the credential and establishes the mode's session artifact.
// A wrong login id and a wrong password collapse to the same answer.
func (a *LoginController) login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "login.failed"))
		return
	}

	user, err := a.userService.Authenticate(form.LoginId, form.Password)
	if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrCredentialMismatch) {
		logger.Warningf("failed %s login for %q, IP: %q", a.carrier.Mode(), form.LoginId, getRemoteIp(c))
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "login.failed"))
		return
	} else if err != nil {
		jsonMsg(c, I18nWeb(c, "login.failed"), err)
		return
	}

	artifact, err := a.carrier.Establish(c, user)
	if err != nil {
		jsonMsg(c, I18nWeb(c, "login.failed"), err)
		return
	}

	logger.Infof("%s logged in via %s, IP: %q", user.LoginId, a.carrier.Mode(), getRemoteIp(c))

	// Stateless artifacts travel in the body; cookie-borne ones already left
	// in the response headers.
	if a.carrier.Mode() == "jwt-login" {
		jsonMsgObj(c, I18nWeb(c, "login.success"), gin.H{"token": artifact}, nil)
		return
	}
	jsonMsg(c, I18nWeb(c, "login.success"), nil)
}

// logout invalidates what the mode can invalidate and tells the client to
// drop the rest.
func (a *LoginController) logout(c *gin.Context) {
	user := middleware.GetPrincipal(c)
	if user != nil {
		logger.Infof("%s logged out of %s", user.LoginId, a.carrier.Mode())
	}

	if err := a.carrier.Clear(c); err != nil {
		jsonMsg(c, I18nWeb(c, "login.loggedOut"), err)
		return
	}

	msg := "login.loggedOut"
	if a.carrier.Mode() == "jwt-login" {
		msg = "login.dropToken"
	}
	jsonMsg(c, I18nWeb(c, msg), nil)
}

// info returns the resolved user's record. Requires authentication.
func (a *LoginController) info(c *gin.Context) {
	jsonObj(c, middleware.GetPrincipal(c), nil)
}

// admin is the ADMIN-gated page.
func (a *LoginController) admin(c *gin.Context) {
	jsonObj(c, gin.H{"loginType": a.carrier.Mode(), "page": "admin"}, nil)
}
