// Package web provides the web server of the login panel: routing, the four
// login mode groups and background job scheduling.
package web

import (
	"context"
	"embed"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"login-panel/config"
	"login-panel/logger"
	"login-panel/web/auth"
	"login-panel/web/controller"
	"login-panel/web/job"
	"login-panel/web/locale"
	"login-panel/web/middleware"
	"login-panel/web/service"
	"login-panel/web/session"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

//go:embed translation/*
var i18nFS embed.FS

// Server is the web server of the login panel: one gin engine serving the
// index plus the four login mode groups, and a cron scheduler for
// housekeeping jobs.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	index        *controller.IndexController
	cookieLogin  *controller.LoginController
	sessionLogin *controller.LoginController
	formLogin    *controller.LoginController
	jwtLogin     *controller.LoginController

	userService    service.UserService
	settingService service.SettingService

	registry *session.Registry

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server instance with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

// initRouter initializes gin, registers middleware and the login mode groups,
// and returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	webDomain, err := s.settingService.GetWebDomain()
	if err != nil {
		return nil, err
	}
	if webDomain != "" {
		engine.Use(middleware.DomainValidatorMiddleware(webDomain))
	}

	basePath, err := s.settingService.GetBasePath()
	if err != nil {
		return nil, err
	}

	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	if err := locale.InitLocalizer(i18nFS); err != nil {
		return nil, err
	}
	engine.Use(locale.LocalizerMiddleware())

	// Old mode names keep working
	engine.Use(middleware.RedirectMiddleware(basePath))

	// Artifact lifetimes and keys are read once here; the carriers hold them
	// for the process lifetime.
	cookieMaxAge, err := s.settingService.GetCookieMaxAge()
	if err != nil {
		return nil, err
	}
	sessionMaxAge, err := s.settingService.GetSessionMaxAge()
	if err != nil {
		return nil, err
	}
	sessionSecret, err := s.settingService.GetSessionSecret()
	if err != nil {
		return nil, err
	}
	jwtSecret, err := s.settingService.GetJWTSecret()
	if err != nil {
		return nil, err
	}
	jwtExpire, err := s.settingService.GetJWTExpire()
	if err != nil {
		return nil, err
	}

	s.registry = session.NewRegistry(time.Duration(sessionMaxAge) * time.Second)
	tokenService := service.NewTokenService(jwtSecret, jwtExpire)

	cookieCarrier := auth.NewCookieCarrier(&s.userService, cookieMaxAge)
	sessionCarrier := auth.NewSessionCarrier(&s.userService, s.registry)
	formCarrier := auth.NewFormCarrier(&s.userService, sessionMaxAge)
	tokenCarrier := auth.NewTokenCarrier(&s.userService, tokenService)

	s.index = controller.NewIndexController(engine.Group(basePath), []string{
		cookieCarrier.Mode(), sessionCarrier.Mode(), formCarrier.Mode(), tokenCarrier.Mode(),
	})

	cookieGroup := engine.Group(basePath + cookieCarrier.Mode())
	s.cookieLogin = controller.NewLoginController(cookieGroup, cookieCarrier, false, middleware.Denial{
		LoginURL: basePath + cookieCarrier.Mode() + "/login",
		HomeURL:  basePath + cookieCarrier.Mode(),
	})

	sessionGroup := engine.Group(basePath + sessionCarrier.Mode())
	s.sessionLogin = controller.NewLoginController(sessionGroup, sessionCarrier, false, middleware.Denial{
		LoginURL: basePath + sessionCarrier.Mode() + "/login",
		HomeURL:  basePath + sessionCarrier.Mode(),
	})

	formGroup := engine.Group(basePath + formCarrier.Mode())
	formGroup.Use(sessions.Sessions("form_session", memstore.NewStore(sessionSecret)))
	s.formLogin = controller.NewLoginController(formGroup, formCarrier, true, middleware.Denial{
		LoginURL:          basePath + formCarrier.Mode() + "/login",
		ExplicitForbidden: true,
	})

	jwtGroup := engine.Group(basePath + tokenCarrier.Mode())
	s.jwtLogin = controller.NewLoginController(jwtGroup, tokenCarrier, true, middleware.Denial{
		API: true,
	})

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// startTask schedules the housekeeping jobs.
func (s *Server) startTask() {
	s.cron.AddJob("@every 10m", job.NewClearSessionsJob(s.registry))
	s.cron.AddJob("@daily", job.NewCheckDefaultCredentialsJob())
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	loc, err := s.settingService.GetTimeLocation()
	if err != nil {
		return err
	}
	s.cron = cron.New(cron.WithLocation(loc), cron.WithSeconds())
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	s.startTask()

	listen, err := s.settingService.GetListen()
	if err != nil {
		return err
	}
	port, err := s.settingService.GetPort()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(listen, strconv.Itoa(port))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	s.listener = listener

	logger.Infof("web server listening on %s", listenAddr)

	s.httpServer = &http.Server{Handler: engine}
	go func() {
		if serveErr := s.httpServer.Serve(s.listener); serveErr != nil && serveErr != http.ErrServerClosed {
			logger.Error("web server error:", serveErr)
		}
	}()

	return nil
}

// Stop gracefully shuts down the web server and its scheduler.
func (s *Server) Stop() error {
	s.cancel()

	if s.cron != nil {
		s.cron.Stop()
	}

	var err error
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = s.httpServer.Shutdown(ctx)
	}
	return err
}

func (s *Server) GetCron() *cron.Cron {
	return s.cron
}

func (s *Server) GetCtx() context.Context {
	return s.ctx
}
