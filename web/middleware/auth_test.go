package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"login-panel/database/model"
	"login-panel/web/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// stubCarrier resolves to a fixed principal or error, so the middleware can
// be exercised without a database or real artifacts.
type stubCarrier struct {
	user *model.User
	err  error
}

func (s *stubCarrier) Mode() string                                        { return "stub" }
func (s *stubCarrier) Establish(c *gin.Context, u *model.User) (string, error) { return "", nil }
func (s *stubCarrier) Resolve(c *gin.Context) (*model.User, error)         { return s.user, s.err }
func (s *stubCarrier) Clear(c *gin.Context) error                          { return nil }

func perform(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
	return w
}

func TestPrincipalSetsUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	admin := &model.User{Id: 1, LoginId: "admin1", Role: model.RoleAdmin}

	engine := gin.New()
	engine.Use(Principal(&stubCarrier{user: admin}))
	engine.GET("/", func(c *gin.Context) {
		user := GetPrincipal(c)
		assert.NotNil(t, user)
		c.String(http.StatusOK, user.LoginId)
	})

	w := perform(engine, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin1", w.Body.String())
}

func TestPrincipalAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(Principal(&stubCarrier{}))
	engine.GET("/", func(c *gin.Context) {
		assert.Nil(t, GetPrincipal(c))
		c.Status(http.StatusOK)
	})

	w := perform(engine, "/")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPrincipalTokenErrorAborts(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, err := range []error{service.ErrInvalidToken, service.ErrTokenExpired} {
		engine := gin.New()
		engine.Use(Principal(&stubCarrier{err: err}))
		engine.GET("/", func(c *gin.Context) {
			t.Error("handler must not run after a token failure")
		})

		w := perform(engine, "/")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
}

func TestPrincipalResolveErrorAborts(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(Principal(&stubCarrier{err: service.ErrUserNotFound}))
	engine.GET("/", func(c *gin.Context) {
		t.Error("handler must not run after a resolve failure")
	})

	w := perform(engine, "/")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequireLevelDenials(t *testing.T) {
	gin.SetMode(gin.TestMode)
	user := &model.User{Id: 2, LoginId: "user1", Role: model.RoleUser}
	admin := &model.User{Id: 1, LoginId: "admin1", Role: model.RoleAdmin}

	redirecting := Denial{LoginURL: "/m/login", HomeURL: "/m"}
	forbidding := Denial{LoginURL: "/m/login", HomeURL: "/m", ExplicitForbidden: true}
	api := Denial{API: true}

	tests := []struct {
		name         string
		principal    *model.User
		level        service.AccessLevel
		denial       Denial
		wantCode     int
		wantLocation string
	}{
		{"anonymous redirected to login", nil, service.Authenticated, redirecting, http.StatusTemporaryRedirect, "/m/login"},
		{"anonymous api gets 401", nil, service.Authenticated, api, http.StatusUnauthorized, ""},
		{"user redirected home from admin page", user, service.AdminOnly, redirecting, http.StatusTemporaryRedirect, "/m"},
		{"user forbidden from admin page", user, service.AdminOnly, forbidding, http.StatusForbidden, ""},
		{"user api gets 403", user, service.AdminOnly, api, http.StatusForbidden, ""},
		{"admin passes", admin, service.AdminOnly, redirecting, http.StatusOK, ""},
		{"user passes authenticated", user, service.Authenticated, forbidding, http.StatusOK, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			engine := gin.New()
			engine.Use(Principal(&stubCarrier{user: tc.principal}))
			engine.GET("/", RequireLevel(tc.level, tc.denial), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := perform(engine, "/")
			assert.Equal(t, tc.wantCode, w.Code)
			if tc.wantLocation != "" {
				assert.Equal(t, tc.wantLocation, w.Header().Get("Location"))
			}
		})
	}
}
