package controller

import (
	"github.com/gin-gonic/gin"
)

// IndexController serves the root route listing the available login modes.
type IndexController struct {
	BaseController

	modes []string
}

// NewIndexController creates a new IndexController and initializes its routes.
func NewIndexController(g *gin.RouterGroup, modes []string) *IndexController {
	a := &IndexController{modes: modes}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
}

func (a *IndexController) index(c *gin.Context) {
	jsonObj(c, gin.H{"loginModes": a.modes}, nil)
}
