package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type homeService struct {
	webService
}

func setupHomeService(server *server, r *gin.Engine) {
	s := homeService{newWebService(server, "home")}

	r.GET(server.config.Endpoints.Home, s.home)
}

func (s homeService) home(c *gin.Context) {
	c.HTML(http.StatusOK, "/home.tmpl", gin.H{
		"Config":    s.config,
		"Countdown": s.server.countdown.Remaining(),
	})
}

// renderError shows a store failure verbatim. Nothing is retried.
func (s webService) renderError(c *gin.Context, err error) {
	s.logger(c).Error("Request failed", zap.Error(err))
	c.HTML(http.StatusInternalServerError, "/error.tmpl", gin.H{
		"Config":       s.config,
		"ErrorMessage": "Connection Error: " + err.Error(),
	})
}
