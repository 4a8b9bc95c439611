package web

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/verdix/verdix/internal/scorer"
)

const emptyLeaderboardMessage = "Waiting for the first scores to come in..."

type leaderboardService struct {
	webService
}

func setupLeaderboardService(server *server, r *gin.Engine) {
	s := leaderboardService{newWebService(server, "leaderboard")}

	r.GET(server.config.Endpoints.Leaderboard, s.page)
	r.POST(server.config.Endpoints.LeaderboardLogin, s.login)
	r.GET(server.config.Endpoints.LeaderboardLogout, s.logout)
}

func (s leaderboardService) renderLogin(c *gin.Context, message string) {
	c.HTML(http.StatusOK, "/leaderboard_login.tmpl", gin.H{
		"Config":       s.config,
		"ErrorMessage": message,
	})
}

func (s leaderboardService) page(c *gin.Context) {
	if !leaderboardUnlocked(c) {
		s.renderLogin(c, "")
		return
	}

	tracks, err := s.server.roster.TrackNames(c)
	if err != nil {
		s.renderError(c, err)
		return
	}

	track := c.Query("track")
	data := gin.H{
		"Config":   s.config,
		"Tracks":   tracks,
		"Track":    track,
		"MaxTotal": s.server.rubric.MaxTotal(),
		"Rubric":   s.server.rubric,
	}

	leaderboard, err := s.server.scorer.Leaderboard(c, track)
	switch {
	case errors.Is(err, scorer.ErrNoScores):
		data["EmptyMessage"] = emptyLeaderboardMessage
	case err != nil:
		s.renderError(c, err)
		return
	default:
		data["Leaderboard"] = leaderboard
	}
	c.HTML(http.StatusOK, "/leaderboard.tmpl", data)
}

func (s leaderboardService) login(c *gin.Context) {
	if c.PostForm("passphrase") != s.config.Access.LeaderboardPassphrase {
		s.logger(c).Info("Wrong leaderboard passphrase")
		s.renderLogin(c, "Incorrect password")
		return
	}

	session := sessions.Default(c)
	session.Set(keyLeaderboard, true)
	s.saveSession(session)

	c.Redirect(http.StatusFound, s.config.Endpoints.Leaderboard)
}

func (s leaderboardService) logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(keyLeaderboard)
	s.saveSession(session)

	c.Redirect(http.StatusFound, s.config.Endpoints.Leaderboard)
}
