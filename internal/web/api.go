package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/verdix/verdix/api"
	"github.com/verdix/verdix/internal/models"
	"github.com/verdix/verdix/internal/scorer"
)

const tokenHeader = "Token"

type apiService struct {
	webService
}

func setupApiService(server *server, r *gin.Engine) {
	s := apiService{newWebService(server, "api")}

	r.GET(server.config.Endpoints.Api.Leaderboard, s.leaderboard)
	r.GET(server.config.Endpoints.Api.Teams, s.teams)
	r.GET(server.config.Endpoints.Api.Countdown, s.countdown)
}

func (s apiService) fail(c *gin.Context, code int, err error) {
	s.logger(c).Warn("API request failed", zap.Int("code", code), zap.Error(err))
	c.JSON(code, &api.Status{
		Ok:    false,
		Error: err.Error(),
	})
}

func (s apiService) leaderboard(c *gin.Context) {
	if c.GetHeader(tokenHeader) != s.config.Access.LeaderboardPassphrase {
		s.fail(c, http.StatusUnauthorized, errors.New("Invalid token"))
		return
	}

	req := api.LeaderboardRequest{}
	if err := c.ShouldBindQuery(&req); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}

	leaderboard, err := s.server.scorer.Leaderboard(c, req.Track)
	if errors.Is(err, scorer.ErrNoScores) {
		c.JSON(http.StatusOK, &api.LeaderboardResponse{Status: api.Status{Ok: true}, Empty: true})
		return
	}
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, &api.LeaderboardResponse{
		Status:      api.Status{Ok: true},
		Leaderboard: leaderboard,
	})
}

func convertTeam(team *models.TeamRecord) api.Team {
	return api.Team{
		Name:             team.TeamName,
		Track:            team.Track,
		University:       team.University,
		Industries:       team.Industries,
		Stage:            team.Stage,
		ValueProposition: team.ValueProposition,
		VideoLink:        team.VideoLink,
		DeckLink:         team.DeckLink,
		UpdatedAt:        team.SubmittedAt.Format(models.TimestampLayout),
	}
}

func (s apiService) teams(c *gin.Context) {
	req := api.TeamsRequest{}
	if err := c.ShouldBindQuery(&req); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}

	var teams []models.TeamRecord
	var err error
	if req.Track != "" {
		teams, err = s.server.roster.TeamsInTrack(c, req.Track)
	} else {
		teams, err = s.server.roster.Teams(c)
	}
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}

	res := &api.TeamsResponse{
		Status: api.Status{Ok: true},
		Teams:  make([]api.Team, 0, len(teams)),
	}
	for i := range teams {
		res.Teams = append(res.Teams, convertTeam(&teams[i]))
	}
	c.JSON(http.StatusOK, res)
}

func (s apiService) countdown(c *gin.Context) {
	countdown := s.server.countdown
	c.JSON(http.StatusOK, &api.CountdownResponse{
		Status:    api.Status{Ok: true},
		Deadline:  countdown.Deadline().Format(models.TimestampLayout),
		Remaining: countdown.Remaining(),
		Humanized: countdown.Humanized(),
	})
}
