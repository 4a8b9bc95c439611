package web

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	lf "github.com/verdix/verdix/internal/logfield"
	"github.com/verdix/verdix/internal/models"
	"github.com/verdix/verdix/internal/recorder"
)

const noTracksMessage = "No tracks configured in 'Config' tab."

type judgeService struct {
	webService
}

func setupJudgeService(server *server, r *gin.Engine) {
	s := judgeService{newWebService(server, "judge")}

	r.GET(server.config.Endpoints.Judge, s.portal)
	r.POST(server.config.Endpoints.JudgeLogin, s.login)
	r.GET(server.config.Endpoints.JudgeLogout, s.logout)
	r.POST(server.config.Endpoints.Score, s.requireJudge, s.score)
}

func (s judgeService) renderLogin(c *gin.Context, name, message string) {
	c.HTML(http.StatusOK, "/judge_login.tmpl", gin.H{
		"Config":         s.config,
		"JudgeName":      name,
		"NeedPassphrase": s.config.Access.JudgePassphrase != "",
		"ErrorMessage":   message,
	})
}

func (s judgeService) portal(c *gin.Context) {
	judge := judgeName(c)
	if judge == "" {
		s.renderLogin(c, "", "")
		return
	}

	var tracks []models.TrackRecord
	var teams []models.TeamRecord
	g, ctx := errgroup.WithContext(c)
	g.Go(func() (err error) {
		tracks, err = s.server.roster.Tracks(ctx)
		return err
	})
	g.Go(func() (err error) {
		teams, err = s.server.roster.Teams(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.renderError(c, err)
		return
	}

	data := gin.H{
		"Config":    s.config,
		"JudgeName": judge,
		"Rubric":    s.server.rubric,
		"Tracks":    tracks,
		"Saved":     s.popFlashes(c, keyFlash),
		"Failed":    s.popFlashes(c, keyFlashError),
	}
	if len(tracks) == 0 {
		// an empty Config tab is re-read on the next visit instead of waiting out the cache
		s.server.roster.InvalidateTracks()
		data["ErrorMessage"] = noTracksMessage
		c.HTML(http.StatusOK, "/judge.tmpl", data)
		return
	}

	selected := tracks[0]
	if name := c.Query("track"); name != "" {
		for _, track := range tracks {
			if track.Name == name {
				selected = track
				break
			}
		}
	}

	inTrack := make([]models.TeamRecord, 0, len(teams))
	for _, team := range teams {
		if team.Track == selected.Name {
			inTrack = append(inTrack, team)
		}
	}

	data["Selected"] = selected
	data["Teams"] = inTrack
	c.HTML(http.StatusOK, "/judge.tmpl", data)
}

func (s judgeService) login(c *gin.Context) {
	name := c.PostForm("judge_name")
	if name == "" {
		s.renderLogin(c, name, "Enter Judge Name")
		return
	}
	if passphrase := s.config.Access.JudgePassphrase; passphrase != "" && c.PostForm("passphrase") != passphrase {
		s.renderLogin(c, name, "Incorrect passphrase")
		return
	}

	session := sessions.Default(c)
	session.Set(keyJudgeName, name)
	s.saveSession(session)
	s.logger(c).Info("Judge logged in", lf.JudgeName(name))

	c.Redirect(http.StatusFound, s.config.Endpoints.Judge)
}

func (s judgeService) logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(keyJudgeName)
	s.saveSession(session)

	c.Redirect(http.StatusFound, s.config.Endpoints.Judge)
}

func (s judgeService) requireJudge(c *gin.Context) {
	if judgeName(c) == "" {
		s.logger(c).Info("Score submitted without judge session")
		c.Redirect(http.StatusFound, s.config.Endpoints.Judge)
		c.Abort()
		return
	}
	c.Next()
}

func scoreField(i int) string {
	return fmt.Sprintf("score_%d", i)
}

func (s judgeService) score(c *gin.Context) {
	team := c.PostForm("team")
	track := c.PostForm("track")

	back := s.config.Endpoints.Judge + "?track=" + url.QueryEscape(track) + "#" + s.server.slug(team)

	criteria := s.server.rubric.Criteria
	scores := make([]int, len(criteria))
	for i, criterion := range criteria {
		value := c.PostForm(scoreField(i))
		if value == "" {
			scores[i] = s.server.rubric.Default
			continue
		}
		score, err := strconv.Atoi(value)
		if err != nil {
			s.flash(c, keyFlashError, fmt.Sprintf("%s: %q is not a number", criterion.Title, value))
			c.Redirect(http.StatusFound, back)
			return
		}
		scores[i] = score
	}

	_, err := s.server.recorder.SubmitScore(c, recorder.ScoreSubmission{
		Judge:   judgeName(c),
		Team:    team,
		Track:   track,
		Scores:  scores,
		Comment: c.PostForm("comment"),
	})
	if err != nil {
		if validationError, ok := recorder.AsValidationError(err); ok {
			s.flash(c, keyFlashError, validationError.Error())
			c.Redirect(http.StatusFound, back)
			return
		}
		s.renderError(c, err)
		return
	}

	s.flash(c, keyFlash, fmt.Sprintf("Score saved for %s!", team))
	c.Redirect(http.StatusFound, back)
}
