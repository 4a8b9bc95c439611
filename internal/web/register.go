package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/verdix/verdix/internal/catalog"
	"github.com/verdix/verdix/internal/models"
	"github.com/verdix/verdix/internal/recorder"
)

type registerService struct {
	webService
}

func setupRegisterService(server *server, r *gin.Engine) {
	s := registerService{newWebService(server, "register")}

	r.GET(server.config.Endpoints.Register, s.page)
	r.POST(server.config.Endpoints.Register, s.submit)
}

func (s registerService) render(c *gin.Context, form *recorder.Registration, extra gin.H) {
	tracks, err := s.server.roster.TrackNames(c)
	if err != nil {
		s.renderError(c, err)
		return
	}

	countdown := s.server.countdown
	remaining := countdown.Remaining()
	data := gin.H{
		"Config":     s.config,
		"Closed":     remaining.Expired,
		"Remaining":  remaining,
		"Deadline":   countdown.Deadline().Format(time.RFC3339),
		"Tracks":     tracks,
		"Industries": catalog.Industries,
		"Stages":     catalog.Stages,
		"Max":        catalog.MaxIndustries,
		"Form":       form,
	}
	for key, value := range extra {
		data[key] = value
	}
	c.HTML(http.StatusOK, "/register.tmpl", data)
}

func (s registerService) page(c *gin.Context) {
	s.render(c, &recorder.Registration{Kind: models.SubmissionKindNew}, nil)
}

func (s registerService) submit(c *gin.Context) {
	form := recorder.Registration{}
	if err := c.ShouldBind(&form); err != nil {
		s.render(c, &form, gin.H{"ErrorMessage": err.Error()})
		return
	}

	receipt, err := s.server.recorder.Register(c, form)
	if err != nil {
		if validationError, ok := recorder.AsValidationError(err); ok {
			s.render(c, &form, gin.H{"ErrorMessage": validationError.Error()})
			return
		}
		if errors.Is(err, recorder.ErrRegistrationClosed) {
			s.render(c, &form, nil)
			return
		}
		s.renderError(c, err)
		return
	}

	extra := gin.H{"SuccessMessage": receipt.Message()}
	if receipt.Team.Kind == models.SubmissionKindNew {
		extra["InfoMessage"] = "Your investor profile has been securely logged. The judging panel will review your materials shortly."
	}
	if receipt.Suggestion != "" {
		extra["Suggestion"] = receipt.Suggestion
	}
	s.render(c, &recorder.Registration{Kind: models.SubmissionKindNew}, extra)
}
