package web

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/alexsergivan/transliterator"
	"github.com/dustin/go-humanize"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/verdix/verdix/internal/config"
	"github.com/verdix/verdix/internal/deadlines"
	"github.com/verdix/verdix/internal/metrics"
	"github.com/verdix/verdix/internal/recorder"
	"github.com/verdix/verdix/internal/roster"
	"github.com/verdix/verdix/internal/rubric"
	"github.com/verdix/verdix/internal/scorer"
	"github.com/verdix/verdix/internal/store"
	static "github.com/verdix/verdix/web"
)

type server struct {
	config *config.Config
	logger *zap.Logger

	store     store.Store
	rubric    *rubric.Rubric
	countdown *deadlines.Countdown
	roster    *roster.Roster
	scorer    *scorer.Scorer
	recorder  *recorder.Recorder
	metrics   *metrics.Metrics
	translit  *transliterator.Transliterator
}

type components struct {
	store     store.Store
	rubric    *rubric.Rubric
	countdown *deadlines.Countdown
	metrics   *metrics.Metrics
	notifier  recorder.Notifier
	now       deadlines.Clock
}

func newServer(conf *config.Config, logger *zap.Logger, c components) (*server, error) {
	loc, err := conf.Location()
	if err != nil {
		return nil, err
	}

	r := roster.New(c.store, roster.Options{
		TeamsTable:  conf.Store.Tables.Teams,
		ConfigTable: conf.Store.Tables.Config,
		Location:    loc,
		TracksTTL:   conf.Cache.TracksTTL,
	})

	return &server{
		config:    conf,
		logger:    logger,
		store:     c.store,
		rubric:    c.rubric,
		countdown: c.countdown,
		roster:    r,
		scorer:    scorer.NewScorer(c.store, conf.Store.Tables.Scores, c.rubric.Columns(), c.metrics, logger),
		recorder: recorder.New(c.store, r, c.rubric, c.countdown, recorder.Options{
			TeamsTable:  conf.Store.Tables.Teams,
			ScoresTable: conf.Store.Tables.Scores,
			Location:    loc,
			Now:         c.now,
			Notifier:    c.notifier,
			Metrics:     c.metrics,
		}, logger),
		metrics:  c.metrics,
		translit: transliterator.NewTransliterator(nil),
	}, nil
}

func (s *server) slug(name string) string {
	latin := strings.ToLower(s.translit.Transliterate(name, "en"))
	return strings.Trim(strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return '-'
	}, latin), "-")
}

func buildHTMLTemplates(tfs fs.FS, funcMap template.FuncMap) (*template.Template, error) {
	tmpl := template.New("").Funcs(funcMap)
	err := fs.WalkDir(tfs, ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(path, ".tmpl") {
			return nil
		}

		bytes, err := fs.ReadFile(tfs, path)
		if err != nil {
			return err
		}
		_, err = tmpl.New("/" + path).Parse(string(bytes))
		return errors.Wrapf(err, "Failed to parse %s", path)
	})
	if err != nil {
		return nil, errors.Wrap(err, "Failed to collect html templates")
	}

	return tmpl, nil
}

func (s *server) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"inc": func(i int) int {
			return i + 1
		},
		"slug":    s.slug,
		"ordinal": humanize.Ordinal,
		"points": func(v float64) string {
			return fmt.Sprintf("%.2f", v)
		},
		"percent": func(value float64, max int) float64 {
			if max <= 0 {
				return 0
			}
			return 100 * value / float64(max)
		},
		"contains": func(values []string, value string) bool {
			for _, v := range values {
				if v == value {
					return true
				}
			}
			return false
		},
		"at": func(values []float64, i int) float64 {
			if i < 0 || i >= len(values) {
				return 0
			}
			return values[i]
		},
	}
}

func (s *server) engine() (*gin.Engine, error) {
	tmpl, err := buildHTMLTemplates(static.StaticTemplates, s.templateFuncs())
	if err != nil {
		return nil, errors.Wrap(err, "Failed to build html templates")
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(requestID())
	r.Use(ginzap.Ginzap(s.logger, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(s.logger, true))

	r.SetHTMLTemplate(tmpl)

	if err = setupSessions(s, r); err != nil {
		return nil, err
	}
	setupHomeService(s, r)
	setupRegisterService(s, r)
	setupJudgeService(s, r)
	setupLeaderboardService(s, r)
	setupApiService(s, r)

	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong "+fmt.Sprint(time.Now().Unix()))
	})
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	r.StaticFS("/static", http.FS(static.StaticContent))

	return r, nil
}

func (s *server) run(ctx context.Context) error {
	r, err := s.engine()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    s.config.Server.ListenAddress,
		Handler: r,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("Failed to shut down server", zap.Error(err))
		}
	}()

	s.logger.Info("Starting server", zap.String("bind_address", s.config.Server.ListenAddress))
	if err = srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
