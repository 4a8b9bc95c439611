package web

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/verdix/verdix/internal/config"
	"github.com/verdix/verdix/internal/deadlines"
	lf "github.com/verdix/verdix/internal/logfield"
	"github.com/verdix/verdix/internal/metrics"
	"github.com/verdix/verdix/internal/recorder"
	"github.com/verdix/verdix/internal/rubric"
	"github.com/verdix/verdix/internal/store"
	"github.com/verdix/verdix/internal/tgbot"
)

// NewCountdown parses the configured registration deadline.
func NewCountdown(conf *config.Config, now deadlines.Clock) (*deadlines.Countdown, error) {
	loc, err := conf.Location()
	if err != nil {
		return nil, err
	}
	deadline, err := deadlines.ParseDeadline(conf.Registration.Deadline, loc)
	if err != nil {
		return nil, errors.Wrap(err, "Invalid registration deadline")
	}
	return deadlines.NewCountdown(deadline, now), nil
}

func Run(ctx context.Context, conf *config.Config, logger *zap.Logger) error {
	rb, err := rubric.Load(conf.Scoring.Rubric, conf.Scoring.RubricFile)
	if err != nil {
		return err
	}
	countdown, err := NewCountdown(conf, time.Now)
	if err != nil {
		return err
	}

	m := metrics.New()
	s, err := store.Open(ctx, conf, logger, m, store.SchemaFor(conf, rb.Columns()))
	if err != nil {
		return err
	}

	var bot *tgbot.Bot
	var notifier recorder.Notifier
	if conf.Telegram.BotToken != "" {
		bot, err = tgbot.NewBot(conf, logger)
		if err != nil {
			return err
		}
		notifier = bot
	}

	srv, err := newServer(conf, logger, components{
		store:     s,
		rubric:    rb,
		countdown: countdown,
		metrics:   m,
		notifier:  notifier,
		now:       time.Now,
	})
	if err != nil {
		return errors.Wrap(err, "Failed to start server")
	}
	defer srv.roster.Stop()

	logger.Info("Starting verdix",
		lf.StoreMode(conf.Store.Mode),
		zap.String("rubric", rb.Name),
		zap.Time("deadline", countdown.Deadline()),
	)

	g, ctx := errgroup.WithContext(ctx)
	if bot != nil {
		g.Go(func() error {
			bot.Run(ctx, srv.scorer, countdown)
			return nil
		})
	}
	g.Go(func() error {
		return errors.Wrap(srv.run(ctx), "Server failed")
	})
	return g.Wait()
}
