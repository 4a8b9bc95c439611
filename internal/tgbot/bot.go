package tgbot

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/verdix/verdix/internal/config"
	"github.com/verdix/verdix/internal/deadlines"
	lf "github.com/verdix/verdix/internal/logfield"
	"github.com/verdix/verdix/internal/models"
	"github.com/verdix/verdix/internal/scorer"
)

const topEntries = 5

type Standings interface {
	Leaderboard(ctx context.Context, track string) (*scorer.Leaderboard, error)
}

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot posts submissions to the organiser chat and answers a few commands.
type Bot struct {
	api    *tgbotapi.BotAPI
	sender sender
	log    *zap.Logger

	chatID  int64
	allowed map[int64]bool
}

func NewBot(conf *config.Config, log *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(conf.Telegram.BotToken)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to create telegram bot")
	}
	return newBot(api, api, conf, log), nil
}

func newBot(api *tgbotapi.BotAPI, s sender, conf *config.Config, log *zap.Logger) *Bot {
	allowed := make(map[int64]bool, len(conf.Telegram.AllowedChats)+1)
	for _, chat := range conf.Telegram.AllowedChats {
		allowed[chat] = true
	}
	if conf.Telegram.ChatID != 0 {
		allowed[conf.Telegram.ChatID] = true
	}
	return &Bot{
		api:     api,
		sender:  s,
		log:     log.With(lf.Module("tgbot")),
		chatID:  conf.Telegram.ChatID,
		allowed: allowed,
	}
}

func (b *Bot) post(text string) error {
	if b.chatID == 0 {
		return nil
	}
	_, err := b.sender.Send(tgbotapi.NewMessage(b.chatID, text))
	return err
}

func (b *Bot) TeamRegistered(ctx context.Context, team *models.TeamRecord) error {
	verb := "registered"
	if team.Kind == models.SubmissionKindUpdate {
		verb = "updated their profile"
	}
	return b.post(fmt.Sprintf("%s %s in %s (%s)", team.TeamName, verb, team.Track, team.Stage))
}

func (b *Bot) ScoreSubmitted(ctx context.Context, score *models.ScoreRecord) error {
	return b.post(fmt.Sprintf("%s scored %s: %d pts", score.JudgeName, score.TeamName, score.Total()))
}

func (b *Bot) Run(ctx context.Context, standings Standings, countdown *deadlines.Countdown) {
	b.log.Info("Authorized on account", zap.String("username", b.api.Self.UserName))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case update := <-updates:
			if err := b.handleUpdate(ctx, update, standings, countdown); err != nil {
				b.log.Error("Failed to handle update", zap.Error(err), zap.Int("update_id", update.UpdateID))
			}
		case <-ctx.Done():
			return
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update, standings Standings, countdown *deadlines.Countdown) error {
	if update.Message == nil || !update.Message.IsCommand() {
		return nil
	}
	if !b.allowed[update.Message.Chat.ID] {
		b.log.Info("Ignoring command from unknown chat", zap.Int64("chat_id", update.Message.Chat.ID))
		return nil
	}

	var text string
	switch update.Message.Command() {
	case "leaderboard":
		text = b.renderLeaderboard(ctx, standings, strings.TrimSpace(update.Message.CommandArguments()))
	case "countdown":
		text = renderCountdown(countdown)
	default:
		text = "Known commands: /leaderboard [track], /countdown"
	}

	msg := tgbotapi.NewMessage(update.Message.Chat.ID, text)
	msg.ReplyToMessageID = update.Message.MessageID

	_, err := b.sender.Send(msg)
	return err
}

func (b *Bot) renderLeaderboard(ctx context.Context, standings Standings, track string) string {
	leaderboard, err := standings.Leaderboard(ctx, track)
	if errors.Is(err, scorer.ErrNoScores) {
		return "Waiting for the first scores to come in..."
	}
	if err != nil {
		b.log.Error("Failed to compute leaderboard", zap.Error(err))
		return fmt.Sprintf("Connection Error: %v", err)
	}
	return RenderLeaderboard(leaderboard, topEntries)
}

func RenderLeaderboard(leaderboard *scorer.Leaderboard, limit int) string {
	var sb strings.Builder
	for i, entry := range leaderboard.Entries {
		if i == limit {
			break
		}
		fmt.Fprintf(&sb, "%s %s: %.2f pts\n", humanize.Ordinal(entry.Rank), entry.TeamName, entry.MeanTotal)
	}
	fmt.Fprintf(&sb, "%d teams judged", leaderboard.TeamsJudged())
	return sb.String()
}

func renderCountdown(countdown *deadlines.Countdown) string {
	if countdown.Expired() {
		return "Registration is officially closed."
	}
	return fmt.Sprintf("Registration closes in %s (%s)", countdown.Remaining(), countdown.Humanized())
}
