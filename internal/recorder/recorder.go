// Package recorder validates submissions and appends them to the store.
package recorder

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/verdix/verdix/internal/catalog"
	"github.com/verdix/verdix/internal/deadlines"
	lf "github.com/verdix/verdix/internal/logfield"
	"github.com/verdix/verdix/internal/metrics"
	"github.com/verdix/verdix/internal/models"
	"github.com/verdix/verdix/internal/roster"
	"github.com/verdix/verdix/internal/rubric"
	"github.com/verdix/verdix/internal/store"
)

var ErrRegistrationClosed = errors.New("Registration is officially closed")

const (
	formRegistration = "registration"
	formScore        = "score"
)

// Registration is the student registration form.
type Registration struct {
	Kind             models.SubmissionKind `form:"kind"`
	TeamName         string                `form:"team_name" validate:"required" label:"Startup / Team Name"`
	Track            string                `form:"track" validate:"required" label:"Track"`
	TeamLeaders      string                `form:"team_leaders" validate:"required" label:"Team Leaders"`
	StudentID        string                `form:"student_id" validate:"required" label:"Student ID / IC No"`
	University       string                `form:"university" validate:"required" label:"University / Institution"`
	Faculty          string                `form:"faculty" validate:"required" label:"Faculty / School"`
	Programme        string                `form:"programme" validate:"required" label:"Academic Programme"`
	Industries       []string              `form:"industries" validate:"min=1,max=3" label:"Industry / Tags"`
	Stage            string                `form:"stage" validate:"required" label:"Stage of Startup"`
	ValueProposition string                `form:"value_proposition" validate:"required" label:"Value Proposition"`
	VideoLink        string                `form:"video_link" label:"Pitch Video Link"`
	DeckLink         string                `form:"deck_link" validate:"required" label:"Pitch Deck / Logo Link"`
}

type RegistrationReceipt struct {
	Team models.TeamRecord
	// Suggestion is set when an update names no registered team but a similar one exists.
	Suggestion string
}

func (r *RegistrationReceipt) Message() string {
	if r.Team.Kind == models.SubmissionKindUpdate {
		return fmt.Sprintf("%s's profile has been securely updated in the Verdix system.", r.Team.TeamName)
	}
	return fmt.Sprintf("%s successfully registered.", r.Team.TeamName)
}

type ScoreSubmission struct {
	Judge   string `form:"judge" validate:"required" label:"Judge Name"`
	Team    string `form:"team" validate:"required" label:"Team Name"`
	Track   string `form:"track"`
	Scores  []int  `form:"scores"`
	Comment string `form:"comment"`
}

type Notifier interface {
	TeamRegistered(ctx context.Context, team *models.TeamRecord) error
	ScoreSubmitted(ctx context.Context, score *models.ScoreRecord) error
}

type nopNotifier struct{}

func (nopNotifier) TeamRegistered(context.Context, *models.TeamRecord) error {
	return nil
}

func (nopNotifier) ScoreSubmitted(context.Context, *models.ScoreRecord) error {
	return nil
}

type Options struct {
	TeamsTable  string
	ScoresTable string
	Location    *time.Location
	Now         deadlines.Clock
	Notifier    Notifier
	Metrics     *metrics.Metrics
}

type Recorder struct {
	store     store.Store
	roster    *roster.Roster
	rubric    *rubric.Rubric
	countdown *deadlines.Countdown
	options   Options
	logger    *zap.Logger
}

func New(s store.Store, r *roster.Roster, rb *rubric.Rubric, countdown *deadlines.Countdown, options Options, logger *zap.Logger) *Recorder {
	if options.Location == nil {
		options.Location = time.Local
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	if options.Notifier == nil {
		options.Notifier = nopNotifier{}
	}
	return &Recorder{
		store:     s,
		roster:    r,
		rubric:    rb,
		countdown: countdown,
		options:   options,
		logger:    logger.With(lf.Module("recorder")),
	}
}

func (r *Recorder) now() time.Time {
	return r.options.Now().In(r.options.Location)
}

func (r *Recorder) rejected(form string, err *ValidationError) error {
	r.options.Metrics.CountValidationFailure(form)
	return err
}

func (r *Recorder) validateRegistration(ctx context.Context, form *Registration) (*ValidationError, error) {
	result := check(form)

	if form.Track != "" {
		known, err := r.roster.HasTrack(ctx, form.Track)
		if err != nil {
			return nil, err
		}
		if !known {
			result.invalid("Track: %q is not an open track", form.Track)
		}
	}
	for _, industry := range form.Industries {
		if _, found := catalog.FindIndustry(industry); !found {
			result.invalid("Industry / Tags: unknown tag %q", industry)
		}
	}
	if form.Stage != "" {
		if _, found := catalog.FindStage(form.Stage); !found {
			result.invalid("Stage of Startup: unknown stage %q", form.Stage)
		}
	}
	return result, nil
}

// Register appends one Teams row. Nothing is written when registration is
// closed or when the form is incomplete.
func (r *Recorder) Register(ctx context.Context, form Registration) (*RegistrationReceipt, error) {
	if r.countdown != nil && r.countdown.Expired() {
		return nil, ErrRegistrationClosed
	}

	result, err := r.validateRegistration(ctx, &form)
	if err != nil {
		return nil, err
	}
	if !result.empty() {
		return nil, r.rejected(formRegistration, result)
	}

	kind := form.Kind
	if kind != models.SubmissionKindUpdate {
		kind = models.SubmissionKindNew
	}
	team := models.TeamRecord{
		SubmittedAt:      r.now(),
		Kind:             kind,
		TeamName:         form.TeamName,
		Track:            form.Track,
		TeamLeaders:      form.TeamLeaders,
		StudentID:        form.StudentID,
		University:       form.University,
		Faculty:          form.Faculty,
		Programme:        form.Programme,
		Industries:       form.Industries,
		Stage:            form.Stage,
		ValueProposition: form.ValueProposition,
		VideoLink:        form.VideoLink,
		DeckLink:         form.DeckLink,
	}
	receipt := &RegistrationReceipt{Team: team}

	if kind == models.SubmissionKindUpdate {
		teams, err := r.roster.Teams(ctx)
		if err != nil {
			return nil, err
		}
		names := roster.Names(teams)
		if suggestion, found := roster.Suggest(team.TeamName, names); found {
			receipt.Suggestion = suggestion
		}
	}

	if err = r.store.Append(ctx, r.options.TeamsTable, team.Values()); err != nil {
		return nil, errors.Wrap(err, "Failed to save registration")
	}
	r.options.Metrics.CountSubmission(string(kind))
	r.logger.Info("Team registered", lf.TeamName(team.TeamName), lf.Track(team.Track), lf.Kind(string(kind)))

	if err = r.options.Notifier.TeamRegistered(ctx, &team); err != nil {
		r.logger.Warn("Failed to notify about registration", lf.TeamName(team.TeamName), zap.Error(err))
	}
	return receipt, nil
}

// SubmitScore appends one Scores row. Repeated submissions are all kept.
func (r *Recorder) SubmitScore(ctx context.Context, submission ScoreSubmission) (*models.ScoreRecord, error) {
	result := check(&submission)

	criteria := r.rubric.Criteria
	if len(submission.Scores) > len(criteria) {
		result.invalid("Expected %d scores, got %d", len(criteria), len(submission.Scores))
	}
	scores := make([]int, len(criteria))
	for i, criterion := range criteria {
		scores[i] = r.rubric.Default
		if i < len(submission.Scores) {
			scores[i] = submission.Scores[i]
		}
		if !r.rubric.InRange(scores[i]) {
			result.invalid("%s: %d is outside %d-%d", criterion.Title, scores[i], r.rubric.Min, r.rubric.Max)
		}
	}
	if !result.empty() {
		return nil, r.rejected(formScore, result)
	}

	record := &models.ScoreRecord{
		SubmittedAt: r.now(),
		JudgeName:   submission.Judge,
		TeamName:    submission.Team,
		Track:       submission.Track,
		Scores:      scores,
		Comment:     submission.Comment,
	}
	if err := r.store.Append(ctx, r.options.ScoresTable, record.Values()); err != nil {
		return nil, errors.Wrap(err, "Failed to save score")
	}
	r.options.Metrics.CountSubmission(formScore)
	r.logger.Info("Score submitted",
		lf.JudgeName(record.JudgeName),
		lf.TeamName(record.TeamName),
		lf.Track(record.Track),
		lf.TotalScore(float64(record.Total())),
	)

	if err := r.options.Notifier.ScoreSubmitted(ctx, record); err != nil {
		r.logger.Warn("Failed to notify about score", lf.TeamName(record.TeamName), zap.Error(err))
	}
	return record, nil
}
