package scorer

import (
	"context"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/exp/constraints"

	lf "github.com/verdix/verdix/internal/logfield"
	"github.com/verdix/verdix/internal/metrics"
	"github.com/verdix/verdix/internal/models"
	"github.com/verdix/verdix/internal/store"
)

var ErrNoScores = errors.New("no scores submitted yet")

func finite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}

// Coerce reads a criterion cell as a decimal number. Anything unparsable or
// non-finite counts as 0, and so do hex floats.
func Coerce(value string) float64 {
	value = strings.TrimSpace(value)
	digits := strings.TrimLeft(value, "+-")
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		return 0
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || !finite(parsed) {
		return 0
	}
	return parsed
}

// RowTotal sums the criterion cells of row. A sum that overflows counts as 0.
func RowTotal(row models.Row, columns []string) float64 {
	total := 0.0
	for _, column := range columns {
		total += Coerce(row.Get(column))
	}
	if !finite(total) {
		return 0
	}
	return total
}

func mean[T constraints.Integer | constraints.Float](values []T) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum T
	for _, value := range values {
		sum += value
	}
	if result := float64(sum) / float64(len(values)); finite(result) {
		return result
	}

	// the plain sum overflowed, fall back to a running mean
	result := 0.0
	for i, value := range values {
		result += (float64(value) - result) / float64(i+1)
	}
	return result
}

type teamScores struct {
	name     string
	track    string
	totals   []float64
	criteria [][]float64
}

// ComputeLeaderboard groups score rows by exact team name and ranks teams by
// the mean of their per-row totals. Equal means are ordered by team name.
func ComputeLeaderboard(rows []models.Row, columns []string) (*Leaderboard, error) {
	if len(rows) == 0 {
		return nil, ErrNoScores
	}

	byTeam := make(map[string]*teamScores)
	for _, row := range rows {
		name := row.Get(models.ColumnTeamName)
		team, found := byTeam[name]
		if !found {
			team = &teamScores{
				name:     name,
				criteria: make([][]float64, len(columns)),
			}
			byTeam[name] = team
		}
		if track := row.Get(models.ColumnTrack); track != "" {
			team.track = track
		}
		team.totals = append(team.totals, RowTotal(row, columns))
		for i, column := range columns {
			team.criteria[i] = append(team.criteria[i], Coerce(row.Get(column)))
		}
	}

	entries := make([]Entry, 0, len(byTeam))
	for _, team := range byTeam {
		criterionMeans := make([]float64, len(columns))
		for i := range columns {
			criterionMeans[i] = mean(team.criteria[i])
		}
		entries = append(entries, Entry{
			TeamName:       team.name,
			Track:          team.track,
			MeanTotal:      mean(team.totals),
			Submissions:    len(team.totals),
			CriterionMeans: criterionMeans,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].MeanTotal != entries[j].MeanTotal {
			return entries[i].MeanTotal > entries[j].MeanTotal
		}
		return entries[i].TeamName < entries[j].TeamName
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return &Leaderboard{
		Criteria:    append([]string(nil), columns...),
		Entries:     entries,
		Submissions: len(rows),
	}, nil
}

func FilterTrack(rows []models.Row, track string) []models.Row {
	if track == "" {
		return rows
	}
	filtered := make([]models.Row, 0, len(rows))
	for _, row := range rows {
		if row.Get(models.ColumnTrack) == track {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

type Scorer struct {
	store   store.Store
	table   string
	columns []string
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewScorer(s store.Store, table string, columns []string, m *metrics.Metrics, logger *zap.Logger) *Scorer {
	return &Scorer{
		store:   s,
		table:   table,
		columns: columns,
		metrics: m,
		logger:  logger.With(lf.Module("scorer")),
	}
}

// Leaderboard re-reads every score row and ranks the teams of track, or of
// every track when track is empty.
func (s *Scorer) Leaderboard(ctx context.Context, track string) (*Leaderboard, error) {
	start := time.Now()
	rows, err := s.store.ReadAll(ctx, s.table)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to read scores")
	}

	leaderboard, err := ComputeLeaderboard(FilterTrack(rows, track), s.columns)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveLeaderboard(leaderboard.TeamsJudged(), time.Since(start))
	s.logger.Debug("Computed leaderboard",
		lf.Track(track),
		lf.Rows(leaderboard.Submissions),
		lf.TotalScore(leaderboard.HighestScore()),
	)
	return leaderboard, nil
}
