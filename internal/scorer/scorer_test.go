package scorer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/verdix/verdix/internal/models"
	"github.com/verdix/verdix/internal/store"
)

var columns = []string{"A", "B", "C"}

func scoreRow(team, track string, scores ...string) models.Row {
	row := models.Row{
		models.ColumnTeamName: team,
		models.ColumnTrack:    track,
	}
	for i, score := range scores {
		row[columns[i]] = score
	}
	return row
}

func TestCoerce(t *testing.T) {
	for value, expected := range map[string]float64{
		"3":     3,
		" 4 ":   4,
		"2.5":   2.5,
		"":      0,
		"five":  0,
		"NaN":   0,
		"+Inf":  0,
		"-1":    -1,
		"1e3":   1000,
		"0x1p2": 0,
		"-0X10": 0,
		"1_000": 0,
		"Inf":   0,
		"1e400": 0,
	} {
		if got := Coerce(value); got != expected {
			t.Errorf("Coerce(%q) = %v, expected %v", value, got, expected)
		}
	}
}

func TestComputeLeaderboard(t *testing.T) {
	rows := []models.Row{
		scoreRow("Alpha", "Fintech", "5", "5", "5"),
		scoreRow("Beta", "Fintech", "1", "2", "3"),
		scoreRow("Alpha", "Fintech", "3", "3", "3"),
		scoreRow("Beta", "Fintech", "x", "", "4"),
	}

	leaderboard, err := ComputeLeaderboard(rows, columns)
	if err != nil {
		t.Fatal(err)
	}

	expected := []Entry{
		{Rank: 1, TeamName: "Alpha", Track: "Fintech", MeanTotal: 12, Submissions: 2, CriterionMeans: []float64{4, 4, 4}},
		{Rank: 2, TeamName: "Beta", Track: "Fintech", MeanTotal: 5, Submissions: 2, CriterionMeans: []float64{0.5, 1, 3.5}},
	}
	if diff := cmp.Diff(expected, leaderboard.Entries); diff != "" {
		t.Errorf("Entries mismatch (-want +got):\n%s", diff)
	}
	if leaderboard.Top().TeamName != "Alpha" || leaderboard.HighestScore() != 12 || leaderboard.TeamsJudged() != 2 {
		t.Errorf("Unexpected summary: %+v", leaderboard)
	}
	if leaderboard.Submissions != 4 {
		t.Errorf("Submissions = %d", leaderboard.Submissions)
	}
}

func TestRowTotalOverflow(t *testing.T) {
	row := scoreRow("Alpha", "", "1e308", "1e308", "1")
	if got := RowTotal(row, columns); got != 0 {
		t.Errorf("RowTotal = %v, expected 0 for an overflowing sum", got)
	}
}

func TestMeanOverflow(t *testing.T) {
	if got := mean([]float64{1.5e308, 1.5e308}); got != 1.5e308 {
		t.Errorf("mean = %v", got)
	}
}

func TestComputeLeaderboardExactMean(t *testing.T) {
	rows := []models.Row{
		scoreRow("Alpha", "", "10", "0", "0"),
		scoreRow("Alpha", "", "5", "10", "5"),
		scoreRow("Alpha", "", "10", "10", "10"),
	}
	leaderboard, err := ComputeLeaderboard(rows, columns)
	if err != nil {
		t.Fatal(err)
	}
	if got := leaderboard.Top().MeanTotal; got != 20.0 {
		t.Errorf("MeanTotal = %v, expected exactly 20", got)
	}
}

func TestComputeLeaderboardFiniteTotals(t *testing.T) {
	rows := []models.Row{
		scoreRow("Alpha", "", "1e308", "1e308", "1e308"),
		scoreRow("Alpha", "", "1.7e308", "0", "0"),
		scoreRow("Beta", "", "3", "3", "3"),
	}
	leaderboard, err := ComputeLeaderboard(rows, columns)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range leaderboard.Entries {
		if math.IsInf(entry.MeanTotal, 0) || math.IsNaN(entry.MeanTotal) {
			t.Errorf("%s has a non-finite mean", entry.TeamName)
		}
		for _, value := range entry.CriterionMeans {
			if math.IsInf(value, 0) || math.IsNaN(value) {
				t.Errorf("%s has a non-finite criterion mean", entry.TeamName)
			}
		}
	}
}

func TestComputeLeaderboardOrdered(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	rows := make([]models.Row, 0)
	for team := 0; team < 12; team++ {
		for judge := 0; judge < 4; judge++ {
			rows = append(rows, scoreRow(
				fmt.Sprintf("Team %02d", team), "",
				fmt.Sprint(random.Intn(6)), fmt.Sprint(random.Intn(6)), fmt.Sprint(random.Intn(6)),
			))
		}
	}
	random.Shuffle(len(rows), func(i, j int) { rows[i], rows[j] = rows[j], rows[i] })

	leaderboard, err := ComputeLeaderboard(rows, columns)
	if err != nil {
		t.Fatal(err)
	}
	if leaderboard.TeamsJudged() != 12 {
		t.Fatalf("expected 12 teams, got %d", leaderboard.TeamsJudged())
	}
	for i := 1; i < len(leaderboard.Entries); i++ {
		prev, cur := leaderboard.Entries[i-1], leaderboard.Entries[i]
		if prev.MeanTotal < cur.MeanTotal {
			t.Errorf("rank %d (%v) is below rank %d (%v)", prev.Rank, prev.MeanTotal, cur.Rank, cur.MeanTotal)
		}
		if cur.Rank != i+1 {
			t.Errorf("entry %d has rank %d", i, cur.Rank)
		}
	}
}

func TestComputeLeaderboardTies(t *testing.T) {
	rows := []models.Row{
		scoreRow("Gamma", "", "1", "1", "1"),
		scoreRow("Alpha", "", "1", "1", "1"),
		scoreRow("Beta", "", "2", "2", "2"),
	}
	leaderboard, err := ComputeLeaderboard(rows, columns)
	if err != nil {
		t.Fatal(err)
	}

	names := make([]string, 0)
	for _, entry := range leaderboard.Entries {
		names = append(names, entry.TeamName)
	}
	if diff := cmp.Diff([]string{"Beta", "Alpha", "Gamma"}, names); diff != "" {
		t.Errorf("Order mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeLeaderboardExactNames(t *testing.T) {
	rows := []models.Row{
		scoreRow("Alpha", "", "1", "1", "1"),
		scoreRow("alpha ", "", "2", "2", "2"),
	}
	leaderboard, err := ComputeLeaderboard(rows, columns)
	if err != nil {
		t.Fatal(err)
	}
	if leaderboard.TeamsJudged() != 2 {
		t.Errorf("expected names to be grouped exactly, got %d teams", leaderboard.TeamsJudged())
	}
}

func TestComputeLeaderboardEmpty(t *testing.T) {
	if _, err := ComputeLeaderboard(nil, columns); !errors.Is(err, ErrNoScores) {
		t.Fatalf("expected ErrNoScores, got %v", err)
	}
}

func TestScorerLeaderboard(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore(store.Schema{"Scores": models.ScoreColumns(columns)})
	scorer := NewScorer(s, "Scores", columns, nil, zap.NewNop())

	if _, err := scorer.Leaderboard(ctx, ""); !errors.Is(err, ErrNoScores) {
		t.Fatalf("expected ErrNoScores, got %v", err)
	}

	for _, record := range []models.ScoreRecord{
		{JudgeName: "J1", TeamName: "Alpha", Track: "Fintech", Scores: []int{1, 2, 3}},
		{JudgeName: "J1", TeamName: "Beta", Track: "Healthtech", Scores: []int{5, 5, 5}},
	} {
		if err := s.Append(ctx, "Scores", record.Values()); err != nil {
			t.Fatal(err)
		}
	}

	leaderboard, err := scorer.Leaderboard(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if leaderboard.Top().TeamName != "Beta" {
		t.Errorf("expected Beta on top, got %s", leaderboard.Top().TeamName)
	}

	leaderboard, err = scorer.Leaderboard(ctx, "Fintech")
	if err != nil {
		t.Fatal(err)
	}
	if leaderboard.TeamsJudged() != 1 || leaderboard.HighestScore() != 6 {
		t.Errorf("unexpected Fintech leaderboard: %+v", leaderboard.Entries)
	}

	if _, err = scorer.Leaderboard(ctx, "Edtech"); !errors.Is(err, ErrNoScores) {
		t.Errorf("expected ErrNoScores for an unscored track, got %v", err)
	}
}
