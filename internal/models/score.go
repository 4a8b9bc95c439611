package models

import "time"

const (
	ColumnJudgeName = "Judge Name"
	ColumnComment   = "Comment"
)

// ScoreColumns is the Scores header for the given criterion columns.
func ScoreColumns(criteria []string) []string {
	columns := make([]string, 0, len(criteria)+5)
	columns = append(columns, ColumnTimestamp, ColumnJudgeName, ColumnTeamName, ColumnTrack)
	columns = append(columns, criteria...)
	return append(columns, ColumnComment)
}

type ScoreRecord struct {
	SubmittedAt time.Time
	JudgeName   string
	TeamName    string
	Track       string
	Scores      []int
	Comment     string
}

func (s *ScoreRecord) Total() int {
	total := 0
	for _, score := range s.Scores {
		total += score
	}
	return total
}

// Values returns the cells in Scores column order. Scores stay numeric so
// spreadsheet backends keep them as numbers.
func (s *ScoreRecord) Values() []interface{} {
	values := make([]interface{}, 0, len(s.Scores)+5)
	values = append(values, s.SubmittedAt.Format(TimestampLayout), s.JudgeName, s.TeamName, s.Track)
	for _, score := range s.Scores {
		values = append(values, score)
	}
	return append(values, s.Comment)
}
