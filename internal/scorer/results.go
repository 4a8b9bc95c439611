package scorer

type Entry struct {
	Rank        int     `json:"rank"`
	TeamName    string  `json:"team_name"`
	Track       string  `json:"track,omitempty"`
	MeanTotal   float64 `json:"mean_total"`
	Submissions int     `json:"submissions"`
	// CriterionMeans follows Leaderboard.Criteria.
	CriterionMeans []float64 `json:"criterion_means"`
}

type Leaderboard struct {
	Criteria    []string `json:"criteria"`
	Entries     []Entry  `json:"entries"`
	Submissions int      `json:"submissions"`
}

func (l *Leaderboard) Top() *Entry {
	if len(l.Entries) == 0 {
		return nil
	}
	return &l.Entries[0]
}

func (l *Leaderboard) HighestScore() float64 {
	if top := l.Top(); top != nil {
		return top.MeanTotal
	}
	return 0
}

func (l *Leaderboard) TeamsJudged() int {
	return len(l.Entries)
}
