package api

import "github.com/verdix/verdix/internal/scorer"

type LeaderboardRequest struct {
	Track string `json:"track" form:"track"`
}

type LeaderboardResponse struct {
	Status

	// Empty is set when no scores were submitted yet; Leaderboard is nil then.
	Empty       bool                `json:"empty,omitempty"`
	Leaderboard *scorer.Leaderboard `json:"leaderboard,omitempty"`
}
