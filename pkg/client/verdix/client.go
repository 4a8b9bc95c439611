package verdix

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/verdix/verdix/api"
	"github.com/verdix/verdix/internal/scorer"
)

type Client struct {
	client *resty.Client
}

func NewClient(endpoint, token string) (*Client, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("empty endpoint")
	}
	client := resty.New().
		SetBaseURL(endpoint).
		SetTimeout(time.Second * 10)

	client.Header.Add("Token", token)

	return &Client{client}, nil
}

func (c *Client) status(res *api.Status, what string) error {
	if !res.Ok {
		return fmt.Errorf("failed to fetch %s: %s", what, res.Error)
	}
	return nil
}

// LoadLeaderboard returns nil without error while nothing is scored.
func (c *Client) LoadLeaderboard(track string) (*scorer.Leaderboard, error) {
	res := &api.LeaderboardResponse{}
	_, err := c.client.R().
		SetResult(res).
		SetError(res).
		SetQueryParam("track", track).
		Get("/api/leaderboard")
	if err != nil {
		return nil, err
	}
	if err = c.status(&res.Status, "leaderboard"); err != nil {
		return nil, err
	}

	return res.Leaderboard, nil
}

func (c *Client) LoadTeams(track string) ([]api.Team, error) {
	res := &api.TeamsResponse{}
	_, err := c.client.R().
		SetResult(res).
		SetError(res).
		SetQueryParam("track", track).
		Get("/api/teams")
	if err != nil {
		return nil, err
	}
	if err = c.status(&res.Status, "teams"); err != nil {
		return nil, err
	}

	return res.Teams, nil
}

func (c *Client) LoadCountdown() (*api.CountdownResponse, error) {
	res := &api.CountdownResponse{}
	_, err := c.client.R().
		SetResult(res).
		SetError(res).
		Get("/api/countdown")
	if err != nil {
		return nil, err
	}
	if err = c.status(&res.Status, "countdown"); err != nil {
		return nil, err
	}

	return res, nil
}
