package api

type Team struct {
	Name             string   `json:"name"`
	Track            string   `json:"track"`
	University       string   `json:"university"`
	Industries       []string `json:"industries"`
	Stage            string   `json:"stage"`
	ValueProposition string   `json:"value_proposition"`
	VideoLink        string   `json:"video_link,omitempty"`
	DeckLink         string   `json:"deck_link"`
	UpdatedAt        string   `json:"updated_at"`
}

type TeamsRequest struct {
	Track string `json:"track" form:"track"`
}

type TeamsResponse struct {
	Status

	Teams []Team `json:"teams"`
}
