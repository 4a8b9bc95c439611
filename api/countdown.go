package api

import "github.com/verdix/verdix/internal/deadlines"

type CountdownResponse struct {
	Status

	Deadline  string              `json:"deadline"`
	Remaining deadlines.Remaining `json:"remaining"`
	Humanized string              `json:"humanized"`
}
