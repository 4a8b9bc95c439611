// Package roster derives the current teams and tracks from the append-only tables.
package roster

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/karlseguin/ccache/v2"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"

	"github.com/verdix/verdix/internal/models"
	"github.com/verdix/verdix/internal/store"
)

const tracksKey = "tracks"

type Options struct {
	TeamsTable  string
	ConfigTable string
	Location    *time.Location
	// TracksTTL bounds how stale the track list may be; zero disables caching.
	TracksTTL time.Duration
}

type Roster struct {
	store   store.Store
	options Options
	cache   *ccache.Cache
}

func New(s store.Store, options Options) *Roster {
	if options.Location == nil {
		options.Location = time.Local
	}
	return &Roster{
		store:   s,
		options: options,
		cache:   ccache.New(ccache.Configure().MaxSize(16)),
	}
}

func (r *Roster) Stop() {
	r.cache.Stop()
}

func (r *Roster) readTracks(ctx context.Context) ([]models.TrackRecord, error) {
	rows, err := r.store.ReadAll(ctx, r.options.ConfigTable)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to read tracks")
	}
	return models.ParseTracks(rows), nil
}

// Tracks lists the configured tracks in sheet order.
func (r *Roster) Tracks(ctx context.Context) ([]models.TrackRecord, error) {
	if r.options.TracksTTL <= 0 {
		return r.readTracks(ctx)
	}
	item, err := r.cache.Fetch(tracksKey, r.options.TracksTTL, func() (interface{}, error) {
		return r.readTracks(ctx)
	})
	if err != nil {
		return nil, err
	}
	return item.Value().([]models.TrackRecord), nil
}

func (r *Roster) TrackNames(ctx context.Context) ([]string, error) {
	tracks, err := r.Tracks(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(tracks))
	for i, track := range tracks {
		names[i] = track.Name
	}
	return names, nil
}

// Venue returns the venue of the first Config row naming the track.
func (r *Roster) Venue(ctx context.Context, track string) (string, error) {
	tracks, err := r.Tracks(ctx)
	if err != nil {
		return "", err
	}
	for _, t := range tracks {
		if t.Name == track {
			return t.Venue, nil
		}
	}
	return "", nil
}

func (r *Roster) HasTrack(ctx context.Context, track string) (bool, error) {
	tracks, err := r.Tracks(ctx)
	if err != nil {
		return false, err
	}
	for _, t := range tracks {
		if t.Name == track {
			return true, nil
		}
	}
	return false, nil
}

// InvalidateTracks drops the cached track list.
func (r *Roster) InvalidateTracks() {
	r.cache.Delete(tracksKey)
}

// Registrations returns every Teams row in stored order, updates included.
func (r *Roster) Registrations(ctx context.Context) ([]models.TeamRecord, error) {
	rows, err := r.store.ReadAll(ctx, r.options.TeamsTable)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to read teams")
	}
	teams := make([]models.TeamRecord, 0, len(rows))
	for _, row := range rows {
		team := models.ParseTeam(row, r.options.Location)
		if team.TeamName == "" {
			continue
		}
		teams = append(teams, team)
	}
	return teams, nil
}

// Latest collapses registrations by exact team name: the last row wins and
// teams keep the position of their first registration.
func Latest(registrations []models.TeamRecord) []models.TeamRecord {
	index := make(map[string]int, len(registrations))
	teams := make([]models.TeamRecord, 0, len(registrations))
	for _, team := range registrations {
		if i, found := index[team.TeamName]; found {
			teams[i] = team
			continue
		}
		index[team.TeamName] = len(teams)
		teams = append(teams, team)
	}
	return teams
}

func (r *Roster) Teams(ctx context.Context) ([]models.TeamRecord, error) {
	registrations, err := r.Registrations(ctx)
	if err != nil {
		return nil, err
	}
	return Latest(registrations), nil
}

func (r *Roster) TeamsInTrack(ctx context.Context, track string) ([]models.TeamRecord, error) {
	teams, err := r.Teams(ctx)
	if err != nil {
		return nil, err
	}
	inTrack := make([]models.TeamRecord, 0, len(teams))
	for _, team := range teams {
		if team.Track == track {
			inTrack = append(inTrack, team)
		}
	}
	return inTrack, nil
}

func Names(teams []models.TeamRecord) []string {
	names := make([]string, len(teams))
	for i, team := range teams {
		names[i] = team.TeamName
	}
	return names
}

// Suggest finds the registered name closest to name, ignoring case. It
// reports false when name is registered exactly or nothing is close enough.
func Suggest(name string, registered []string) (string, bool) {
	fold := cases.Fold()
	folded := fold.String(name)
	limit := utf8.RuneCountInString(folded) / 3
	if limit < 2 {
		limit = 2
	}

	best, bestDistance := "", limit+1
	for _, candidate := range registered {
		if candidate == name {
			return "", false
		}
		distance := levenshtein.ComputeDistance(folded, fold.String(candidate))
		if distance < bestDistance {
			best, bestDistance = candidate, distance
		}
	}
	return best, best != ""
}
