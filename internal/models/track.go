package models

const (
	ColumnTrackName = "Track Name"
	ColumnTrackList = "Track List"
	ColumnVenue     = "Venue"
)

var TrackColumns = []string{ColumnTrackName, ColumnVenue}

type TrackRecord struct {
	Name  string
	Venue string
}

func (t *TrackRecord) Values() []interface{} {
	return []interface{}{t.Name, t.Venue}
}

// ParseTracks keeps the rows that name a track, in stored order. Sheets
// headed "Track List" instead of "Track Name" are read too.
func ParseTracks(rows []Row) []TrackRecord {
	tracks := make([]TrackRecord, 0, len(rows))
	for _, row := range rows {
		name := row.Get(ColumnTrackName)
		if name == "" {
			name = row.Get(ColumnTrackList)
		}
		if name == "" {
			continue
		}
		tracks = append(tracks, TrackRecord{Name: name, Venue: row.Get(ColumnVenue)})
	}
	return tracks
}
