package models

import (
	"strings"
	"time"
)

const (
	SubmissionKindNew    SubmissionKind = "new"
	SubmissionKindUpdate SubmissionKind = "update"
)

type SubmissionKind string

func (k SubmissionKind) Label() string {
	if k == SubmissionKindUpdate {
		return "Update Existing Registration"
	}
	return "New Registration"
}

// ParseSubmissionKind maps a stored label back to a kind.
func ParseSubmissionKind(label string) SubmissionKind {
	if strings.Contains(label, "Update") || label == string(SubmissionKindUpdate) {
		return SubmissionKindUpdate
	}
	return SubmissionKindNew
}

const (
	ColumnTimestamp        = "Timestamp"
	ColumnSubmissionType   = "Submission Type"
	ColumnTeamName         = "Team Name"
	ColumnTrack            = "Track"
	ColumnTeamLeaders      = "Team Leaders"
	ColumnStudentID        = "Student ID"
	ColumnUniversity       = "University"
	ColumnFaculty          = "Faculty"
	ColumnProgramme        = "Programme"
	ColumnIndustry         = "Industry"
	ColumnStage            = "Stage"
	ColumnValueProposition = "Value Proposition"
	ColumnVideoLink        = "Video Link"
	ColumnDeckLink         = "Link to Logo"
)

var TeamColumns = []string{
	ColumnTimestamp,
	ColumnSubmissionType,
	ColumnTeamName,
	ColumnTrack,
	ColumnTeamLeaders,
	ColumnStudentID,
	ColumnUniversity,
	ColumnFaculty,
	ColumnProgramme,
	ColumnIndustry,
	ColumnStage,
	ColumnValueProposition,
	ColumnVideoLink,
	ColumnDeckLink,
}

const industrySeparator = ", "

type TeamRecord struct {
	SubmittedAt      time.Time
	Kind             SubmissionKind
	TeamName         string
	Track            string
	TeamLeaders      string
	StudentID        string
	University       string
	Faculty          string
	Programme        string
	Industries       []string
	Stage            string
	ValueProposition string
	VideoLink        string
	DeckLink         string
}

func JoinIndustries(industries []string) string {
	return strings.Join(industries, industrySeparator)
}

func SplitIndustries(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	industries := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			industries = append(industries, part)
		}
	}
	return industries
}

// Values returns the cells in Teams column order.
func (t *TeamRecord) Values() []interface{} {
	return []interface{}{
		t.SubmittedAt.Format(TimestampLayout),
		t.Kind.Label(),
		t.TeamName,
		t.Track,
		t.TeamLeaders,
		t.StudentID,
		t.University,
		t.Faculty,
		t.Programme,
		JoinIndustries(t.Industries),
		t.Stage,
		t.ValueProposition,
		t.VideoLink,
		t.DeckLink,
	}
}

func ParseTeam(row Row, loc *time.Location) TeamRecord {
	return TeamRecord{
		SubmittedAt:      ParseTimestamp(row.Get(ColumnTimestamp), loc),
		Kind:             ParseSubmissionKind(row.Get(ColumnSubmissionType)),
		TeamName:         row.Get(ColumnTeamName),
		Track:            row.Get(ColumnTrack),
		TeamLeaders:      row.Get(ColumnTeamLeaders),
		StudentID:        row.Get(ColumnStudentID),
		University:       row.Get(ColumnUniversity),
		Faculty:          row.Get(ColumnFaculty),
		Programme:        row.Get(ColumnProgramme),
		Industries:       SplitIndustries(row.Get(ColumnIndustry)),
		Stage:            row.Get(ColumnStage),
		ValueProposition: row.Get(ColumnValueProposition),
		VideoLink:        row.Get(ColumnVideoLink),
		DeckLink:         row.Get(ColumnDeckLink),
	}
}
