package models

import (
	"fmt"
	"time"
)

const TimestampLayout = "2006-01-02 15:04:05"

// Row is a single stored row keyed by column header.
// Columns missing from the row read as "".
type Row map[string]string

func (r Row) Get(column string) string {
	return r[column]
}

// MakeRow zips a header with cell values; extra cells are dropped, missing ones are "".
func MakeRow(header []string, values []string) Row {
	row := make(Row, len(header))
	for i, column := range header {
		if i < len(values) {
			row[column] = values[i]
		} else {
			row[column] = ""
		}
	}
	return row
}

// CellString renders a value the way it is kept in a text cell.
func CellString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.Format(TimestampLayout)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func CellStrings(values []interface{}) []string {
	cells := make([]string, len(values))
	for i, value := range values {
		cells[i] = CellString(value)
	}
	return cells
}

// ParseTimestamp accepts the layout this service writes; anything else yields the zero time.
func ParseTimestamp(value string, loc *time.Location) time.Time {
	t, err := time.ParseInLocation(TimestampLayout, value, loc)
	if err != nil {
		return time.Time{}
	}
	return t
}
