package deadlines

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

const DateLayout = "02-01-2006 15:04"

// ParseDeadline parses a "02-01-2006 15:04" date in loc.
func ParseDeadline(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	deadline, err := time.ParseInLocation(DateLayout, strings.TrimSpace(value), loc)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "Failed to parse deadline %q", value)
	}
	return deadline, nil
}
