package deadlines

import (
	"fmt"
	"time"

	units "github.com/docker/go-units"
	"go.uber.org/atomic"
)

type Remaining struct {
	Days    int  `json:"days"`
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	Seconds int  `json:"seconds"`
	Expired bool `json:"expired"`
}

// Duration reassembles the remaining time; zero once expired.
func (r Remaining) Duration() time.Duration {
	if r.Expired {
		return 0
	}
	return time.Duration(r.Days)*24*time.Hour +
		time.Duration(r.Hours)*time.Hour +
		time.Duration(r.Minutes)*time.Minute +
		time.Duration(r.Seconds)*time.Second
}

func (r Remaining) String() string {
	if r.Expired {
		return "expired"
	}
	return fmt.Sprintf("%02dd %02dh %02dm %02ds", r.Days, r.Hours, r.Minutes, r.Seconds)
}

// TimeRemaining splits deadline-now into whole days, hours, minutes and seconds.
// Every step floors; sub-second remainders are dropped.
func TimeRemaining(now, deadline time.Time) Remaining {
	if now.After(deadline) {
		return Remaining{Expired: true}
	}

	total := int64(deadline.Sub(now) / time.Second)
	days := total / 86400
	total %= 86400
	hours := total / 3600
	total %= 3600
	minutes := total / 60
	seconds := total % 60

	return Remaining{
		Days:    int(days),
		Hours:   int(hours),
		Minutes: int(minutes),
		Seconds: int(seconds),
	}
}

type Clock func() time.Time

// Countdown reports the time left before a registration deadline. Once it
// has observed the deadline passing it stays expired, even if the clock
// later jumps backwards.
type Countdown struct {
	deadline time.Time
	now      Clock
	expired  atomic.Bool
}

func NewCountdown(deadline time.Time, now Clock) *Countdown {
	if now == nil {
		now = time.Now
	}
	return &Countdown{deadline: deadline, now: now}
}

func (c *Countdown) Deadline() time.Time {
	return c.deadline
}

func (c *Countdown) Remaining() Remaining {
	if c.expired.Load() {
		return Remaining{Expired: true}
	}
	remaining := TimeRemaining(c.now(), c.deadline)
	if remaining.Expired {
		c.expired.Store(true)
	}
	return remaining
}

func (c *Countdown) Expired() bool {
	return c.Remaining().Expired
}

// Humanized renders the remaining time as e.g. "About an hour".
func (c *Countdown) Humanized() string {
	remaining := c.Remaining()
	if remaining.Expired {
		return "closed"
	}
	return units.HumanDuration(remaining.Duration())
}
