package clock

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// DateLayout is the canonical date key format.
const DateLayout = "2006-01-02"

const displayLayout = "3:04 PM"

// Clock resolves instants to calendar dates in one fixed reference zone.
// Every component asks this type what day it is; nothing computes dates on
// its own.
type Clock struct {
	clk clockwork.Clock
	loc *time.Location
}

// New builds a Clock for the named zone over the given time source.
func New(clk clockwork.Clock, zone string) (*Clock, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, err
	}
	return &Clock{clk: clk, loc: loc}, nil
}

// Base exposes the underlying time source so the scheduler can share it.
func (c *Clock) Base() clockwork.Clock { return c.clk }

// Now returns the current instant in the reference zone.
func (c *Clock) Now() time.Time { return c.clk.Now().In(c.loc) }

// Today returns the canonical date for the current instant.
func (c *Clock) Today() string { return c.CanonicalDate(c.clk.Now()) }

// CanonicalDate resolves an arbitrary instant to its reference-zone date.
func (c *Clock) CanonicalDate(t time.Time) string {
	return t.In(c.loc).Format(DateLayout)
}

// TimeOfDay returns the display clock string for the current instant.
func (c *Clock) TimeOfDay() string { return c.Now().Format(displayLayout) }

// AtMidnight reports whether the reference-zone clock reads 00:00 right now.
func (c *Clock) AtMidnight() bool {
	return c.Now().Format("15:04") == "00:00"
}

// AddDays shifts a canonical date by n calendar days in the reference zone.
// The date is parsed in the zone and shifted with AddDate, so the arithmetic
// stays calendar-based across DST transitions.
func (c *Clock) AddDays(date string, n int) (string, error) {
	t, err := time.ParseInLocation(DateLayout, date, c.loc)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(DateLayout), nil
}

// ValidDate reports whether s is a well-formed canonical date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
