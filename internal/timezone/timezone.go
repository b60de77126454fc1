package timezone

import (
	"errors"
	"time"
)

const DefaultTimezone = "UTC"

// Clock is the time source used by the scheduling use cases.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}

// TruncateToMinute drops seconds and sub-second precision while keeping
// the location of t, so "Z" inputs stay UTC and offset inputs keep their offset.
func TruncateToMinute(t time.Time) time.Time {
	return time.Date(
		t.Year(), t.Month(), t.Day(),
		t.Hour(), t.Minute(), 0, 0,
		t.Location(),
	)
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.UTC
}

var ErrInvalidDateTime = errors.New("invalid date-time")

// localLayouts are accepted when the input carries no offset.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseDateTime accepts RFC 3339 input, keeping its offset, or a local
// date-time which is interpreted in loc.
func ParseDateTime(raw string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDateTime
}
