package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Layouts used on the wire and in the database.  Timestamps are naive: no
// zone is stored, all values are kept as UTC wall clock.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04:05"
	DBDateTime     = "2006-01-02 15:04:05"
)

// Date is a calendar date without time of day.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date of t, keeping its wall clock.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses "YYYY-MM-DD".
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

func (d Date) String() string { return d.Format(DateLayout) }

// AddDays returns the date n days after d.
func (d Date) AddDays(n int) Date { return Date{d.Time.AddDate(0, 0, n)} }

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string")
	}
	v, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Value stores the date as "YYYY-MM-DD", which both MySQL DATE and SQLite
// text columns compare correctly.
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

func (d *Date) Scan(src any) error {
	t, err := scanTime(src, DateLayout)
	if err != nil {
		return err
	}
	*d = DateOf(t)
	return nil
}

// DateTime is a naive timestamp with second precision.
type DateTime struct {
	time.Time
}

// NewDateTime builds a naive timestamp from wall clock fields.
func NewDateTime(year int, month time.Month, day, hour, min, sec int) DateTime {
	return DateTime{time.Date(year, month, day, hour, min, sec, 0, time.UTC)}
}

// ParseDateTime accepts "YYYY-MM-DDTHH:MM:SS", the same with a space
// separator, or RFC3339.  For RFC3339 input the offset is dropped and the
// wall clock kept.
func ParseDateTime(s string) (DateTime, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{DateTimeLayout, DBDateTime, "2006-01-02T15:04", time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDateTime(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second()), nil
		}
	}
	return DateTime{}, fmt.Errorf("invalid timestamp %q: expected YYYY-MM-DDTHH:MM:SS", s)
}

func (t DateTime) String() string { return t.Format(DateTimeLayout) }

func (t DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *DateTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp must be a string")
	}
	v, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (t DateTime) Value() (driver.Value, error) {
	return t.Format(DBDateTime), nil
}

func (t *DateTime) Scan(src any) error {
	v, err := scanTime(src, DBDateTime)
	if err != nil {
		return err
	}
	*t = NewDateTime(v.Year(), v.Month(), v.Day(), v.Hour(), v.Minute(), v.Second())
	return nil
}

// Before reports whether t is strictly before u.
func (t DateTime) Before(u DateTime) bool { return t.Time.Before(u.Time) }

// Sub returns t-u.
func (t DateTime) Sub(u DateTime) time.Duration { return t.Time.Sub(u.Time) }

// scanTime converts a driver value into time.Time.  MySQL (parseTime=true)
// and SQLite on DATE/DATETIME columns hand back time.Time; text affinity
// columns hand back strings or bytes.
func scanTime(src any, layout string) (time.Time, error) {
	switch v := src.(type) {
	case time.Time:
		return v, nil
	case string:
		return parseStored(v, layout)
	case []byte:
		return parseStored(string(v), layout)
	case nil:
		return time.Time{}, fmt.Errorf("unexpected NULL time value")
	}
	return time.Time{}, fmt.Errorf("unsupported time value %T", src)
}

func parseStored(s, layout string) (time.Time, error) {
	for _, l := range []string{layout, DBDateTime, DateLayout, time.RFC3339Nano} {
		if t, err := time.Parse(l, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse stored time %q", s)
}
