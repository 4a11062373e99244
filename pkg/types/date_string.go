package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateString returned when a value is not a valid YYYY-MM-DD date
var ErrInvalidDateString = errors.New("invalid date string format")

const dateLayout = "2006-01-02"

// DateString calendar date in YYYY-MM-DD format without a time zone
type DateString string

// NewDateString builds a DateString from the calendar part of t
func NewDateString(t time.Time) DateString {
	return DateString(t.Format(dateLayout))
}

// NewDateStringFromString parses and validates s
func NewDateStringFromString(s string) (DateString, error) {
	ds := DateString(strings.TrimSpace(s))
	if err := ds.Validate(); err != nil {
		return "", err
	}
	return ds, nil
}

// String returns the YYYY-MM-DD representation
func (d DateString) String() string {
	return string(d)
}

// IsZero reports whether the value is empty
func (d DateString) IsZero() bool {
	return d == ""
}

// Validate checks the YYYY-MM-DD format and that the date exists
func (d DateString) Validate() error {
	_, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDateString, string(d))
	}
	return nil
}

// At combines the date with a time of day in the given location
func (d DateString) At(t TimeString, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, string(d), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateString, string(d))
	}
	minutes, err := t.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, loc), nil
}

// Scan implements sql.Scanner.
// PostgreSQL DATE columns arrive as time.Time, SQLite TEXT columns as strings.
func (d *DateString) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = ""
		return nil
	case string:
		*d = DateString(v)
	case []byte:
		*d = DateString(v)
	case time.Time:
		*d = NewDateString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidDateString, src)
	}

	if len(*d) > len(dateLayout) {
		*d = (*d)[:len(dateLayout)]
	}
	return d.Validate()
}

// Value implements driver.Valuer
func (d DateString) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return string(d), nil
}
