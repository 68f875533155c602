package model

import (
    "fmt"
    "time"
)

// timeOfDayLayout is the wire format for times of day ("HH:MM").
const timeOfDayLayout = "15:04"

// dateLayout is the wire format for reservation dates.
const dateLayout = "2006-01-02"

// TimeOfDay is a clock time expressed as minutes since midnight.  Keeping
// it as an integer makes the half-open interval overlap check a pair of
// integer comparisons and sidesteps time-zone handling entirely.
type TimeOfDay int

// ParseTimeOfDay parses an "HH:MM" string into a TimeOfDay.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
    t, err := time.Parse(timeOfDayLayout, s)
    if err != nil {
        return 0, fmt.Errorf("invalid time %q: %w", s, err)
    }
    return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

// String renders the time back into "HH:MM".
func (t TimeOfDay) String() string {
    return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// MarshalText implements encoding.TextMarshaler so times serialize as
// "HH:MM" in JSON payloads and persisted records.
func (t TimeOfDay) MarshalText() ([]byte, error) {
    return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TimeOfDay) UnmarshalText(b []byte) error {
    parsed, err := ParseTimeOfDay(string(b))
    if err != nil {
        return err
    }
    *t = parsed
    return nil
}

// Date is a calendar day with no time component.  The embedded time.Time
// is always midnight UTC so Equal and Before behave as day comparisons.
type Date struct {
    time.Time
}

// ParseDate parses a "YYYY-MM-DD" string into a Date.
func ParseDate(s string) (Date, error) {
    t, err := time.Parse(dateLayout, s)
    if err != nil {
        return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
    }
    return Date{t}, nil
}

// DateOf truncates an arbitrary instant to its UTC calendar day.
func DateOf(t time.Time) Date {
    y, m, d := t.UTC().Date()
    return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// String renders the date as "YYYY-MM-DD".
func (d Date) String() string {
    return d.Format(dateLayout)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
    return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
    parsed, err := ParseDate(string(b))
    if err != nil {
        return err
    }
    *d = parsed
    return nil
}
