package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TimeLayout is the wire format for timestamps: ISO 8601 at seconds
// precision without a zone offset, as the platform importers expect.
const TimeLayout = "2006-01-02T15:04:05"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Timestamp is a second-precision timestamp. The zero value serializes as
// an empty string so optional columns stay blank in both CSV and JSON.
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to whole seconds and wraps it.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t.Truncate(time.Second)}
}

func (ts Timestamp) String() string {
	if ts.IsZero() {
		return ""
	}
	return ts.Format(TimeLayout)
}

// MarshalJSON encodes the timestamp as a wire-format string.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.String())
}

// UnmarshalJSON accepts the wire format plus the date-only and RFC 3339
// spellings found in hand-edited reference files.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return ts.parse(raw)
}

func (ts *Timestamp) parse(raw string) error {
	if raw == "" {
		ts.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{TimeLayout, "2006-01-02 15:04:05", DateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			ts.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", raw)
}

// ParseTimestamp parses a wire-format timestamp string.
func ParseTimestamp(raw string) (Timestamp, error) {
	var ts Timestamp
	if err := ts.parse(raw); err != nil {
		return Timestamp{}, err
	}
	return ts, nil
}

// Value implements driver.Valuer for the database sink.
func (ts Timestamp) Value() (driver.Value, error) {
	if ts.IsZero() {
		return nil, nil
	}
	return ts.Format(TimeLayout), nil
}

// Scan implements sql.Scanner.
func (ts *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		ts.Time = time.Time{}
		return nil
	case time.Time:
		ts.Time = v.UTC()
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Timestamp", src)
	}
}

// GormDataType maps Timestamp columns for migrations.
func (Timestamp) GormDataType() string {
	return "datetime"
}

// Date is a calendar date without a time component.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar day.
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// MarshalJSON encodes the date as YYYY-MM-DD.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a YYYY-MM-DD string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return fmt.Errorf("unrecognized date %q", raw)
	}
	d.Time = t.UTC()
	return nil
}

// Value implements driver.Valuer for the database sink.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Format(DateLayout), nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		d.Time = time.Time{}
		return nil
	case time.Time:
		*d = NewDate(v.UTC())
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d *Date) scanString(raw string) error {
	if raw == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return fmt.Errorf("unrecognized date %q", raw)
	}
	d.Time = t.UTC()
	return nil
}

// GormDataType maps Date columns for migrations.
func (Date) GormDataType() string {
	return "date"
}
