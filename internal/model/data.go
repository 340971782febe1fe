package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const dataLayout = "2006-01-02"

// Data is a calendar date. It is written to the database as YYYY-MM-DD so that
// comparisons against `date` columns don't depend on the session time zone.
type Data struct{ time.Time }

// NewData truncates t to midnight UTC of its calendar day.
func NewData(t time.Time) Data {
	return Data{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d Data) String() string { return d.Format(dataLayout) }

func (d Data) Value() (driver.Value, error) {
	return d.Format(dataLayout), nil
}

func (d *Data) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewData(v)
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	case nil:
		*d = Data{}
		return nil
	}
	return fmt.Errorf("model.Data: cannot scan %T", src)
}

func (d *Data) parse(s string) error {
	if len(s) > len(dataLayout) {
		s = s[:len(dataLayout)]
	}
	t, err := time.Parse(dataLayout, s)
	if err != nil {
		return fmt.Errorf("model.Data: %w", err)
	}
	*d = NewData(t)
	return nil
}
