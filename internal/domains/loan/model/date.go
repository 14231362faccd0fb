package model

import (
	"strings"
	"time"

	"library-catalog/internal/shared/utils"
)

// Date is a calendar date rendered as YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{utils.Today(t)}
}

func NewDatePtr(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	d := NewDate(*t)
	return &d
}

func (d Date) String() string {
	return d.Format(utils.DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.Parse(utils.DateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}
