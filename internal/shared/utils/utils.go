package utils

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidID = errors.New("invalid id")

// ParseID parses a positive int64 path parameter.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// Today truncates t to midnight UTC; loan dates carry no time of day.
func Today(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string, returning nil for blank input.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
