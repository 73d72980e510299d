// Package timeofday encodes wall-clock times of day as minutes since midnight.
package timeofday

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the exclusive upper bound for a time of day.
const MinutesPerDay = 24 * 60

// ErrInvalidTimeFormat is returned when a string is not a valid "HH:MM" time.
var ErrInvalidTimeFormat = errors.New("invalid time format")

// Minutes is a time of day expressed as minutes since midnight.
type Minutes int

// Encode parses "HH:MM" (or "H:MM") into minutes since midnight.
// Hours must be in 0-23 and minutes in 0-59.
func Encode(s string) (Minutes, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	hour, err := parsePart(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	minute, err := parsePart(parts[1])
	if err != nil || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	if hour > 23 || minute > 59 {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidTimeFormat, s)
	}
	return Minutes(hour*60 + minute), nil
}

// EndOfDay is the "24:00" bound a slot may end on.
const EndOfDay = Minutes(MinutesPerDay)

// EncodeEnd parses an exclusive upper bound. It accepts everything Encode
// does plus "24:00", so a slot can run until midnight.
func EncodeEnd(s string) (Minutes, error) {
	if parts := strings.Split(strings.TrimSpace(s), ":"); len(parts) == 2 && parts[0] == "24" && parts[1] == "00" {
		return EndOfDay, nil
	}
	return Encode(s)
}

// MustEncode is like Encode but panics on malformed input.
func MustEncode(s string) Minutes {
	m, err := Encode(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Int returns the raw minute count.
func (m Minutes) Int() int {
	return int(m)
}

// String renders the value as "HH:MM".
func (m Minutes) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// parsePart accepts one or two ASCII digits, no sign.
func parsePart(raw string) (int, error) {
	if len(raw) == 0 || len(raw) > 2 {
		return 0, ErrInvalidTimeFormat
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, ErrInvalidTimeFormat
		}
	}
	return strconv.Atoi(raw)
}
