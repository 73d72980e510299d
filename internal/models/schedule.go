package models

import "github.com/noah-isme/tutor-marketplace-api/pkg/timeofday"

// Weekday bounds, Sunday = 0.
const (
	MinWeekDay = 0
	MaxWeekDay = 6
)

// ScheduleEntry is a weekly slot as submitted, with "HH:MM" bounds.
type ScheduleEntry struct {
	WeekDay int    `json:"week_day"`
	From    string `json:"from"`
	To      string `json:"to"`
}

// ClassSchedule is a stored weekly slot; To is exclusive.
type ClassSchedule struct {
	ID      int64             `db:"id" json:"id"`
	ClassID int64             `db:"class_id" json:"class_id"`
	WeekDay int               `db:"week_day" json:"week_day"`
	From    timeofday.Minutes `db:"from_minutes" json:"from"`
	To      timeofday.Minutes `db:"to_minutes" json:"to"`
}

// Contains reports whether the slot covers minute t on day.
func (s ClassSchedule) Contains(day int, t timeofday.Minutes) bool {
	return s.WeekDay == day && s.From <= t && t < s.To
}
