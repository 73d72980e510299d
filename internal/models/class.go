package models

import "github.com/noah-isme/tutor-marketplace-api/pkg/timeofday"

// Class is one subject taught by one tutor at an hourly cost.
type Class struct {
	ID      int64   `db:"id" json:"id"`
	Subject string  `db:"subject" json:"subject"`
	Cost    float64 `db:"cost" json:"cost"`
	TutorID int64   `db:"tutor_id" json:"tutor_id"`
}

// ClassSearchFilter holds the already-parsed availability search inputs.
type ClassSearchFilter struct {
	Subject string
	WeekDay int
	Time    timeofday.Minutes
}

// ClassSearchResult is a class row with its tutor's profile folded in.
type ClassSearchResult struct {
	ID       int64   `db:"id" json:"id"`
	Subject  string  `db:"subject" json:"subject"`
	Cost     float64 `db:"cost" json:"cost"`
	TutorID  int64   `db:"tutor_id" json:"tutor_id"`
	Name     string  `db:"name" json:"name"`
	Avatar   string  `db:"avatar" json:"avatar"`
	Whatsapp string  `db:"whatsapp" json:"whatsapp"`
	Bio      string  `db:"bio" json:"bio"`
}

// ClassRegistration carries everything persisted by one registration.
type ClassRegistration struct {
	Tutor    Tutor
	Subject  string
	Cost     float64
	Schedule []ScheduleEntry
}
