package models

import "time"

// Connection records a student reaching out to a tutor.
type Connection struct {
	ID        int64     `db:"id" json:"id"`
	TutorID   int64     `db:"tutor_id" json:"tutor_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ConnectionTotal is the public connection counter.
type ConnectionTotal struct {
	Total int `db:"total" json:"total"`
}
