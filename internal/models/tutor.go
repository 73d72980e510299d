package models

// Tutor is the public profile of a person offering classes.
type Tutor struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Avatar   string `db:"avatar" json:"avatar"`
	Whatsapp string `db:"whatsapp" json:"whatsapp"`
	Bio      string `db:"bio" json:"bio"`
}
