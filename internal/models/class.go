package models

// ClassSlot is a recurring lesson slot in the weekly timetable.
type ClassSlot struct {
	ID    int64  `db:"id" json:"id"`
	Day   string `db:"day" json:"day"`
	Time  string `db:"time" json:"time"`
	Level string `db:"level" json:"level"`
}
