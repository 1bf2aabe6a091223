package models

// ConsumedClass records one class attended by a student.
type ConsumedClass struct {
	ID        int64  `db:"id" json:"id"`
	StudentID int64  `db:"student_id" json:"student_id"`
	ClassID   int64  `db:"class_id" json:"class_id"`
	Date      string `db:"date" json:"date"`
	Time      string `db:"time" json:"time"`
}

// ConsumedClassFilter narrows consumed class listings.
type ConsumedClassFilter struct {
	StudentID *int64
}
