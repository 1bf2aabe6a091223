package models

// Student represents a learner enrolled with the school.
type Student struct {
	ID    int64  `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Phone string `db:"phone" json:"phone"`
	Email string `db:"email" json:"email"`
	Level string `db:"level" json:"level"`
}
