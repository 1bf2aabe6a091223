package models

// DefaultNumClasses is stored when a payment omits the number of classes.
const DefaultNumClasses = 1

// Payment records classes bought by a student.
type Payment struct {
	ID          int64   `db:"id" json:"id"`
	StudentID   int64   `db:"student_id" json:"student_id"`
	Amount      float64 `db:"amount" json:"amount"`
	NumClasses  int     `db:"num_classes" json:"num_classes"`
	PaymentDate string  `db:"payment_date" json:"payment_date"`
}

// PaymentFilter narrows payment listings.
type PaymentFilter struct {
	StudentID *int64
}
